package api

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"weatherhistory.app/pkg/errors"
)

// SearchRequest represents the body of POST /api/search. A blank city is
// accepted and leaves the tracker state unchanged.
type SearchRequest struct {
	City string `json:"city" form:"city" binding:"cityname"`
}

// search handles POST /api/search requests
func (s *HTTPServerAdapter) search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Debug("Search request binding error", "error", err)
		s.handleError(c, errors.NewValidationError("Invalid request format"))
		return
	}

	state := s.tracker.FetchAndSave(c.Request.Context(), req.City)
	if state.ErrorMessage != "" {
		slog.Debug("Search finished with error", "city", req.City, "message", state.ErrorMessage)
	}
	c.JSON(http.StatusOK, state)
}

// getState handles GET /api/state requests
func (s *HTTPServerAdapter) getState(c *gin.Context) {
	c.JSON(http.StatusOK, s.tracker.State())
}

// clearError handles DELETE /api/state/error requests
func (s *HTTPServerAdapter) clearError(c *gin.Context) {
	c.JSON(http.StatusOK, s.tracker.ClearError())
}

// getAnalytics handles GET /api/analytics requests
func (s *HTTPServerAdapter) getAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, s.tracker.Analytics())
}
