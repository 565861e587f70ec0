package api

import (
	"io"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/gin-gonic/gin"
	"weatherhistory.app/internal/core/analytics"
	"weatherhistory.app/internal/core/history"
	"weatherhistory.app/pkg/errors"
)

// HistoryResponse represents the HTTP response for a history window
type HistoryResponse struct {
	Records []history.Record `json:"records"`
	Count   int              `json:"count"`
}

// HistoryEvent is the payload of each "history" server-sent event
type HistoryEvent struct {
	History   []history.Record `json:"history"`
	Analytics analytics.Result `json:"analytics"`
}

// getHistory handles GET /api/history requests
func (s *HTTPServerAdapter) getHistory(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	records, err := s.history.Recent(c.Request.Context(), limit)
	if err != nil {
		slog.Error("History query error", "error", err, "limit", limit)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{Records: records, Count: len(records)})
}

// streamHistory handles GET /api/history/stream. Each window delivered by the
// live feed is sent as a "history" event together with its analytics. The
// feed is cancelled when the client goes away.
func (s *HTTPServerAdapter) streamHistory(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	ctx := c.Request.Context()
	feed, err := s.history.Watch(ctx, limit)
	if err != nil {
		slog.Error("History stream subscribe error", "error", err)
		s.handleError(c, err)
		return
	}
	defer feed.Cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	slog.Debug("History stream opened", "limit", limit)
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case window, ok := <-feed.Updates():
			if !ok {
				return false
			}
			c.SSEvent("history", HistoryEvent{History: window, Analytics: analytics.Recompute(window)})
			return true
		}
	})
	slog.Debug("History stream closed")
}

// parseLimit reads the optional limit query parameter; 0 means the default window
func parseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, errors.NewValidationError("limit must be a positive integer")
	}
	return limit, nil
}
