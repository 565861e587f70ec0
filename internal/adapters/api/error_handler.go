package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherhistory.app/internal/core/tracker"
	errorspkg "weatherhistory.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleError handles different types of application errors
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	statusCode, message := statusFor(err)
	c.JSON(statusCode, ErrorResponse{Error: message})
}

func statusFor(err error) (int, string) {
	var appErr *errorspkg.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, "Internal server error"
	}

	switch appErr.Type {
	case errorspkg.ValidationError:
		return http.StatusBadRequest, appErr.Message
	case errorspkg.NotFoundError:
		return http.StatusNotFound, appErr.Message
	case errorspkg.LookupFailureError:
		return http.StatusBadGateway, tracker.MessageLookupFailed
	case errorspkg.PersistenceFailureError:
		return http.StatusInternalServerError, tracker.MessagePersistenceFailed
	case errorspkg.ExternalAPIError:
		return http.StatusServiceUnavailable, "External service unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
