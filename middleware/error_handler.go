package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/roteirolab/roteiro-backend/errors"
	"github.com/roteirolab/roteiro-backend/logger"
	"github.com/roteirolab/roteiro-backend/store"
)

// ErrorResponse is the JSON error body returned to clients.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is the single place where errors attached to the gin context
// become HTTP responses. Store and composer layers never surface raw
// transport errors here; anything that is not an AppError or a store
// sentinel is treated as an unexpected server error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		log := logger.GetLogger()

		var appError *apperrors.AppError
		if errors.As(err, &appError) {
			log.Warnw("Request failed",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"type", appError.Type,
				"message", appError.Message,
				"detail", appError.Detail,
			)
			c.JSON(appError.GetHTTPStatus(), ErrorResponse{
				Type:    string(appError.Type),
				Message: appError.Message,
				Details: appError.Detail,
			})
			return
		}

		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Type:    string(apperrors.NotFoundError),
				Message: "Resource not found",
			})
			return
		}

		log.Errorw("Unhandled error",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Type:    string(apperrors.ServerError),
			Message: "Internal server error",
		})
	}
}
