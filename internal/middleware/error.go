package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/emr-records/pkg/errors"
	"github.com/jwalitptl/emr-records/pkg/logger"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorLogger logs the errors handlers attached to the context. Storage
// and connection failures are logged at error level, the rest at debug.
func ErrorLogger(l *logger.Logger) gin.HandlerFunc {
	zl := l.Zerolog()
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			event := zl.Debug()
			switch errors.CodeOf(e.Err) {
			case errors.ErrDatabase, errors.ErrConnection, errors.ErrInternal:
				event = zl.Error()
			}
			event.
				Err(e.Err).
				Str("kind", errors.CodeOf(e.Err).String()).
				Str("request_id", c.GetString(ContextRequestID)).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("Request error")
		}
	}
}
