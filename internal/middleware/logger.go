package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/emr-records/pkg/logger"
)

// Logger returns a middleware that logs HTTP requests. Request bodies are
// not logged since they carry patient data.
func Logger(l *logger.Logger) gin.HandlerFunc {
	zl := l.Zerolog()
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Process request
		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		if raw != "" {
			path = path + "?" + raw
		}

		var event = zl.Info()
		msg := "Request processed"
		switch {
		case statusCode >= 500:
			event, msg = zl.Error(), "Server error"
		case statusCode >= 400:
			event, msg = zl.Warn(), "Client error"
		}

		event.
			Str("request_id", c.GetString(ContextRequestID)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("ip", c.ClientIP()).
			Int("status", statusCode).
			Dur("duration", latency).
			Str("user_agent", c.Request.UserAgent()).
			Msg(msg)
	}
}
