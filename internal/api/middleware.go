package api

import (
	"log/slog"
	"time"

	"flexline/internal/logging"
	"flexline/internal/util"

	"github.com/gin-gonic/gin"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an ID, puts a request scoped logger
// into the request context and logs the outcome once the handler returns.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = util.ShortUUID()
		}
		c.Header(RequestIDHeader, rid)

		reqLogger := slog.Default().With("request_id", rid)
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), reqLogger))

		c.Next()

		reqLogger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.RequestURI(),
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"dur", time.Since(start))
	}
}
