package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const DefaultSlowThreshold = time.Second

// SlowRequestLog warns when a request takes longer than threshold.
// Observability only; the request is never aborted.
func SlowRequestLog(threshold time.Duration) gin.HandlerFunc {
	if threshold <= 0 {
		threshold = DefaultSlowThreshold
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if took := time.Since(start); took > threshold {
			slog.Warn("slow request",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"took", took,
			)
		}
	}
}
