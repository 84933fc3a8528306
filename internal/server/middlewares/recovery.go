package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery converts a panic anywhere in the handler chain into a plain
// 500 without taking the process down. Per-request failures never
// escape the request.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		slog.Error("panic recovered",
			"error", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.Header("Cache-Control", "no-store")
		c.String(http.StatusInternalServerError, "Internal Server Error")
		c.Abort()
	})
}
