package middlewares

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS lets any origin fetch the widget config; the document is
// embedded by third-party pages. Reads only.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Accept", "Accept-Encoding", "Content-Type"},
		MaxAge:       12 * time.Hour,
	})
}
