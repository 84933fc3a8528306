package middlewares

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swaplink/bridge-widget/internal/ratelimit"
)

const identityFallback = "unknown"

// ClientIdentity buckets requests by the proxy-reported client
// address: first X-Forwarded-For value, then X-Real-IP. Requests
// without proxy headers share one bucket; the server is expected to
// sit behind a trusted reverse proxy.
func ClientIdentity(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return identityFallback
}

// RateLimiter admits or rejects every request before routing and
// stamps quota headers on both outcomes.
func RateLimiter(limiter *ratelimit.Limiter) gin.HandlerFunc {
	limitValue := strconv.Itoa(limiter.Limit())

	return func(c *gin.Context) {
		dec := limiter.Admit(ClientIdentity(c.Request))

		c.Header("X-RateLimit-Limit", limitValue)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(dec.ResetAt.Unix(), 10))

		if !dec.Allowed {
			retryAfter := int(math.Ceil(time.Until(dec.ResetAt).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.Header("Cache-Control", "no-store")
			c.String(http.StatusTooManyRequests, "Rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}
