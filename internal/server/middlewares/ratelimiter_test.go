package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swaplink/bridge-widget/internal/ratelimit"
)

func TestClientIdentity(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{
			name:     "first forwarded-for value wins",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1, 10.0.0.2"},
			expected: "203.0.113.7",
		},
		{
			name:     "forwarded-for value is trimmed",
			headers:  map[string]string{"X-Forwarded-For": "  203.0.113.7  "},
			expected: "203.0.113.7",
		},
		{
			name:     "real-ip fallback",
			headers:  map[string]string{"X-Real-IP": "198.51.100.9"},
			expected: "198.51.100.9",
		},
		{
			name: "forwarded-for preferred over real-ip",
			headers: map[string]string{
				"X-Forwarded-For": "203.0.113.7",
				"X-Real-IP":       "198.51.100.9",
			},
			expected: "203.0.113.7",
		},
		{
			name:     "no proxy headers collapse onto shared bucket",
			headers:  nil,
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, ClientIdentity(req))
		})
	}
}

func newLimitedRouter(limit int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(ratelimit.New(limit, window)))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func doGet(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_HeadersOnAdmittedRequests(t *testing.T) {
	r := newLimitedRouter(50, 30*time.Second)

	for i := 1; i <= 3; i++ {
		w := doGet(r, "203.0.113.7")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "50", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(50-i), w.Header().Get("X-RateLimit-Remaining"))

		reset, err := strconv.ParseInt(w.Header().Get("X-RateLimit-Reset"), 10, 64)
		require.NoError(t, err)
		assert.InDelta(t, time.Now().Add(30*time.Second).Unix(), reset, 2)
	}
}

func TestRateLimiter_RejectsOverQuota(t *testing.T) {
	r := newLimitedRouter(50, 30*time.Second)

	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, doGet(r, "203.0.113.7").Code, "request %d", i+1)
	}

	w := doGet(r, "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Rate limit exceeded", w.Body.String())
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retryAfter, 1)
	assert.LessOrEqual(t, retryAfter, 30)

	// another identity is unaffected
	assert.Equal(t, http.StatusOK, doGet(r, "198.51.100.9").Code)
}
