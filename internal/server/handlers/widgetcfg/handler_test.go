package widgetcfg

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swaplink/bridge-widget/internal/widget"
)

func TestNew_UnsupportedChain(t *testing.T) {
	_, err := New(424242)
	assert.ErrorIs(t, err, widget.ErrUnsupportedChain)
}

func TestServeConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h, err := New(widget.ChainEthereum)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/widget-config", h.ServeConfig)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/widget-config", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "public, max-age=3600", first.Header().Get("Cache-Control"))
	assert.Contains(t, first.Header().Get("Content-Type"), "application/json")

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/widget-config", nil))
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
}
