// Package widgetcfg serves the widget configuration document.
package widgetcfg

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swaplink/bridge-widget/internal/widget"
)

// Handler holds the document serialized once at construction. The
// build is deterministic, so there is nothing to recompute per
// request. A broken chain table fails here, before the server accepts
// traffic.
type Handler struct {
	body []byte
}

func New(defaultInputChain int64) (*Handler, error) {
	cfg, err := widget.BuildConfig(defaultInputChain)
	if err != nil {
		return nil, fmt.Errorf("build widget config: %w", err)
	}
	body, err := cfg.JSON()
	if err != nil {
		return nil, err
	}
	return &Handler{body: body}, nil
}

func (h *Handler) ServeConfig(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/json; charset=utf-8", h.body)
}
