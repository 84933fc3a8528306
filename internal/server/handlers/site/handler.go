// Package site serves the pre-built SPA bundle: the root document,
// the /assets/ subtree, and a small set of root-level static files.
package site

import (
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/swaplink/bridge-widget/internal/server/assets"
	"github.com/swaplink/bridge-widget/internal/utils"
)

const (
	cacheShort = "public, max-age=3600"
	cacheLong  = "public, max-age=31536000"
	cacheNone  = "no-store"
)

// Root-level bundle files served outside the /assets/ prefix.
var staticExtensions = map[string]bool{
	".ico":         true,
	".png":         true,
	".svg":         true,
	".webmanifest": true,
}

type Handler struct {
	source assets.Source
}

func New(source assets.Source) *Handler {
	return &Handler{source: source}
}

// ServeIndex returns the SPA root document. The index is required for
// the app to work at all, so a read failure is a server error, not a
// 404.
func (h *Handler) ServeIndex(c *gin.Context) {
	data, err := h.source.ReadFile("index.html")
	if err != nil {
		slog.Error("index read failed", "error", err)
		c.Header("Cache-Control", cacheNone)
		c.String(http.StatusInternalServerError, "Server Error")
		return
	}
	c.Header("Cache-Control", cacheShort)
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// ServeAsset handles the fingerprinted /assets/ subtree, which is safe
// to cache for a year.
func (h *Handler) ServeAsset(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("filepath"), "/")
	h.serve(c, path.Join("assets", name), cacheLong)
}

// IsStaticFile reports whether a root-level path belongs to the
// bundle's icon/image/manifest set.
func IsStaticFile(p string) bool {
	return staticExtensions[path.Ext(p)]
}

// ServeStaticFile handles root-level icon/image/manifest files, which
// are not fingerprinted and get the short cache lifetime.
func (h *Handler) ServeStaticFile(c *gin.Context) {
	h.serve(c, strings.TrimPrefix(c.Request.URL.Path, "/"), cacheShort)
}

func (h *Handler) serve(c *gin.Context, name, cacheControl string) {
	data, err := h.source.ReadFile(name)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			// the path's cache rules apply to the miss as well
			c.Header("Cache-Control", cacheControl)
			c.String(http.StatusNotFound, "Not Found")
			return
		}
		slog.Error("asset read failed", "asset", name, "error", err)
		c.Header("Cache-Control", cacheNone)
		c.String(http.StatusInternalServerError, "Server Error")
		return
	}

	slog.Debug("asset served", "asset", name, "size", humanize.Bytes(uint64(len(data))))
	c.Header("Cache-Control", cacheControl)
	c.Data(http.StatusOK, utils.DetectContentType(name), data)
}
