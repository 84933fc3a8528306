package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swaplink/bridge-widget/internal/server/handlers/site"
	"github.com/swaplink/bridge-widget/internal/server/handlers/widgetcfg"
	"github.com/swaplink/bridge-widget/internal/server/middlewares"
	"github.com/swaplink/bridge-widget/internal/version"
)

func SetupRoutes(config *Config, svc *Services) (http.Handler, error) {
	r := gin.New()

	widgetH, err := widgetcfg.New(config.Widget.DefaultInputChain)
	if err != nil {
		return nil, err
	}
	siteH := site.New(svc.Assets)

	r.Use(middlewares.Logger())
	r.Use(middlewares.Recovery())
	r.Use(middlewares.SlowRequestLog(config.HTTP.SlowThreshold))
	// quota headers must land on every response, so the limiter runs
	// before compression and routing
	r.Use(middlewares.RateLimiter(svc.Limiter))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.GZIP())

	r.GET("/healthz", HealthHandler)

	cfg := r.Group("/widget-config", middlewares.CORS())
	cfg.GET("", widgetH.ServeConfig)
	cfg.OPTIONS("", func(c *gin.Context) {}) // preflight answered by CORS

	r.GET("/", siteH.ServeIndex)
	r.GET("/index.html", siteH.ServeIndex)
	r.GET("/assets/*filepath", siteH.ServeAsset)

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet && site.IsStaticFile(c.Request.URL.Path) {
			siteH.ServeStaticFile(c)
			return
		}
		c.Header("Cache-Control", "no-store")
		c.String(http.StatusNotFound, "Not Found")
	})

	return r.Handler(), nil
}

func HealthHandler(ctx *gin.Context) {
	ctx.PureJSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
	})
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}
