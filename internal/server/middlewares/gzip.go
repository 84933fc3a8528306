package middlewares

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// The SPA root document is served uncompressed; only the config and
// asset paths negotiate gzip.
var gzipExcludedPathRegexs = []string{
	`^/$`,
	`^/index\.html$`,
	`^/healthz$`,
}

func GZIP() gin.HandlerFunc {
	return gzip.Gzip(
		gzip.BestSpeed,
		gzip.WithExcludedPathsRegexs(gzipExcludedPathRegexs),
	)
}
