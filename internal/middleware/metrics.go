package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records latency per route template, so /papers/:paperId
// is one series no matter how many papers exist.
func (m Middleware) MetricsMiddleware(ctx *gin.Context) {
	if m.app.Metrics == nil {
		ctx.Next()
		return
	}

	started := time.Now()
	ctx.Next()

	route := ctx.FullPath()
	if route == "" {
		route = "unmatched"
	}

	m.app.Metrics.ObserveRequest(route, ctx.Request.Method, strconv.Itoa(ctx.Writer.Status()), time.Since(started))
}
