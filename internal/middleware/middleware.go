package middleware

import (
	appcontext "github.com/SeakMengs/ConfPortal/internal/app_context"
	ratelimiter "github.com/SeakMengs/ConfPortal/internal/rate_limiter"
	"github.com/gin-gonic/gin"
)

type Middleware struct {
	rateLimiter *ratelimiter.FixedWindowRateLimiter
	app         *appcontext.Application
}

func NewMiddleware(app *appcontext.Application,
	rateLimiter *ratelimiter.FixedWindowRateLimiter,
) *Middleware {
	return &Middleware{app: app, rateLimiter: rateLimiter}
}

// Global returns the handlers every route goes through. Metrics run first so
// rate limited requests are counted too.
func (m *Middleware) Global() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.MetricsMiddleware,
		m.RateLimiterMiddleware,
	}
}
