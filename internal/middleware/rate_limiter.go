package middleware

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/SeakMengs/ConfPortal/internal/util"
	"github.com/gin-gonic/gin"
)

func (m Middleware) RateLimiterMiddleware(ctx *gin.Context) {
	if m.rateLimiter == nil || !m.app.Config.RateLimiter.Enabled {
		ctx.Next()
		return
	}

	if allow, retryAfter := m.rateLimiter.Allow(ctx.ClientIP()); !allow {
		ctx.Header("Retry-After", fmt.Sprintf("%d", int(math.Ceil(retryAfter.Seconds()))))
		util.ResponseFailed(ctx, http.StatusTooManyRequests, "Rate limit exceeded", util.GenerateErrorMessages(errors.New("too many requests, retry later"), "rateLimit"), nil)
		return
	}

	ctx.Next()
}
