package route

import (
	"github.com/SeakMengs/ConfPortal/internal/controller"
	"github.com/SeakMengs/ConfPortal/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Register mounts the health check and every /api route on r.
func Register(r *gin.Engine, c *controller.Controller, m *middleware.Middleware) {
	r.GET("/", c.Index.Index)

	rApi := r.Group("/api")

	V1_Auth(rApi, c.Auth)
	V1_Conferences(rApi, c.Conference, m)
	V1_Papers(rApi, c.Paper, c.Assignment, c.Review, c.Decision, m)
	V1_Assignments(rApi, c.Assignment, c.Review, m)
}

// Token endpoints check the token themselves.
func V1_Auth(r *gin.RouterGroup, ac *controller.AuthController) {
	v1 := r.Group("/v1/auth")
	{
		v1.POST("/jwt/access/verify", ac.VerifyJwtAccessToken)
		v1.POST("/jwt/refresh", ac.RefreshAccessToken)
	}
}
