package route

import (
	"github.com/SeakMengs/ConfPortal/internal/controller"
	"github.com/SeakMengs/ConfPortal/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Assignments(r *gin.RouterGroup, ac *controller.AssignmentController, rc *controller.ReviewController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/assignments")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("", ac.GetOwnAssignments)
		v1.PATCH("/:assignmentId/status", ac.UpdateAssignmentStatus)
		v1.POST("/:assignmentId/cancel", ac.CancelAssignment)
		v1.POST("/:assignmentId/review", rc.SubmitReview)
	}
}
