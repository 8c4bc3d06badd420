package route

import (
	"github.com/SeakMengs/ConfPortal/internal/controller"
	"github.com/SeakMengs/ConfPortal/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Papers(r *gin.RouterGroup, pc *controller.PaperController, ac *controller.AssignmentController, rc *controller.ReviewController, dc *controller.DecisionController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/papers")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.POST("", pc.CreatePaper)
		v1.GET("", pc.GetPaperList)
		v1.GET("/:paperId", pc.GetPaperById)
		v1.GET("/:paperId/file", pc.GetPaperFile)
		v1.POST("/:paperId/submit", pc.SubmitPaper)
		v1.POST("/:paperId/resubmit", pc.ResubmitPaper)
		v1.POST("/:paperId/reopen", pc.ReopenReview)

		v1.POST("/:paperId/assignments", ac.AssignReviewer)
		v1.GET("/:paperId/assignments", ac.GetPaperAssignments)

		v1.GET("/:paperId/reviews", rc.GetPaperReviews)
		v1.GET("/:paperId/reviews/summary", rc.GetReviewSummary)

		v1.POST("/:paperId/decision", dc.RecordDecision)
		v1.PUT("/:paperId/decision", dc.UpdateDecision)
		v1.GET("/:paperId/decision", dc.GetDecision)
	}
}
