package controller

import (
	"net/http"

	"github.com/SeakMengs/ConfPortal/internal/model"
	"github.com/SeakMengs/ConfPortal/internal/util"
	"github.com/SeakMengs/ConfPortal/internal/workflow"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	*baseController
}

// SubmitReview leaves rating range checks to the workflow so out of range
// scores come back as invalid_rating with the offending field.
func (rc ReviewController) SubmitReview(ctx *gin.Context) {
	type Request struct {
		TechnicalQuality      int    `json:"technicalQuality"`
		Originality           int    `json:"originality"`
		Clarity               int    `json:"clarity"`
		Relevance             int    `json:"relevance"`
		OverallRecommendation int    `json:"overallRecommendation"`
		Comments              string `json:"comments" binding:"max=10000"`
	}
	var body Request

	actor, ok := rc.getActor(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	review, err := rc.app.Workflow.SubmitReview(ctx, actor, ctx.Params.ByName("assignmentId"), workflow.Ratings{
		TechnicalQuality:      body.TechnicalQuality,
		Originality:           body.Originality,
		Clarity:               body.Clarity,
		Relevance:             body.Relevance,
		OverallRecommendation: body.OverallRecommendation,
	}, body.Comments)
	if err != nil {
		rc.respondWorkflowError(ctx, "Failed to submit review", err)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"review": review,
	})
}

func (rc ReviewController) GetPaperReviews(ctx *gin.Context) {
	actor, ok := rc.getActor(ctx)
	if !ok {
		return
	}

	reviews, err := rc.app.Workflow.ListReviews(ctx, actor, ctx.Params.ByName("paperId"))
	if err != nil {
		rc.respondWorkflowError(ctx, "Failed to get reviews", err)
		return
	}

	if len(reviews) == 0 {
		reviews = []model.PaperReview{}
	}

	util.ResponseSuccess(ctx, gin.H{
		"reviews": reviews,
	})
}

func (rc ReviewController) GetReviewSummary(ctx *gin.Context) {
	actor, ok := rc.getActor(ctx)
	if !ok {
		return
	}

	summary, err := rc.app.Workflow.SummarizeReviews(ctx, actor, ctx.Params.ByName("paperId"))
	if err != nil {
		rc.respondWorkflowError(ctx, "Failed to summarize reviews", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"summary": summary,
	})
}
