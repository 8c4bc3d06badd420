package controller

import (
	"net/http"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/util"
	"github.com/gin-gonic/gin"
)

type DecisionController struct {
	*baseController
}

type decisionRequest struct {
	Decision constant.DecisionValue `json:"decision" binding:"required,oneof=Accept Reject Revise"`
	Comment  string                 `json:"comment" binding:"max=5000"`
	// Only read on update. A new decision always notifies.
	Notify bool `json:"notify"`
}

func (dc DecisionController) RecordDecision(ctx *gin.Context) {
	var body decisionRequest

	actor, ok := dc.getActor(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	decision, err := dc.app.Workflow.RecordDecision(ctx, actor, ctx.Params.ByName("paperId"), body.Decision, body.Comment)
	if err != nil {
		dc.respondWorkflowError(ctx, "Failed to record decision", err)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"decision": decision,
	})
}

func (dc DecisionController) UpdateDecision(ctx *gin.Context) {
	var body decisionRequest

	actor, ok := dc.getActor(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	decision, err := dc.app.Workflow.UpdateDecision(ctx, actor, ctx.Params.ByName("paperId"), body.Decision, body.Comment, body.Notify)
	if err != nil {
		dc.respondWorkflowError(ctx, "Failed to update decision", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"decision": decision,
	})
}

func (dc DecisionController) GetDecision(ctx *gin.Context) {
	actor, ok := dc.getActor(ctx)
	if !ok {
		return
	}

	decision, err := dc.app.Workflow.GetDecision(ctx, actor, ctx.Params.ByName("paperId"))
	if err != nil {
		dc.respondWorkflowError(ctx, "Failed to get decision", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"decision": decision,
	})
}
