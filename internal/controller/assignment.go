package controller

import (
	"net/http"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"github.com/SeakMengs/ConfPortal/internal/util"
	"github.com/SeakMengs/ConfPortal/internal/workflow"
	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	*baseController
}

func (ac AssignmentController) AssignReviewer(ctx *gin.Context) {
	type Request struct {
		ReviewerID string     `json:"reviewerId" binding:"required,strNotEmpty"`
		DueDate    *time.Time `json:"dueDate"`
		Notes      string     `json:"notes" binding:"max=2000"`
	}
	var body Request

	actor, ok := ac.getActor(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	assignment, err := ac.app.Workflow.Assign(ctx, actor, ctx.Params.ByName("paperId"), workflow.AssignInput{
		ReviewerID: body.ReviewerID,
		DueDate:    body.DueDate,
		Notes:      body.Notes,
	})
	if err != nil {
		ac.respondWorkflowError(ctx, "Failed to assign reviewer", err)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"assignment": assignment,
	})
}

func (ac AssignmentController) GetPaperAssignments(ctx *gin.Context) {
	actor, ok := ac.getActor(ctx)
	if !ok {
		return
	}

	assignments, err := ac.app.Workflow.ListAssignmentsForPaper(ctx, actor, ctx.Params.ByName("paperId"))
	if err != nil {
		ac.respondWorkflowError(ctx, "Failed to get assignments", err)
		return
	}

	if len(assignments) == 0 {
		assignments = []model.PaperAssignment{}
	}

	util.ResponseSuccess(ctx, gin.H{
		"assignments": assignments,
	})
}

type GetAssignmentsRequest struct {
	PageRequest
	Status []constant.AssignmentStatus `form:"status"`
}

// GetOwnAssignments lists the caller's review queue.
func (ac AssignmentController) GetOwnAssignments(ctx *gin.Context) {
	var params GetAssignmentsRequest

	actor, ok := ac.getActor(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindQuery(&params); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}
	params.Page, params.PageSize = util.NormalizePage(params.Page, params.PageSize)

	assignments, total, err := ac.app.Workflow.ListAssignmentsForReviewer(ctx, actor, params.Status, params.Page, params.PageSize)
	if err != nil {
		ac.respondWorkflowError(ctx, "Failed to get assignments", err)
		return
	}

	if len(assignments) == 0 {
		assignments = []model.PaperAssignment{}
	}

	util.ResponseSuccess(ctx, util.Page(total, params.Page, params.PageSize, gin.H{
		"assignments": assignments,
		"status":      params.Status,
	}))
}

func (ac AssignmentController) UpdateAssignmentStatus(ctx *gin.Context) {
	type Request struct {
		Status constant.AssignmentStatus `json:"status" binding:"required"`
	}
	var body Request

	actor, ok := ac.getActor(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	assignment, err := ac.app.Workflow.UpdateAssignmentStatus(ctx, actor, ctx.Params.ByName("assignmentId"), body.Status)
	if err != nil {
		ac.respondWorkflowError(ctx, "Failed to update assignment", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"assignment": assignment,
	})
}

func (ac AssignmentController) CancelAssignment(ctx *gin.Context) {
	actor, ok := ac.getActor(ctx)
	if !ok {
		return
	}

	assignment, err := ac.app.Workflow.Cancel(ctx, actor, ctx.Params.ByName("assignmentId"))
	if err != nil {
		ac.respondWorkflowError(ctx, "Failed to cancel assignment", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"assignment": assignment,
	})
}
