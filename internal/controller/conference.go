package controller

import (
	"net/http"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/model"
	"github.com/SeakMengs/ConfPortal/internal/util"
	"github.com/SeakMengs/ConfPortal/internal/workflow"
	"github.com/gin-gonic/gin"
)

type ConferenceController struct {
	*baseController
}

func (cc ConferenceController) CreateConference(ctx *gin.Context) {
	type Request struct {
		Name               string    `json:"name" binding:"required,strNotEmpty,max=200"`
		Acronym            string    `json:"acronym" binding:"required,strNotEmpty,cmax=30"`
		Venue              string    `json:"venue" binding:"max=500"`
		StartsOn           time.Time `json:"startsOn" binding:"required"`
		EndsOn             time.Time `json:"endsOn" binding:"required"`
		SubmissionDeadline time.Time `json:"submissionDeadline" binding:"required"`
	}
	var body Request

	actor, ok := cc.getActor(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	conference, err := cc.app.Workflow.CreateConference(ctx, actor, workflow.CreateConferenceInput{
		Name:               body.Name,
		Acronym:            body.Acronym,
		Venue:              body.Venue,
		StartsOn:           body.StartsOn,
		EndsOn:             body.EndsOn,
		SubmissionDeadline: body.SubmissionDeadline,
	})
	if err != nil {
		cc.respondWorkflowError(ctx, "Failed to create conference", err)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"conference": conference,
	})
}

func (cc ConferenceController) GetConferenceById(ctx *gin.Context) {
	conferenceId := ctx.Params.ByName("conferenceId")

	conference, err := cc.app.Workflow.GetConference(ctx, conferenceId)
	if err != nil {
		cc.respondWorkflowError(ctx, "Failed to get conference", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"conference": conference,
	})
}

type PageRequest struct {
	Page     uint `form:"page" binding:"omitempty,gte=1"`
	PageSize uint `form:"pageSize" binding:"omitempty,gte=1,lte=100"`
}

func (cc ConferenceController) GetConferenceList(ctx *gin.Context) {
	var params PageRequest

	if err := ctx.ShouldBindQuery(&params); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}
	params.Page, params.PageSize = util.NormalizePage(params.Page, params.PageSize)

	conferences, total, err := cc.app.Workflow.ListConferences(ctx, params.Page, params.PageSize)
	if err != nil {
		cc.respondWorkflowError(ctx, "Failed to get conference list", err)
		return
	}

	if len(conferences) == 0 {
		conferences = []model.Conference{}
	}

	util.ResponseSuccess(ctx, util.Page(total, params.Page, params.PageSize, gin.H{
		"conferences": conferences,
	}))
}

func (cc ConferenceController) CreateAgendaItem(ctx *gin.Context) {
	type Request struct {
		Title    string    `json:"title" binding:"required,strNotEmpty,max=255"`
		Speaker  string    `json:"speaker" binding:"max=255"`
		Room     string    `json:"room" binding:"max=100"`
		StartsAt time.Time `json:"startsAt" binding:"required"`
		EndsAt   time.Time `json:"endsAt" binding:"required"`
		PaperID  string    `json:"paperId" binding:"omitempty,uuid"`
	}
	var body Request

	actor, ok := cc.getActor(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	item, err := cc.app.Workflow.CreateAgendaItem(ctx, actor, ctx.Params.ByName("conferenceId"), workflow.AgendaItemInput{
		Title:    body.Title,
		Speaker:  body.Speaker,
		Room:     body.Room,
		StartsAt: body.StartsAt,
		EndsAt:   body.EndsAt,
		PaperID:  body.PaperID,
	})
	if err != nil {
		cc.respondWorkflowError(ctx, "Failed to create agenda item", err)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"agendaItem": item,
	})
}

func (cc ConferenceController) GetAgenda(ctx *gin.Context) {
	days, err := cc.app.Workflow.ListAgenda(ctx, ctx.Params.ByName("conferenceId"))
	if err != nil {
		cc.respondWorkflowError(ctx, "Failed to get agenda", err)
		return
	}

	if days == nil {
		days = []workflow.AgendaDay{}
	}

	util.ResponseSuccess(ctx, gin.H{
		"days": days,
	})
}

func (cc ConferenceController) DeleteAgendaItem(ctx *gin.Context) {
	actor, ok := cc.getActor(ctx)
	if !ok {
		return
	}

	if err := cc.app.Workflow.DeleteAgendaItem(ctx, actor, ctx.Params.ByName("conferenceId"), ctx.Params.ByName("agendaItemId")); err != nil {
		cc.respondWorkflowError(ctx, "Failed to delete agenda item", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}
