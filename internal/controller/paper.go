package controller

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"github.com/SeakMengs/ConfPortal/internal/repository"
	"github.com/SeakMengs/ConfPortal/internal/util"
	"github.com/SeakMengs/ConfPortal/internal/workflow"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type PaperController struct {
	*baseController
}

const (
	MaxPaperFileSize = 20 << 20

	ErrPaperFileIsInvalidOrNotSupported = "paper file is invalid or not supported"
	ErrPaperFileTooLarge                = "paper file must be at most 20MB"
	ErrFileStorageUnavailable           = "file storage is unavailable"
	ErrPaperHasNoFile                   = "paper has no uploaded file"
)

// uploadPaperFile validates the optional "paperFile" part and stores it. An
// empty object name means no file was sent. It responds itself on failure.
func (pc PaperController) uploadPaperFile(ctx *gin.Context, actor workflow.Actor) (string, bool) {
	file, err := ctx.FormFile("paperFile")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", true
	}
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid paper file", util.GenerateErrorMessages(err, "paperFile"), nil)
		return "", false
	}

	if file.Size > MaxPaperFileSize {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid paper file", util.GenerateErrorMessages(errors.New(ErrPaperFileTooLarge), "paperFile"), nil)
		return "", false
	}

	src, err := file.Open()
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to open paper file", util.GenerateErrorMessages(err, "paperFile"), nil)
		return "", false
	}
	defer src.Close()

	if _, err := util.ValidatePdf(src); err != nil {
		pc.app.Logger.Debugf("Rejected paper file %s: %v", file.Filename, err)
		message := ErrPaperFileIsInvalidOrNotSupported
		if errors.Is(err, util.ErrPdfTooManyPages) {
			message = fmt.Sprintf("paper must have at most %d pages", util.MaxPaperPages)
		}
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid paper file", util.GenerateErrorMessages(errors.New(message), "paperFile"), nil)
		return "", false
	}

	if pc.app.S3 == nil {
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, "Failed to upload file", util.GenerateErrorMessages(errors.New(ErrFileStorageUnavailable), "paperFile"), nil)
		return "", false
	}

	if err := rewind(src); err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to upload file", util.GenerateErrorMessages(err, "paperFile"), nil)
		return "", false
	}

	objectName, err := util.ToPaperObjectName(actor.ID, file.Filename)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to upload file", util.GenerateErrorMessages(err, "paperFile"), nil)
		return "", false
	}

	if _, err := util.UploadFileToS3(ctx, src, file.Size, &util.FileUploadOptions{
		ObjectName:  objectName,
		ContentType: "application/pdf",
		Bucket:      pc.app.Config.Minio.BUCKET,
		S3:          pc.app.S3,
	}); err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to upload file", util.GenerateErrorMessages(err, "paperFile"), nil)
		return "", false
	}

	return objectName, true
}

func rewind(f multipart.File) error {
	_, err := f.Seek(0, 0)
	return err
}

// discardPaperFile removes an object uploaded for a request the workflow then
// rejected. Failures are logged only.
func (pc PaperController) discardPaperFile(ctx *gin.Context, objectName string) {
	if objectName == "" {
		return
	}

	// finish even if the client went away
	removeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := util.RemoveFileFromS3(removeCtx, pc.app.S3, pc.app.Config.Minio.BUCKET, objectName); err != nil {
		pc.app.Logger.Errorw("Failed to remove rejected paper file", "object", objectName, "error", err)
	}
}

// authorPaper loads a paper written by actor before anything is uploaded for
// it. It responds itself on failure.
func (pc PaperController) authorPaper(ctx *gin.Context, actor workflow.Actor, message string) (*model.Paper, bool) {
	if !actor.Can(constant.PaperSubmit) {
		pc.respondWorkflowError(ctx, message, workflow.ErrUnauthorized)
		return nil, false
	}

	paper, err := pc.app.Workflow.GetPaper(ctx, actor, ctx.Params.ByName("paperId"))
	if err != nil {
		pc.respondWorkflowError(ctx, message, err)
		return nil, false
	}

	if paper.AuthorID != actor.ID {
		pc.respondWorkflowError(ctx, message, workflow.ErrUnauthorized)
		return nil, false
	}

	return paper, true
}

func (pc PaperController) CreatePaper(ctx *gin.Context) {
	type Request struct {
		ConferenceID string              `json:"conferenceId" form:"conferenceId" binding:"required,uuid"`
		Title        string              `json:"title" form:"title" binding:"required,strNotEmpty,max=255"`
		Topic        constant.PaperTopic `json:"topic" form:"topic" binding:"required,oneof=AI ML 'Data Science' 'Software Engineering' 'Computer Networks' Cybersecurity Other"`
		Keyword      string              `json:"keyword" form:"keyword" binding:"max=255"`
		Abstract     string              `json:"abstract" form:"abstract" binding:"required,strNotEmpty"`
	}
	var body Request

	actor, ok := pc.getActor(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	// checked before anything is uploaded
	if !actor.Can(constant.PaperCreate) {
		pc.respondWorkflowError(ctx, "Failed to create paper", workflow.ErrUnauthorized)
		return
	}
	if _, err := pc.app.Workflow.GetConference(ctx, body.ConferenceID); err != nil {
		pc.respondWorkflowError(ctx, "Failed to create paper", err)
		return
	}

	filePath, ok := pc.uploadPaperFile(ctx, actor)
	if !ok {
		return
	}

	paper, err := pc.app.Workflow.CreatePaper(ctx, actor, workflow.CreatePaperInput{
		ConferenceID: body.ConferenceID,
		Title:        body.Title,
		Topic:        body.Topic,
		Keyword:      body.Keyword,
		Abstract:     body.Abstract,
		FilePath:     filePath,
	})
	if err != nil {
		pc.discardPaperFile(ctx, filePath)
		pc.respondWorkflowError(ctx, "Failed to create paper", err)
		return
	}

	util.ResponseCreated(ctx, gin.H{
		"paper": paper,
	})
}

func (pc PaperController) GetPaperById(ctx *gin.Context) {
	actor, ok := pc.getActor(ctx)
	if !ok {
		return
	}

	paper, err := pc.app.Workflow.GetPaper(ctx, actor, ctx.Params.ByName("paperId"))
	if err != nil {
		pc.respondWorkflowError(ctx, "Failed to get paper", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"paper": paper,
	})
}

type GetPapersRequest struct {
	PageRequest
	ConferenceID string                 `form:"conferenceId" binding:"omitempty,uuid"`
	Search       string                 `form:"search" binding:"max=255"`
	Status       []constant.PaperStatus `form:"status"`
}

func (pc PaperController) GetPaperList(ctx *gin.Context) {
	var params GetPapersRequest

	actor, ok := pc.getActor(ctx)
	if !ok {
		return
	}

	if err := ctx.ShouldBindQuery(&params); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}
	params.Page, params.PageSize = util.NormalizePage(params.Page, params.PageSize)

	papers, total, err := pc.app.Workflow.ListPapers(ctx, actor, repository.PaperFilter{
		ConferenceID: params.ConferenceID,
		Status:       params.Status,
		Search:       params.Search,
	}, params.Page, params.PageSize)
	if err != nil {
		pc.respondWorkflowError(ctx, "Failed to get paper list", err)
		return
	}

	if len(papers) == 0 {
		papers = []repository.PaperSummary{}
	}

	util.ResponseSuccess(ctx, util.Page(total, params.Page, params.PageSize, gin.H{
		"papers": papers,
		"search": params.Search,
		"status": params.Status,
	}))
}

type submitAuthorRequest struct {
	FirstName       string              `json:"firstName" binding:"required,strNotEmpty,max=50"`
	LastName        string              `json:"lastName" binding:"required,strNotEmpty,max=50"`
	Email           string              `json:"email" binding:"required,email"`
	Affiliation     string              `json:"affiliation" binding:"max=255"`
	Country         string              `json:"country" binding:"max=60"`
	Role            constant.AuthorRole `json:"role" binding:"required,oneof=author co_author"`
	IsCorresponding bool                `json:"isCorresponding"`
}

type submitPaperRequest struct {
	Track              string                `json:"track" binding:"required,strNotEmpty,max=100"`
	SubmittedElsewhere bool                  `json:"submittedElsewhere"`
	OriginalSubmission *bool                 `json:"originalSubmission"`
	Authors            []submitAuthorRequest `json:"authors" binding:"required,min=1,dive"`
}

// bindSubmission reads a JSON body, or for multipart requests that also carry
// a "paperFile" the JSON in the "submission" field.
func bindSubmission(ctx *gin.Context, body *submitPaperRequest) error {
	if ctx.ContentType() != binding.MIMEMultipartPOSTForm {
		return ctx.ShouldBindJSON(body)
	}

	raw := ctx.PostForm("submission")
	if raw == "" {
		return errors.New("submission is required")
	}
	return binding.JSON.BindBody([]byte(raw), body)
}

// SubmitPaper accepts an optional "paperFile" when sent as multipart. A draft
// created without a file must bring one.
func (pc PaperController) SubmitPaper(ctx *gin.Context) {
	var body submitPaperRequest

	actor, ok := pc.getActor(ctx)
	if !ok {
		return
	}

	if err := bindSubmission(ctx, &body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err, "submission"), nil)
		return
	}

	paper, ok := pc.authorPaper(ctx, actor, "Failed to submit paper")
	if !ok {
		return
	}

	filePath, ok := pc.uploadPaperFile(ctx, actor)
	if !ok {
		return
	}

	in := workflow.SubmitPaperInput{
		Track:              body.Track,
		SubmittedElsewhere: body.SubmittedElsewhere,
		OriginalSubmission: body.OriginalSubmission == nil || *body.OriginalSubmission,
		FilePath:           filePath,
	}
	for _, a := range body.Authors {
		in.Authors = append(in.Authors, workflow.AuthorInput{
			FirstName:       a.FirstName,
			LastName:        a.LastName,
			Email:           strings.TrimSpace(a.Email),
			Affiliation:     a.Affiliation,
			Country:         a.Country,
			Role:            a.Role,
			IsCorresponding: a.IsCorresponding,
		})
	}

	paper, err := pc.app.Workflow.SubmitPaper(ctx, actor, paper.ID, in)
	if err != nil {
		pc.discardPaperFile(ctx, filePath)
		pc.respondWorkflowError(ctx, "Failed to submit paper", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"paper": paper,
	})
}

// ResubmitPaper accepts an optional revised "paperFile".
func (pc PaperController) ResubmitPaper(ctx *gin.Context) {
	actor, ok := pc.getActor(ctx)
	if !ok {
		return
	}

	paper, ok := pc.authorPaper(ctx, actor, "Failed to resubmit paper")
	if !ok {
		return
	}

	filePath, ok := pc.uploadPaperFile(ctx, actor)
	if !ok {
		return
	}

	paper, err := pc.app.Workflow.ResubmitPaper(ctx, actor, paper.ID, filePath)
	if err != nil {
		pc.discardPaperFile(ctx, filePath)
		pc.respondWorkflowError(ctx, "Failed to resubmit paper", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"paper": paper,
	})
}

func (pc PaperController) ReopenReview(ctx *gin.Context) {
	actor, ok := pc.getActor(ctx)
	if !ok {
		return
	}

	paper, err := pc.app.Workflow.ReopenReview(ctx, actor, ctx.Params.ByName("paperId"))
	if err != nil {
		pc.respondWorkflowError(ctx, "Failed to reopen review", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"paper": paper,
	})
}

// GetPaperFile returns a short lived download link instead of streaming the
// object through the api.
func (pc PaperController) GetPaperFile(ctx *gin.Context) {
	actor, ok := pc.getActor(ctx)
	if !ok {
		return
	}

	paper, err := pc.app.Workflow.GetPaper(ctx, actor, ctx.Params.ByName("paperId"))
	if err != nil {
		pc.respondWorkflowError(ctx, "Failed to get paper file", err)
		return
	}

	if paper.FilePath == "" {
		util.ResponseFailed(ctx, http.StatusNotFound, "Failed to get paper file", util.GenerateErrorMessages(errors.New(ErrPaperHasNoFile), "paperFile"), nil)
		return
	}

	if pc.app.S3 == nil {
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, "Failed to get paper file", util.GenerateErrorMessages(errors.New(ErrFileStorageUnavailable), "paperFile"), nil)
		return
	}

	url, err := util.PresignedFileURL(ctx, pc.app.S3, pc.app.Config.Minio.BUCKET, paper.FilePath, paper.Title+".pdf")
	if err != nil {
		pc.app.Logger.Errorf("Failed to presign paper file %s: %v", paper.FilePath, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get paper file", util.GenerateErrorMessages(err, "paperFile"), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"url":       url.String(),
		"expiresIn": int(util.PaperFileURLExpiry.Seconds()),
	})
}
