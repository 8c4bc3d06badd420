package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	appcontext "github.com/SeakMengs/ConfPortal/internal/app_context"
	"github.com/SeakMengs/ConfPortal/internal/auth"
	"github.com/SeakMengs/ConfPortal/internal/util"
	"github.com/SeakMengs/ConfPortal/internal/workflow"
	"github.com/gin-gonic/gin"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index      *IndexController
	Auth       *AuthController
	Conference *ConferenceController
	Paper      *PaperController
	Assignment *AssignmentController
	Review     *ReviewController
	Decision   *DecisionController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:      &IndexController{baseController: bc},
		Auth:       &AuthController{baseController: bc},
		Conference: &ConferenceController{baseController: bc},
		Paper:      &PaperController{baseController: bc},
		Assignment: &AssignmentController{baseController: bc},
		Review:     &ReviewController{baseController: bc},
		Decision:   &DecisionController{baseController: bc},
	}
}

func (b *baseController) getAuthUser(ctx *gin.Context) (*auth.JWTPayload, error) {
	user, exists := ctx.Get("user")
	if !exists {
		return nil, errors.New("user not found in context")
	}

	jsonUser, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	var authUser *auth.JWTPayload
	err = json.Unmarshal(jsonUser, &authUser)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return authUser, nil
}

// getActor responds 401 itself when the caller cannot be resolved.
func (b *baseController) getActor(ctx *gin.Context) (workflow.Actor, bool) {
	user, err := b.getAuthUser(ctx)
	if err != nil {
		b.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return workflow.Actor{}, false
	}

	return workflow.NewActor(user.ID, user.Email, user.Role), true
}

func workflowStatus(kind workflow.Kind) int {
	switch kind {
	case workflow.KindUnauthorized, workflow.KindNotAssigned:
		return http.StatusForbidden
	case workflow.KindNotFound:
		return http.StatusNotFound
	case workflow.KindInvalidRating, workflow.KindInvalidInput:
		return http.StatusBadRequest
	case "":
		return http.StatusInternalServerError
	default:
		return http.StatusConflict
	}
}

// respondWorkflowError renders a workflow rejection with its field, or a 500
// for anything else.
func (b *baseController) respondWorkflowError(ctx *gin.Context, message string, err error) {
	var we *workflow.Error
	if !errors.As(err, &we) {
		b.app.Logger.Errorw(message, "path", ctx.FullPath(), "error", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, message, util.GenerateErrorMessages(errors.New("internal server error")), nil)
		return
	}

	field := we.Field
	if field == "" {
		field = string(we.Kind)
	}

	util.ResponseFailed(ctx, workflowStatus(we.Kind), message, util.GenerateErrorMessages(we, field), gin.H{
		"kind": we.Kind,
	})
}
