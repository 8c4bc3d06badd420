package middleware

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"github.com/SeakMengs/ConfPortal/internal/util"
	"github.com/gin-gonic/gin"
)

func (m Middleware) AuthMiddleware(ctx *gin.Context) {
	token, err := util.ReadBearerToken(ctx)
	if err != nil {
		m.app.Logger.Debugf("Failed to read token: %v", err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err, "unauthorized"), nil)
		return
	}

	claim, err := m.app.JWTService.VerifyJwtToken(token)
	if err != nil {
		m.app.Logger.Debugf("Failed to verify token: %v", err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid token", util.GenerateErrorMessages(err, "unauthorized"), nil)
		return
	}

	if claim.Type != constant.JWT_TYPE_ACCESS {
		m.app.Logger.Debugf("Invalid token type: %s", claim.Type)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid access token type", util.GenerateErrorMessages(errors.New("invalid access token type"), "unauthorized"), nil)
		return
	}

	if !claim.User.Role.IsValid() {
		util.ResponseFailed(ctx, http.StatusForbidden, "Unknown role", util.GenerateErrorMessages(errors.New("unknown role"), "role"), nil)
		return
	}

	// Identities are issued elsewhere; keep a local row so papers and
	// assignments can reference the caller.
	if err := m.app.Repository.User.Sync(ctx, nil, &model.User{
		BaseModel: model.BaseModel{ID: claim.User.ID},
		Email:     claim.User.Email,
		FirstName: claim.User.FirstName,
		LastName:  claim.User.LastName,
		Role:      claim.User.Role,
	}); err != nil {
		m.app.Logger.Errorf("Failed to sync user %s: %v", claim.User.ID, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err, "user"), nil)
		return
	}

	ctx.Set("user", claim.User)
	ctx.Next()
}
