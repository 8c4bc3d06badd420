package controller

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/ConfPortal/internal/auth"
	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/util"
	"github.com/gin-gonic/gin"
)

var errWrongTokenType = errors.New("invalid jwt token type")

type AuthController struct {
	*baseController
}

// tokenClaims reads a token with read and checks it has tokenType. Signature
// and expiry only, the users table is not consulted.
func (ac AuthController) tokenClaims(ctx *gin.Context, read func(*gin.Context) (string, error), tokenType string) (*auth.JWTClaims, error) {
	token, err := read(ctx)
	if err != nil {
		return nil, err
	}

	claims, err := ac.app.JWTService.VerifyJwtToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Type != tokenType {
		return nil, errWrongTokenType
	}
	return claims, nil
}

func (ac AuthController) VerifyJwtAccessToken(ctx *gin.Context) {
	claims, err := ac.tokenClaims(ctx, util.ReadBearerToken, constant.JWT_TYPE_ACCESS)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err, "token"), gin.H{
			"tokenValid": false,
		})
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"tokenValid": true,
		"payload":    claims,
	})
}

// RefreshAccessToken rotates both tokens from a valid refresh token.
func (ac AuthController) RefreshAccessToken(ctx *gin.Context) {
	claims, err := ac.tokenClaims(ctx, util.ReadRefreshToken, constant.JWT_TYPE_REFRESH)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err, "token"), nil)
		return
	}

	refreshToken, accessToken, err := ac.app.JWTService.GenerateRefreshAndAccessToken(claims.User)
	if err != nil {
		ac.app.Logger.Errorw("Failed to rotate tokens", "userId", claims.User.ID, "error", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(errors.New("failed to refresh token"), "token"), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"refreshToken": refreshToken,
		"accessToken":  accessToken,
	})
}
