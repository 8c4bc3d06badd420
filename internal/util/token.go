package util

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	TokenSchemeBearer  = "Bearer"
	TokenSchemeRefresh = "Refresh"
)

var (
	ErrNoAuthorizationHeader = errors.New("no authorization header specified")
	ErrMalformedAuthHeader   = errors.New("wrong authorization header format")
)

// ReadToken returns the token of an "Authorization: <scheme> <token>" header.
// The scheme is matched case insensitively.
func ReadToken(ctx *gin.Context, scheme string) (string, error) {
	header := strings.TrimSpace(ctx.GetHeader("Authorization"))
	if header == "" {
		return "", ErrNoAuthorizationHeader
	}

	got, token, found := strings.Cut(header, " ")
	if !found {
		return "", ErrMalformedAuthHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.New("token is empty")
	}

	if !strings.EqualFold(got, scheme) {
		return "", errors.New("invalid token type; expected '" + scheme + "'")
	}

	return token, nil
}

func ReadBearerToken(ctx *gin.Context) (string, error) {
	return ReadToken(ctx, TokenSchemeBearer)
}

func ReadRefreshToken(ctx *gin.Context) (string, error) {
	return ReadToken(ctx, TokenSchemeRefresh)
}
