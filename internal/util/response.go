package util

import (
	"net/http"

	constant "github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/gin-gonic/gin"
)

// Response is the envelope of every api answer.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func BuildResponseSuccess(data any) Response {
	if data == nil {
		data = gin.H{}
	}

	return Response{
		Success: true,
		Message: constant.REQUEST_SUCCESSFUL,
		Data:    data,
	}
}

func ResponseSuccess(ctx *gin.Context, data any) {
	ctx.AbortWithStatusJSON(http.StatusOK, BuildResponseSuccess(data))
}

// ResponseCreated is ResponseSuccess for endpoints that store a new resource.
func ResponseCreated(ctx *gin.Context, data any) {
	ctx.AbortWithStatusJSON(http.StatusCreated, BuildResponseSuccess(data))
}

func BuildResponseFailed(message string, err any, data any) Response {
	if message == "" {
		message = constant.REQUEST_UNSUCCESSFUL
	}

	switch e := err.(type) {
	case nil:
		err = []ApiError{}
	case error:
		err = GenerateErrorMessages(e)
	}

	if data == nil {
		data = gin.H{}
	}

	return Response{
		Success: false,
		Message: message,
		Errors:  err,
		Data:    data,
	}
}

func ResponseFailed(ctx *gin.Context, code int, message string, err any, data any) {
	ctx.AbortWithStatusJSON(code, BuildResponseFailed(message, err, data))
}

// Page builds the pagination part of a list response. Extra keys are merged in.
func Page(total int64, page, pageSize uint, extra gin.H) gin.H {
	h := gin.H{
		"total":     total,
		"page":      page,
		"pageSize":  pageSize,
		"totalPage": CalculateTotalPage(total, pageSize),
	}
	for k, v := range extra {
		h[k] = v
	}
	return h
}
