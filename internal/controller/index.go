package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/util"
	"github.com/gin-gonic/gin"
)

type IndexController struct {
	*baseController
}

// Index reports whether the database answers.
func (ic IndexController) Index(ctx *gin.Context) {
	sqlDb, err := ic.app.Repository.DB.DB()
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err = sqlDb.PingContext(pingCtx)
	}

	if err != nil {
		ic.app.Logger.Errorf("Health check failed: %v", err)
		util.ResponseFailed(ctx, http.StatusServiceUnavailable, "Database unavailable", util.GenerateErrorMessages(err, "database"), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"name":   util.GetAppName(),
		"status": "ok",
	})
}
