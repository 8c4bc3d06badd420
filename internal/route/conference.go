package route

import (
	"github.com/SeakMengs/ConfPortal/internal/controller"
	"github.com/SeakMengs/ConfPortal/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Conferences(r *gin.RouterGroup, cc *controller.ConferenceController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/conferences")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.POST("", cc.CreateConference)
		v1.GET("", cc.GetConferenceList)
		v1.GET("/:conferenceId", cc.GetConferenceById)
		v1.GET("/:conferenceId/agenda", cc.GetAgenda)
		v1.POST("/:conferenceId/agenda", cc.CreateAgendaItem)
		v1.DELETE("/:conferenceId/agenda/:agendaItemId", cc.DeleteAgendaItem)
	}
}
