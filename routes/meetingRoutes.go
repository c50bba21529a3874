package routes

import (
	"societyhub-be/controllers"
	"societyhub-be/middlewares"
	"societyhub-be/models"

	"github.com/gin-gonic/gin"
)

// MeetingRoutes sets up the meeting and poll routes
func MeetingRoutes(api *gin.RouterGroup, mc *controllers.MeetingController, pc *controllers.PollController, auth gin.HandlerFunc) {
	admin := middlewares.RequireRole(models.RoleAdmin)
	resident := middlewares.RequireRole(models.RoleResident)

	meetings := api.Group("/meetings", auth)
	{
		meetings.POST("", admin, mc.CreateMeeting)
		meetings.GET("", mc.GetMeetings)
		meetings.GET("/:id", mc.GetMeetingByID)
		meetings.PUT("/:id", admin, mc.UpdateMeeting)
		meetings.DELETE("/:id", admin, mc.DeleteMeeting)

		meetings.POST("/:id/poll", admin, pc.CreatePoll)
		meetings.DELETE("/:id/poll", admin, pc.DeletePoll)
		meetings.POST("/:id/vote", resident, pc.Vote)
		meetings.GET("/:id/results", admin, pc.Results)
	}
}
