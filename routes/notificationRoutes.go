package routes

import (
	"societyhub-be/controllers"
	"societyhub-be/middlewares"
	"societyhub-be/models"

	"github.com/gin-gonic/gin"
)

func NotificationRoutes(api *gin.RouterGroup, nc *controllers.NotificationController, auth gin.HandlerFunc) {
	notifications := api.Group("/notifications", auth)
	{
		notifications.GET("", nc.GetNotifications)
		notifications.POST("", middlewares.RequireRole(models.RoleAdmin), nc.CreateNotification)
	}
}
