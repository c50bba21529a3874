package routes

import (
	"societyhub-be/controllers"
	"societyhub-be/middlewares"
	"societyhub-be/models"

	"github.com/gin-gonic/gin"
)

func NoticeRoutes(api *gin.RouterGroup, nc *controllers.NoticeController, auth gin.HandlerFunc) {
	admin := middlewares.RequireRole(models.RoleAdmin)

	notices := api.Group("/notices", auth)
	{
		notices.GET("", nc.GetNotices)
		notices.GET("/:id", nc.GetNoticeByID)
		notices.POST("", admin, nc.CreateNotice)
		notices.PUT("/:id", admin, nc.UpdateNotice)
		notices.DELETE("/:id", admin, nc.DeleteNotice)
	}
}
