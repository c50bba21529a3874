package routes

import (
	"societyhub-be/controllers"
	"societyhub-be/middlewares"
	"societyhub-be/models"

	"github.com/gin-gonic/gin"
)

func PaymentRoutes(api *gin.RouterGroup, pc *controllers.PaymentController, auth gin.HandlerFunc) {
	admin := middlewares.RequireRole(models.RoleAdmin)
	resident := middlewares.RequireRole(models.RoleResident)

	payments := api.Group("/payments", auth)
	{
		payments.GET("", pc.GetPayments)
		payments.POST("", admin, pc.CreatePayment)
		payments.POST("/submit", resident, pc.SubmitPayment)
		payments.GET("/my-payments", resident, pc.GetMyPayments)
		payments.GET("/all", admin, pc.GetAllPayments)
		payments.PUT("/update/:id", admin, pc.UpdateStatus)
	}
}
