package routes

import (
	"societyhub-be/controllers"
	"societyhub-be/middlewares"
	"societyhub-be/models"

	"github.com/gin-gonic/gin"
)

// ComplaintRoutes sets up the complaint routes; filing is rate limited.
func ComplaintRoutes(api *gin.RouterGroup, cc *controllers.ComplaintController, auth, limiter gin.HandlerFunc) {
	admin := middlewares.RequireRole(models.RoleAdmin)
	resident := middlewares.RequireRole(models.RoleResident)

	complaints := api.Group("/complaints", auth)
	{
		complaints.GET("", cc.GetComplaints)
		complaints.POST("", resident, limiter, cc.CreateComplaint)
		complaints.PUT("/:id", admin, cc.UpdateComplaint)
		complaints.PUT("/:id/edit", resident, cc.EditComplaint)
		complaints.DELETE("/:id", resident, cc.DeleteComplaint)
	}
}
