package routes

import (
	"societyhub-be/controllers"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(api *gin.RouterGroup, ac *controllers.AuthController, auth gin.HandlerFunc) {
	group := api.Group("/auth")
	{
		group.POST("/signup", ac.Signup)
		group.POST("/login", ac.Login)
		group.GET("/me", auth, ac.Me)
	}
}
