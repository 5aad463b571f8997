package routes

import (
	"github.com/gin-gonic/gin"

	"sheharfix-be/controllers"
	"sheharfix-be/middlewares"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, ac *controllers.AuthController) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", ac.Register)
		auth.POST("/login", ac.Login)
		auth.GET("/me", middlewares.RequireAuth(), ac.Me)
		auth.POST("/avatar", middlewares.RequireAuth(), ac.UploadAvatar)
	}
}
