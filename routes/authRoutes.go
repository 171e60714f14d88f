package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sudhamrit/grocery-api/controllers"
	"github.com/sudhamrit/grocery-api/middlewares"
)

func AuthRoutes(server *gin.Engine, auth *controllers.AuthController) {
	api := server.Group("/api")
	{
		api.POST("/register", auth.Register)
		api.POST("/login", auth.Login)
		api.POST("/logout", auth.Logout)
		api.GET("/user", middlewares.RequireAuth(), auth.CurrentUser)
	}
}
