package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sudhamrit/grocery-api/controllers"
	"github.com/sudhamrit/grocery-api/middlewares"
)

func AdminRoutes(server *gin.Engine, admin *controllers.AdminController) {
	api := server.Group("/api", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		api.POST("/users", admin.CreateUser)
		api.GET("/users", admin.GetUsers)
		api.GET("/admin/stats", admin.GetOrderStats)
	}
}
