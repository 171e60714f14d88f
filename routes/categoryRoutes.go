package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sudhamrit/grocery-api/controllers"
	"github.com/sudhamrit/grocery-api/middlewares"
)

func CategoryRoutes(server *gin.Engine, categories *controllers.CategoryController) {
	server.GET("/api/categories", categories.GetCategories)

	admin := server.Group("/api", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/categories", categories.CreateCategory)
		admin.DELETE("/categories/:id", categories.DeleteCategory)
	}
}
