package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sudhamrit/grocery-api/controllers"
	"github.com/sudhamrit/grocery-api/middlewares"
)

func ProductRoutes(server *gin.Engine, products *controllers.ProductController) {
	api := server.Group("/api")
	{
		api.GET("/products", products.GetProducts)
		api.GET("/products/:id", products.GetProduct)
	}

	admin := server.Group("/api", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/products", products.CreateProduct)
		admin.PATCH("/products/:id", products.UpdateProduct)
		admin.DELETE("/products/:id", products.DeleteProduct)
		admin.POST("/products/:id/images", products.UploadProductImage)
	}
}
