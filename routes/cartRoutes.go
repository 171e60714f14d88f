package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sudhamrit/grocery-api/controllers"
	"github.com/sudhamrit/grocery-api/middlewares"
)

func CartRoutes(server *gin.Engine, carts *controllers.CartController) {
	api := server.Group("/api", middlewares.RequireAuth())
	{
		api.GET("/cart", carts.GetCart)
		api.POST("/cart", carts.UpdateCart)
	}
}
