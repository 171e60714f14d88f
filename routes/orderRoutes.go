package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sudhamrit/grocery-api/controllers"
	"github.com/sudhamrit/grocery-api/middlewares"
)

func OrderRoutes(server *gin.Engine, orders *controllers.OrderController) {
	api := server.Group("/api", middlewares.RequireAuth())
	{
		api.POST("/orders", orders.CreateOrder)
		api.GET("/orders", orders.GetOrders)
		api.PATCH("/orders/:id/status", orders.UpdateOrderStatus)
	}
}
