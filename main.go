package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sudhamrit/grocery-api/controllers"
	"github.com/sudhamrit/grocery-api/initializers"
	"github.com/sudhamrit/grocery-api/routes"
	"github.com/sudhamrit/grocery-api/services"
	"github.com/sudhamrit/grocery-api/storage"
	"github.com/sudhamrit/grocery-api/utils"
)

func main() {
	initializers.LoadEnv()
	db := initializers.ConnectToDB()
	initializers.SyncDatabase(db)

	store := storage.NewGormStore(db)
	if err := initializers.SeedData(context.Background(), store); err != nil {
		log.Println("Seeding error:", err)
	}

	notifier := utils.NewWebhookNotifier(os.Getenv("ORDER_WEBHOOK_URL"))
	orderService := services.NewOrderService(store, notifier)

	allowedOrigins := []string{"http://localhost:5000", "http://localhost:5173"}
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		allowedOrigins = append(allowedOrigins, frontend)
	}

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, controllers.NewAuthController(store))
	routes.ProductRoutes(server, controllers.NewProductController(store))
	routes.CategoryRoutes(server, controllers.NewCategoryController(store))
	routes.CartRoutes(server, controllers.NewCartController(store))
	routes.OrderRoutes(server, controllers.NewOrderController(store, orderService))
	routes.AdminRoutes(server, controllers.NewAdminController(store))

	server.Run()
}
