package initializers

import (
	"log"

	"gorm.io/gorm"

	"github.com/sudhamrit/grocery-api/models"
)

func SyncDatabase(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.Order{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("Database synced successfully.")
}
