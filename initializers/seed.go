package initializers

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/sudhamrit/grocery-api/models"
	"github.com/sudhamrit/grocery-api/storage"
)

var sampleProducts = []models.Product{
	{
		Name:        "Fresh Apples",
		Description: "Sweet and crispy apples, perfect for snacking or baking",
		Price:       120,
		Image:       "https://images.unsplash.com/photo-1560806887-1e4cd0b6cbd6",
		Category:    "Fruits & Vegetables",
		Stock:       100,
	},
	{
		Name:        "Whole Milk",
		Description: "Fresh, pasteurized whole milk from local dairy farms",
		Price:       60,
		Image:       "https://images.unsplash.com/photo-1550583724-b2692b85b150",
		Category:    "Dairy & Eggs",
		Stock:       50,
	},
	{
		Name:        "Whole Wheat Bread",
		Description: "Freshly baked whole wheat bread, rich in fiber",
		Price:       40,
		Image:       "https://images.unsplash.com/photo-1509440159596-0249088772ff",
		Category:    "Grocery & Staples",
		Stock:       30,
	},
	{
		Name:        "Orange Juice",
		Description: "100% pure orange juice, no added sugar",
		Price:       80,
		Image:       "https://images.unsplash.com/photo-1613478223719-2ab802602423",
		Category:    "Beverages",
		Stock:       40,
	},
	{
		Name:        "Trail Mix",
		Description: "Healthy mix of nuts, dried fruits, and seeds",
		Price:       150,
		Image:       "https://images.unsplash.com/photo-1556760544-74068565f05c",
		Category:    "Snacks & Packaged Foods",
		Stock:       60,
	},
}

// SeedData creates the default admin account and the sample catalogue.
// It is safe to run on every startup.
func SeedData(ctx context.Context, store storage.Store) error {
	if err := seedAdmin(ctx, store); err != nil {
		return err
	}
	return seedProducts(ctx, store)
}

func seedAdmin(ctx context.Context, store storage.Store) error {
	_, err := store.GetUserByUsername(ctx, "sudhamrit")
	if err == nil {
		log.Println("Admin account already exists")
		return nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return fmt.Errorf("check admin account: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("mysudhamrit"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username: "sudhamrit",
		Password: string(hashed),
		Role:     models.RoleAdmin,
		FullName: "Sudhamrit Admin",
		Address:  "Sudhamrit HQ",
		Phone:    "1234567890",
	}
	if err := store.CreateUser(ctx, &admin); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}
	log.Println("Created admin account:", admin.Username)
	return nil
}

func seedProducts(ctx context.Context, store storage.Store) error {
	existing, _, err := store.ListProducts(ctx, storage.ProductFilter{})
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if len(existing) > 0 {
		log.Println("Products already seeded")
		return nil
	}

	seen := map[string]bool{}
	for _, product := range sampleProducts {
		p := product
		if err := store.CreateProduct(ctx, &p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		if !seen[p.Category] {
			seen[p.Category] = true
			category := models.Category{Name: p.Category}
			if err := store.CreateCategory(ctx, &category); err != nil {
				return fmt.Errorf("seed category %q: %w", category.Name, err)
			}
		}
	}
	log.Println("Sample products created")
	return nil
}
