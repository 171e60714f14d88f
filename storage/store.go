package storage

import (
	"context"
	"errors"

	"github.com/sudhamrit/grocery-api/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrUsernameTaken   = errors.New("username already taken")
)

type ProductFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

// OrderFilter selects orders by equality; zero fields are ignored.
type OrderFilter struct {
	UserID            int
	DeliveryPartnerID int
}

// Store is the persistence contract. The gorm implementation backs
// production; the in-memory implementation backs tests and local runs.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id int) error

	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	GetProduct(ctx context.Context, id int) (models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id int, patch models.ProductPatch) (models.Product, error)
	DeleteProduct(ctx context.Context, id int) error

	GetCart(ctx context.Context, userID int) (models.Cart, error)
	ReplaceCart(ctx context.Context, userID int, items []models.OrderItem, total float64) (models.Cart, error)

	// PlaceOrder persists the order, assigning its id and creation time.
	// When maxActivePerPartner > 0 it also claims, atomically with the
	// insert, the lowest-id delivery partner holding fewer than that many
	// active (assigned/delivering) orders; on a claim the order is stored
	// as "assigned" with the partner set, otherwise it stays "pending".
	PlaceOrder(ctx context.Context, order *models.Order, maxActivePerPartner int) error
	GetOrder(ctx context.Context, id int) (models.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status string, partnerID *int) (models.Order, error)
	OrderStats(ctx context.Context) (models.OrderStats, error)
}
