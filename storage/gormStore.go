package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sudhamrit/grocery-api/models"
)

// GormStore is the relational implementation of Store, backed by Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return ErrUsernameTaken
	}
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *GormStore) GetUser(ctx context.Context, id int) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("id asc").Find(&users).Error
	return users, err
}

func (s *GormStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Order("id asc").Find(&categories).Error
	return categories, err
}

func (s *GormStore) CreateCategory(ctx context.Context, category *models.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *GormStore) DeleteCategory(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&models.Category{}, id).Error
}

func (s *GormStore) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []models.Product
	err := query.Order("id asc").Find(&products).Error
	return products, total, err
}

func (s *GormStore) GetProduct(ctx context.Context, id int) (models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	return product, err
}

func (s *GormStore) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *GormStore) UpdateProduct(ctx context.Context, id int, patch models.ProductPatch) (models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}

	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Stock != nil {
		updates["stock"] = *patch.Stock
	}
	if len(updates) == 0 {
		return product, nil
	}

	if err := s.db.WithContext(ctx).Model(&product).Updates(updates).Error; err != nil {
		return models.Product{}, err
	}

	var updated models.Product
	if err := s.db.WithContext(ctx).First(&updated, id).Error; err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

func (s *GormStore) DeleteProduct(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}

func (s *GormStore) GetCart(ctx context.Context, userID int) (models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Cart{}, ErrCartNotFound
	}
	return cart, err
}

func (s *GormStore) ReplaceCart(ctx context.Context, userID int, items []models.OrderItem, total float64) (models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		cart = models.Cart{
			UserID: userID,
			Items:  datatypes.NewJSONSlice(items),
			Total:  total,
		}
		if err := s.db.WithContext(ctx).Create(&cart).Error; err != nil {
			return models.Cart{}, err
		}
		return cart, nil
	case err != nil:
		return models.Cart{}, err
	}

	cart.Items = datatypes.NewJSONSlice(items)
	cart.Total = total
	if err := s.db.WithContext(ctx).Save(&cart).Error; err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// PlaceOrder claims a delivery partner and inserts the order in a single
// transaction. All partner rows are locked FOR UPDATE first, which
// serializes concurrent claims; the active-order counts run after the
// lock is held, so each claimant sees the orders committed by the
// transaction it waited on.
func (s *GormStore) PlaceOrder(ctx context.Context, order *models.Order, maxActivePerPartner int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if maxActivePerPartner > 0 {
			var partnerIDs []int
			err := tx.Raw(
				`SELECT id FROM users WHERE role = ? ORDER BY id FOR UPDATE`,
				models.RoleDelivery,
			).Scan(&partnerIDs).Error
			if err != nil {
				return fmt.Errorf("lock delivery partners: %w", err)
			}

			for _, partnerID := range partnerIDs {
				var active int64
				err := tx.Model(&models.Order{}).
					Where("delivery_partner_id = ? AND status IN ?",
						partnerID,
						[]string{models.OrderStatusAssigned, models.OrderStatusDelivering},
					).
					Count(&active).Error
				if err != nil {
					return fmt.Errorf("count active orders: %w", err)
				}
				if active < int64(maxActivePerPartner) {
					id := partnerID
					order.DeliveryPartnerID = &id
					order.Status = models.OrderStatusAssigned
					break
				}
			}
		}
		return tx.Create(order).Error
	})
}

func (s *GormStore) GetOrder(ctx context.Context, id int) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	return order, err
}

func (s *GormStore) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := s.db.WithContext(ctx)
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.DeliveryPartnerID != 0 {
		query = query.Where("delivery_partner_id = ?", filter.DeliveryPartnerID)
	}

	var orders []models.Order
	err := query.Order("created_at desc").Find(&orders).Error
	return orders, err
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, id int, status string, partnerID *int) (models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}

	updates := map[string]any{"status": status}
	if partnerID != nil {
		updates["delivery_partner_id"] = *partnerID
	}
	if err := s.db.WithContext(ctx).Model(&order).Updates(updates).Error; err != nil {
		return models.Order{}, err
	}

	order.Status = status
	if partnerID != nil {
		order.DeliveryPartnerID = partnerID
	}
	return order, nil
}

func (s *GormStore) OrderStats(ctx context.Context) (models.OrderStats, error) {
	type statusRow struct {
		Status string
		Count  int64
		Sum    float64
	}

	var rows []statusRow
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, count(*) as count, coalesce(sum(total), 0) as sum").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return models.OrderStats{}, err
	}

	stats := models.OrderStats{ByStatus: make(map[string]int64)}
	for _, row := range rows {
		stats.TotalOrders += row.Count
		stats.ByStatus[row.Status] = row.Count
		if row.Status != models.OrderStatusDelivered && row.Status != models.OrderStatusCancelled {
			stats.Undelivered += row.Count
		}
		if row.Status == models.OrderStatusDelivered {
			stats.Revenue = row.Sum
		}
	}
	return stats, nil
}
