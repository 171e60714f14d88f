package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/sudhamrit/grocery-api/models"
)

// MemoryStore keeps every record in maps guarded by a single RWMutex.
type MemoryStore struct {
	mu sync.RWMutex

	users      map[int]models.User
	categories map[int]models.Category
	products   map[int]models.Product
	orders     map[int]models.Order
	carts      map[int]models.Cart // keyed by user id

	nextUserID     int
	nextCategoryID int
	nextProductID  int
	nextOrderID    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:          make(map[int]models.User),
		categories:     make(map[int]models.Category),
		products:       make(map[int]models.Product),
		orders:         make(map[int]models.Order),
		carts:          make(map[int]models.Cart),
		nextUserID:     1,
		nextCategoryID: 1,
		nextProductID:  1,
		nextOrderID:    1,
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return ErrUsernameTaken
		}
	}

	user.ID = s.nextUserID
	s.nextUserID++
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) GetUser(_ context.Context, id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, id := range sortedKeys(s.users) {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *MemoryStore) ListCategories(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]models.Category, 0, len(s.categories))
	for _, id := range sortedKeys(s.categories) {
		categories = append(categories, s.categories[id])
	}
	return categories, nil
}

func (s *MemoryStore) CreateCategory(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	category.ID = s.nextCategoryID
	s.nextCategoryID++
	s.categories[category.ID] = *category
	return nil
}

// DeleteCategory is idempotent. Products referencing the category are
// left untouched.
func (s *MemoryStore) DeleteCategory(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.categories, id)
	return nil
}

func (s *MemoryStore) ListProducts(_ context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Product, 0, len(s.products))
	for _, id := range sortedKeys(s.products) {
		p := s.products[id]
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, p)
	}

	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filter.Offset:]
		}
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (s *MemoryStore) GetProduct(_ context.Context, id int) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return product, nil
}

func (s *MemoryStore) CreateProduct(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.nextProductID
	s.nextProductID++
	s.products[product.ID] = *product
	return nil
}

func (s *MemoryStore) UpdateProduct(_ context.Context, id int, patch models.ProductPatch) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Image != nil {
		product.Image = *patch.Image
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}

	s.products[id] = product
	return product, nil
}

func (s *MemoryStore) DeleteProduct(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, id)
	return nil
}

func (s *MemoryStore) GetCart(_ context.Context, userID int) (models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[userID]
	if !ok {
		return models.Cart{}, ErrCartNotFound
	}
	return cart, nil
}

func (s *MemoryStore) ReplaceCart(_ context.Context, userID int, items []models.OrderItem, total float64) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := models.Cart{
		ID:     userID,
		UserID: userID,
		Items:  datatypes.NewJSONSlice(items),
		Total:  total,
	}
	s.carts[userID] = cart
	return cart, nil
}

func (s *MemoryStore) PlaceOrder(_ context.Context, order *models.Order, maxActivePerPartner int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if maxActivePerPartner > 0 {
		if partnerID, ok := s.claimPartnerLocked(maxActivePerPartner); ok {
			order.DeliveryPartnerID = &partnerID
			order.Status = models.OrderStatusAssigned
		}
	}

	order.ID = s.nextOrderID
	s.nextOrderID++
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	s.orders[order.ID] = *order
	return nil
}

// claimPartnerLocked scans delivery partners in ascending id order and
// returns the first one below the active-order cap. Callers must hold
// the write lock so the scan and the subsequent insert are one step.
func (s *MemoryStore) claimPartnerLocked(maxActive int) (int, bool) {
	for _, id := range sortedKeys(s.users) {
		if s.users[id].Role != models.RoleDelivery {
			continue
		}
		active := 0
		for _, o := range s.orders {
			if o.DeliveryPartnerID != nil && *o.DeliveryPartnerID == id && orderActive(o.Status) {
				active++
			}
		}
		if active < maxActive {
			return id, true
		}
	}
	return 0, false
}

func orderActive(status string) bool {
	return status == models.OrderStatusAssigned || status == models.OrderStatusDelivering
}

func (s *MemoryStore) GetOrder(_ context.Context, id int) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	return order, nil
}

func (s *MemoryStore) ListOrders(_ context.Context, filter OrderFilter) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]models.Order, 0, len(s.orders))
	for _, id := range sortedKeys(s.orders) {
		o := s.orders[id]
		if filter.UserID != 0 && o.UserID != filter.UserID {
			continue
		}
		if filter.DeliveryPartnerID != 0 && (o.DeliveryPartnerID == nil || *o.DeliveryPartnerID != filter.DeliveryPartnerID) {
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (s *MemoryStore) UpdateOrderStatus(_ context.Context, id int, status string, partnerID *int) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}

	order.Status = status
	if partnerID != nil {
		order.DeliveryPartnerID = partnerID
	}
	s.orders[id] = order
	return order, nil
}

func (s *MemoryStore) OrderStats(_ context.Context) (models.OrderStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.OrderStats{ByStatus: make(map[string]int64)}
	for _, o := range s.orders {
		stats.TotalOrders++
		stats.ByStatus[o.Status]++
		if o.Status != models.OrderStatusDelivered && o.Status != models.OrderStatusCancelled {
			stats.Undelivered++
		}
		if o.Status == models.OrderStatusDelivered {
			stats.Revenue += o.Total
		}
	}
	return stats, nil
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
