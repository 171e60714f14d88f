package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/sudhamrit/grocery-api/models"
	"github.com/sudhamrit/grocery-api/storage"
)

// A delivery partner carries at most this many active orders at once.
const maxActiveOrdersPerPartner = 3

var (
	ErrNoItems           = errors.New("order must contain at least one item")
	ErrMissingAddress    = errors.New("delivery address is required")
	ErrInvalidItem       = errors.New("invalid order item")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// statusTransitions is the enforced order lifecycle. Terminal states map
// to an empty set.
var statusTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusPreparing, models.OrderStatusAssigned, models.OrderStatusCancelled},
	models.OrderStatusPreparing:  {models.OrderStatusAssigned, models.OrderStatusCancelled},
	models.OrderStatusAssigned:   {models.OrderStatusDelivering, models.OrderStatusCancelled},
	models.OrderStatusDelivering: {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered:  {},
	models.OrderStatusCancelled:  {},
}

func canTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Notifier receives best-effort order event callbacks. Failures are the
// notifier's problem; the order flow never depends on them.
type Notifier interface {
	OrderCreated(order models.Order)
	OrderStatusChanged(order models.Order)
}

type OrderService struct {
	store    storage.Store
	notifier Notifier
}

func NewOrderService(store storage.Store, notifier Notifier) *OrderService {
	return &OrderService{store: store, notifier: notifier}
}

// CreateOrder validates the submitted items, totals them, claims a
// delivery partner with spare capacity if one exists, and persists the
// order. The total is trusted from the submitted snapshot and is not
// re-priced against live product records.
func (s *OrderService) CreateOrder(ctx context.Context, userID int, items []models.OrderItem, address string) (models.Order, error) {
	if len(items) == 0 {
		return models.Order{}, ErrNoItems
	}
	if address == "" {
		return models.Order{}, ErrMissingAddress
	}

	total := decimal.Zero
	for i, item := range items {
		if item.ProductID <= 0 {
			return models.Order{}, fmt.Errorf("%w: item %d has no product id", ErrInvalidItem, i)
		}
		if item.Quantity < 1 {
			return models.Order{}, fmt.Errorf("%w: item %d quantity must be at least 1", ErrInvalidItem, i)
		}
		if item.Price < 0 {
			return models.Order{}, fmt.Errorf("%w: item %d has a negative price", ErrInvalidItem, i)
		}
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := models.Order{
		UserID:  userID,
		Status:  models.OrderStatusPending,
		Items:   datatypes.NewJSONSlice(items),
		Address: address,
	}
	order.Total, _ = total.Float64()

	if err := s.store.PlaceOrder(ctx, &order, maxActiveOrdersPerPartner); err != nil {
		return models.Order{}, fmt.Errorf("place order: %w", err)
	}

	if s.notifier != nil {
		s.notifier.OrderCreated(order)
	}
	return order, nil
}

// UpdateOrderStatus moves an order through its lifecycle. When the acting
// caller is a delivery partner their id is written onto the order, which
// also covers re-assignment during an update.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID int, status string, actingPartnerID *int) (models.Order, error) {
	if _, known := statusTransitions[status]; !known {
		return models.Order{}, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}

	if !canTransition(order.Status, status) {
		return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	updated, err := s.store.UpdateOrderStatus(ctx, orderID, status, actingPartnerID)
	if err != nil {
		return models.Order{}, err
	}

	if s.notifier != nil {
		s.notifier.OrderStatusChanged(updated)
	}
	return updated, nil
}
