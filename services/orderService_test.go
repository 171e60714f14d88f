package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudhamrit/grocery-api/models"
	"github.com/sudhamrit/grocery-api/storage"
)

func newService(t *testing.T) (*OrderService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewOrderService(store, nil), store
}

func addDeliveryPartner(t *testing.T, store *storage.MemoryStore, username string) models.User {
	t.Helper()
	partner := models.User{Username: username, Password: "x", Role: models.RoleDelivery, FullName: username}
	require.NoError(t, store.CreateUser(context.Background(), &partner))
	return partner
}

func TestCreateOrderTotal(t *testing.T) {
	svc, _ := newService(t)

	order, err := svc.CreateOrder(context.Background(), 1,
		[]models.OrderItem{{ProductID: 1, Quantity: 2, Price: 60, Name: "Milk"}}, "X")
	require.NoError(t, err)

	assert.Equal(t, 120.0, order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotZero(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestCreateOrderTotalPrecision(t *testing.T) {
	svc, _ := newService(t)

	// 0.1 * 3 must come out as 0.3, not a float artifact
	order, err := svc.CreateOrder(context.Background(), 1, []models.OrderItem{
		{ProductID: 1, Quantity: 3, Price: 0.1, Name: "Candy"},
		{ProductID: 2, Quantity: 1, Price: 19.99, Name: "Coffee"},
	}, "X")
	require.NoError(t, err)
	assert.Equal(t, 20.29, order.Total)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, 1, nil, "X")
	assert.ErrorIs(t, err, ErrNoItems)

	items := []models.OrderItem{{ProductID: 1, Quantity: 1, Price: 10, Name: "Milk"}}
	_, err = svc.CreateOrder(ctx, 1, items, "")
	assert.ErrorIs(t, err, ErrMissingAddress)

	_, err = svc.CreateOrder(ctx, 1, []models.OrderItem{{ProductID: 0, Quantity: 1, Price: 10}}, "X")
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = svc.CreateOrder(ctx, 1, []models.OrderItem{{ProductID: 1, Quantity: 0, Price: 10}}, "X")
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = svc.CreateOrder(ctx, 1, []models.OrderItem{{ProductID: 1, Quantity: 1, Price: -1}}, "X")
	assert.ErrorIs(t, err, ErrInvalidItem)

	// nothing was persisted along the way
	orders, listErr := store.ListOrders(ctx, storage.OrderFilter{})
	require.NoError(t, listErr)
	assert.Empty(t, orders)
}

func TestCreateOrderAssignsPartnerWithCapacity(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	partnerA := addDeliveryPartner(t, store, "driver-a")
	partnerB := addDeliveryPartner(t, store, "driver-b")

	items := []models.OrderItem{{ProductID: 1, Quantity: 1, Price: 10, Name: "Milk"}}

	// fill partner A to its three active orders
	for i := 0; i < 3; i++ {
		order, err := svc.CreateOrder(ctx, 1, items, "X")
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusAssigned, order.Status)
		require.NotNil(t, order.DeliveryPartnerID)
		assert.Equal(t, partnerA.ID, *order.DeliveryPartnerID)
	}

	// A full, B empty: the next order must land on B
	order, err := svc.CreateOrder(ctx, 1, items, "X")
	require.NoError(t, err)
	require.NotNil(t, order.DeliveryPartnerID)
	assert.Equal(t, partnerB.ID, *order.DeliveryPartnerID)
}

func TestCreateOrderPendingWhenAllPartnersFull(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	addDeliveryPartner(t, store, "driver-a")
	items := []models.OrderItem{{ProductID: 1, Quantity: 1, Price: 10, Name: "Milk"}}

	for i := 0; i < 3; i++ {
		_, err := svc.CreateOrder(ctx, 1, items, "X")
		require.NoError(t, err)
	}

	order, err := svc.CreateOrder(ctx, 1, items, "X")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Nil(t, order.DeliveryPartnerID)
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	_, err := svc.UpdateOrderStatus(ctx, 99, models.OrderStatusDelivered, nil)
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)

	orders, listErr := store.ListOrders(ctx, storage.OrderFilter{})
	require.NoError(t, listErr)
	assert.Empty(t, orders)
}

func TestUpdateOrderStatusLifecycle(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	items := []models.OrderItem{{ProductID: 1, Quantity: 1, Price: 10, Name: "Milk"}}
	order, err := svc.CreateOrder(ctx, 1, items, "X")
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusPending, order.Status)

	// skipping ahead is rejected
	_, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusDelivered, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	for _, status := range []string{
		models.OrderStatusPreparing,
		models.OrderStatusAssigned,
		models.OrderStatusDelivering,
		models.OrderStatusDelivered,
	} {
		order, err = svc.UpdateOrderStatus(ctx, order.ID, status, nil)
		require.NoError(t, err)
		assert.Equal(t, status, order.Status)
	}

	// delivered is terminal
	_, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusPending, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCancelled, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateOrderStatusCancellation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	items := []models.OrderItem{{ProductID: 1, Quantity: 1, Price: 10, Name: "Milk"}}
	order, err := svc.CreateOrder(ctx, 1, items, "X")
	require.NoError(t, err)

	order, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusPreparing, nil)
	require.NoError(t, err)

	order, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCancelled, nil)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)

	// cancelled is terminal too
	_, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusPreparing, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateOrderStatusUnknownStatus(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	items := []models.OrderItem{{ProductID: 1, Quantity: 1, Price: 10, Name: "Milk"}}
	order, err := svc.CreateOrder(ctx, 1, items, "X")
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(ctx, order.ID, "shipped", nil)
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestUpdateOrderStatusDeliveryActorSetsPartner(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	partner := addDeliveryPartner(t, store, "driver-a")
	items := []models.OrderItem{{ProductID: 1, Quantity: 1, Price: 10, Name: "Milk"}}

	order, err := svc.CreateOrder(ctx, 1, items, "X")
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusAssigned, order.Status)

	other := addDeliveryPartner(t, store, "driver-b")
	order, err = svc.UpdateOrderStatus(ctx, order.ID, models.OrderStatusDelivering, &other.ID)
	require.NoError(t, err)
	require.NotNil(t, order.DeliveryPartnerID)
	assert.Equal(t, other.ID, *order.DeliveryPartnerID)
	assert.NotEqual(t, partner.ID, *order.DeliveryPartnerID)
}
