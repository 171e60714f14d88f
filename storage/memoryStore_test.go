package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudhamrit/grocery-api/models"
)

func TestMemoryStoreProductCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	product := models.Product{Name: "Milk", Description: "Whole milk", Price: 60, Image: "milk.jpg", Category: "Dairy & Eggs", Stock: 10}
	require.NoError(t, store.CreateProduct(ctx, &product))
	assert.Equal(t, 1, product.ID)

	got, err := store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", got.Name)

	newPrice := 65.0
	newStock := 5
	updated, err := store.UpdateProduct(ctx, product.ID, models.ProductPatch{Price: &newPrice, Stock: &newStock})
	require.NoError(t, err)
	assert.Equal(t, 65.0, updated.Price)
	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, "Milk", updated.Name)

	_, err = store.UpdateProduct(ctx, 999, models.ProductPatch{Price: &newPrice})
	assert.ErrorIs(t, err, ErrProductNotFound)

	require.NoError(t, store.DeleteProduct(ctx, product.ID))
	_, err = store.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// deleting again must still succeed
	require.NoError(t, store.DeleteProduct(ctx, product.ID))
}

func TestMemoryStoreProductFilter(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, p := range []models.Product{
		{Name: "Fresh Apples", Category: "Fruits & Vegetables"},
		{Name: "Whole Milk", Category: "Dairy & Eggs"},
		{Name: "Cheddar Cheese", Category: "Dairy & Eggs"},
	} {
		product := p
		require.NoError(t, store.CreateProduct(ctx, &product))
	}

	dairy, total, err := store.ListProducts(ctx, ProductFilter{Category: "Dairy & Eggs"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, dairy, 2)

	milk, total, err := store.ListProducts(ctx, ProductFilter{Search: "milk"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, milk, 1)
	assert.Equal(t, "Whole Milk", milk[0].Name)

	page, total, err := store.ListProducts(ctx, ProductFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 1)
}

func TestMemoryStoreUserUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	alice := models.User{Username: "alice", Password: "x", Role: models.RoleCustomer, FullName: "Alice"}
	require.NoError(t, store.CreateUser(ctx, &alice))

	dup := models.User{Username: "alice", Password: "y", Role: models.RoleCustomer, FullName: "Other Alice"}
	assert.ErrorIs(t, store.CreateUser(ctx, &dup), ErrUsernameTaken)

	_, err := store.GetUser(ctx, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryStoreCartReplace(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.GetCart(ctx, 1)
	assert.ErrorIs(t, err, ErrCartNotFound)

	first := []models.OrderItem{{ProductID: 1, Quantity: 2, Price: 60, Name: "Milk"}}
	cart, err := store.ReplaceCart(ctx, 1, first, 120)
	require.NoError(t, err)
	assert.Equal(t, 120.0, cart.Total)
	assert.Len(t, cart.Items, 1)

	// replacement is wholesale, never a merge
	second := []models.OrderItem{{ProductID: 2, Quantity: 1, Price: 40, Name: "Bread"}}
	cart, err = store.ReplaceCart(ctx, 1, second, 40)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Bread", cart.Items[0].Name)
	assert.Equal(t, 40.0, cart.Total)
}

func TestMemoryStorePlaceOrderAssignment(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	partnerA := models.User{Username: "driver-a", Password: "x", Role: models.RoleDelivery, FullName: "Driver A"}
	partnerB := models.User{Username: "driver-b", Password: "x", Role: models.RoleDelivery, FullName: "Driver B"}
	require.NoError(t, store.CreateUser(ctx, &partnerA))
	require.NoError(t, store.CreateUser(ctx, &partnerB))

	place := func() models.Order {
		order := models.Order{UserID: 10, Status: models.OrderStatusPending, Address: "X"}
		require.NoError(t, store.PlaceOrder(ctx, &order, 3))
		return order
	}

	// the first three orders fill partner A, the lowest id
	for i := 0; i < 3; i++ {
		order := place()
		assert.Equal(t, models.OrderStatusAssigned, order.Status)
		require.NotNil(t, order.DeliveryPartnerID)
		assert.Equal(t, partnerA.ID, *order.DeliveryPartnerID)
	}

	// A is at capacity, so B takes the next three
	for i := 0; i < 3; i++ {
		order := place()
		require.NotNil(t, order.DeliveryPartnerID)
		assert.Equal(t, partnerB.ID, *order.DeliveryPartnerID)
	}

	// both full: the order stays pending and unassigned
	order := place()
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Nil(t, order.DeliveryPartnerID)

	// delivered orders no longer count against capacity
	_, err := store.UpdateOrderStatus(ctx, 1, models.OrderStatusDelivering, nil)
	require.NoError(t, err)
	_, err = store.UpdateOrderStatus(ctx, 1, models.OrderStatusDelivered, nil)
	require.NoError(t, err)

	order = place()
	require.NotNil(t, order.DeliveryPartnerID)
	assert.Equal(t, partnerA.ID, *order.DeliveryPartnerID)
}

func TestMemoryStorePlaceOrderConcurrentCapacity(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	partner := models.User{Username: "driver", Password: "x", Role: models.RoleDelivery, FullName: "Driver"}
	require.NoError(t, store.CreateUser(ctx, &partner))

	const concurrent = 10
	var wg sync.WaitGroup
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order := models.Order{UserID: 10, Status: models.OrderStatusPending, Address: "X"}
			assert.NoError(t, store.PlaceOrder(ctx, &order, 3))
		}()
	}
	wg.Wait()

	// the claim and the insert are one step, so the partner never ends
	// up above capacity no matter how the placements interleave
	orders, err := store.ListOrders(ctx, OrderFilter{DeliveryPartnerID: partner.ID})
	require.NoError(t, err)
	assert.Len(t, orders, 3)

	all, err := store.ListOrders(ctx, OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, concurrent)
}

func TestMemoryStoreOrderListingAndStatus(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	partner := models.User{Username: "driver", Password: "x", Role: models.RoleDelivery, FullName: "Driver"}
	require.NoError(t, store.CreateUser(ctx, &partner))

	for _, userID := range []int{7, 7, 8} {
		order := models.Order{UserID: userID, Status: models.OrderStatusPending, Address: "X"}
		require.NoError(t, store.PlaceOrder(ctx, &order, 3))
	}

	mine, err := store.ListOrders(ctx, OrderFilter{UserID: 7})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	assigned, err := store.ListOrders(ctx, OrderFilter{DeliveryPartnerID: partner.ID})
	require.NoError(t, err)
	assert.Len(t, assigned, 3)

	_, err = store.UpdateOrderStatus(ctx, 99, models.OrderStatusDelivered, nil)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	reassigned := 55
	updated, err := store.UpdateOrderStatus(ctx, 1, models.OrderStatusDelivering, &reassigned)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivering, updated.Status)
	require.NotNil(t, updated.DeliveryPartnerID)
	assert.Equal(t, 55, *updated.DeliveryPartnerID)
}

func TestMemoryStoreOrderStats(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, st := range []struct {
		status string
		total  float64
	}{
		{models.OrderStatusPending, 100},
		{models.OrderStatusDelivering, 50},
		{models.OrderStatusDelivered, 200},
		{models.OrderStatusDelivered, 300},
		{models.OrderStatusCancelled, 75},
	} {
		order := models.Order{UserID: 1, Status: st.status, Total: st.total, Address: "X"}
		require.NoError(t, store.PlaceOrder(ctx, &order, 0))
	}

	stats, err := store.OrderStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, stats.TotalOrders)
	assert.EqualValues(t, 2, stats.ByStatus[models.OrderStatusDelivered])
	assert.EqualValues(t, 2, stats.Undelivered)
	assert.Equal(t, 500.0, stats.Revenue)
}
