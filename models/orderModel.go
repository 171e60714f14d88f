package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusPreparing  = "preparing"
	OrderStatusAssigned   = "assigned"
	OrderStatusDelivering = "delivering"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem is the denormalized line-item snapshot stored on both carts
// and orders. Name and price are copied from the product at add-time and
// never re-resolved.
type OrderItem struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
}

type Order struct {
	ID                int                            `gorm:"primaryKey" json:"id"`
	UserID            int                            `gorm:"not null;index" json:"userId"`
	Status            string                         `gorm:"not null" json:"status"`
	DeliveryPartnerID *int                           `gorm:"index" json:"deliveryPartnerId,omitempty"`
	Items             datatypes.JSONSlice[OrderItem] `json:"items"`
	Total             float64                        `gorm:"not null" json:"total"`
	Address           string                         `gorm:"not null" json:"address"`
	CreatedAt         time.Time                      `json:"createdAt"`
}

// OrderStats backs the admin dashboard.
type OrderStats struct {
	TotalOrders int64            `json:"totalOrders"`
	ByStatus    map[string]int64 `json:"byStatus"`
	Undelivered int64            `json:"undelivered"`
	Revenue     float64          `json:"revenue"`
}
