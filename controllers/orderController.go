package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sudhamrit/grocery-api/models"
	"github.com/sudhamrit/grocery-api/services"
	"github.com/sudhamrit/grocery-api/storage"
)

type OrderController struct {
	store  storage.Store
	orders *services.OrderService
}

func NewOrderController(store storage.Store, orders *services.OrderService) *OrderController {
	return &OrderController{store: store, orders: orders}
}

func (c *OrderController) CreateOrder(ctx *gin.Context) {
	var orderData struct {
		Items   []models.OrderItem `json:"items" binding:"required"`
		Address string             `json:"address" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	userID := ctx.GetInt("userID")
	order, err := c.orders.CreateOrder(ctx.Request.Context(), userID, orderData.Items, orderData.Address)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, order)
}

// GetOrders lists orders scoped by role: admins see everything, delivery
// partners see orders assigned to them, customers see their own.
func (c *OrderController) GetOrders(ctx *gin.Context) {
	userID := ctx.GetInt("userID")
	role := ctx.GetString("userRole")

	var filter storage.OrderFilter
	switch role {
	case models.RoleAdmin:
		// no filter
	case models.RoleDelivery:
		filter.DeliveryPartnerID = userID
	default:
		filter.UserID = userID
	}

	orders, err := c.store.ListOrders(ctx.Request.Context(), filter)
	if err != nil {
		log.Println("Order listing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatus transitions an order. A delivery actor is recorded as
// the order's partner as part of the update.
func (c *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var statusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&statusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Status is required")
		return
	}

	var actingPartnerID *int
	if ctx.GetString("userRole") == models.RoleDelivery {
		userID := ctx.GetInt("userID")
		actingPartnerID = &userID
	}

	order, err := c.orders.UpdateOrderStatus(ctx.Request.Context(), orderID, statusData.Status, actingPartnerID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}
