package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/sudhamrit/grocery-api/models"
	"github.com/sudhamrit/grocery-api/storage"
)

type CartController struct {
	store storage.Store
}

func NewCartController(store storage.Store) *CartController {
	return &CartController{store: store}
}

// GetCart returns the caller's mirrored cart, or an empty cart when none
// has been stored yet.
func (c *CartController) GetCart(ctx *gin.Context) {
	userID := ctx.GetInt("userID")

	cart, err := c.store.GetCart(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrCartNotFound) {
			sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": models.Cart{
				ID:     userID,
				UserID: userID,
				Items:  []models.OrderItem{},
			}})
			return
		}
		log.Println("Cart fetch error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cart})
}

// UpdateCart replaces the mirrored cart wholesale; there is no merging
// and no validation against live stock.
func (c *CartController) UpdateCart(ctx *gin.Context) {
	var cartData struct {
		Items []models.OrderItem `json:"items"`
		Total float64            `json:"total"`
	}
	if err := ctx.ShouldBindJSON(&cartData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if cartData.Items == nil {
		cartData.Items = []models.OrderItem{}
	}
	if cartData.Total == 0 {
		total := decimal.Zero
		for _, item := range cartData.Items {
			total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		cartData.Total, _ = total.Float64()
	}

	userID := ctx.GetInt("userID")
	cart, err := c.store.ReplaceCart(ctx.Request.Context(), userID, cartData.Items, cartData.Total)
	if err != nil {
		log.Println("Cart update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cart})
}
