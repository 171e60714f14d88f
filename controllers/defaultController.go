package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Sudhamrit Grocery API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/api/register" - Create customer account
- POST "/api/login" - Establish a session
- POST "/api/logout" - Clear the session
- GET "/api/user" - Get the authenticated user

PRODUCT
- GET "/api/products" - List products (optional category/search filter)
- GET "/api/products/{id}" - Get product by ID
- POST "/api/products" - Create new product (admin)
- PATCH "/api/products/{id}" - Update product (admin)
- DELETE "/api/products/{id}" - Delete product (admin)
- POST "/api/products/{id}/images" - Upload product images (admin)

CATEGORY
- GET "/api/categories" - List categories
- POST "/api/categories" - Create category (admin)
- DELETE "/api/categories/{id}" - Delete category (admin)

CART
- GET "/api/cart" - Fetch mirrored cart
- POST "/api/cart" - Replace cart

ORDER
- POST "/api/orders" - Create order from items and address
- GET "/api/orders" - Role-scoped order list
- PATCH "/api/orders/{id}/status" - Transition order status

ADMIN
- POST "/api/users" - Create account with a role (admin)
- GET "/api/users" - List all users (admin)
- GET "/api/admin/stats" - Order statistics (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
