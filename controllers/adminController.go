package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sudhamrit/grocery-api/models"
	"github.com/sudhamrit/grocery-api/storage"
)

type AdminController struct {
	store storage.Store
}

func NewAdminController(store storage.Store) *AdminController {
	return &AdminController{store: store}
}

// CreateUser provisions an account with an explicit role. This is the
// only way to create delivery and further admin accounts over HTTP;
// public registration always yields customers.
func (c *AdminController) CreateUser(ctx *gin.Context) {
	var userData struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
		FullName string `json:"fullName" binding:"required"`
		Role     string `json:"role" binding:"required"`
		Address  string `json:"address"`
		Phone    string `json:"phone"`
	}
	if err := ctx.ShouldBindJSON(&userData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if !models.ValidRole(userData.Role) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidRole)
		return
	}

	hashedPassword, err := hashPassword(userData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Username: userData.Username,
		Password: hashedPassword,
		Role:     userData.Role,
		FullName: userData.FullName,
		Address:  userData.Address,
		Phone:    userData.Phone,
	}
	if err := c.store.CreateUser(ctx.Request.Context(), &user); err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
			return
		}
		log.Println("User creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"user": user})
}

func (c *AdminController) GetUsers(ctx *gin.Context) {
	users, err := c.store.ListUsers(ctx.Request.Context())
	if err != nil {
		log.Println("User listing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch users")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"users": users})
}

// GetOrderStats backs the admin dashboard: order counts by status, the
// undelivered backlog and delivered revenue.
func (c *AdminController) GetOrderStats(ctx *gin.Context) {
	stats, err := c.store.OrderStats(ctx.Request.Context())
	if err != nil {
		log.Println("Order stats error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to compute order stats")
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
