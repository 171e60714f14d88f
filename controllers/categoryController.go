package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sudhamrit/grocery-api/models"
	"github.com/sudhamrit/grocery-api/storage"
)

type CategoryController struct {
	store storage.Store
}

func NewCategoryController(store storage.Store) *CategoryController {
	return &CategoryController{store: store}
}

func (c *CategoryController) GetCategories(ctx *gin.Context) {
	categories, err := c.store.ListCategories(ctx.Request.Context())
	if err != nil {
		log.Println("Category listing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch categories")
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.store.CreateCategory(ctx.Request.Context(), &category); err != nil {
		log.Println("Category creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create category")
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

// DeleteCategory is idempotent and does not cascade; products referencing
// the category keep their category string.
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	categoryID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := c.store.DeleteCategory(ctx.Request.Context(), categoryID); err != nil {
		log.Println("Category deletion error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted successfully."})
}
