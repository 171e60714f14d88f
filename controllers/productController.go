package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sudhamrit/grocery-api/models"
	"github.com/sudhamrit/grocery-api/storage"
)

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

type ProductController struct {
	store storage.Store
}

func NewProductController(store storage.Store) *ProductController {
	return &ProductController{store: store}
}

func (c *ProductController) GetProducts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter := storage.ProductFilter{
		Category: ctx.Query("category"),
		Search:   ctx.Query("search"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
	if filter.Category == "All" {
		filter.Category = ""
	}

	products, total, err := c.store.ListProducts(ctx.Request.Context(), filter)
	if err != nil {
		log.Println("Product listing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch products")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"products": products,
		"metadata": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func (c *ProductController) GetProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := c.store.GetProduct(ctx.Request.Context(), productID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.store.CreateProduct(ctx.Request.Context(), &product); err != nil {
		log.Println("Product creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create product")
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var patch models.ProductPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := c.store.UpdateProduct(ctx.Request.Context(), productID, patch)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// DeleteProduct is idempotent; deleting an absent product still succeeds.
func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := c.store.DeleteProduct(ctx.Request.Context(), productID); err != nil {
		log.Println("Product deletion error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted successfully."})
}

// getAWSUploader returns a configured S3 uploader
func getAWSUploader(ctx context.Context) (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadProductImage uploads product photos to S3 and stores the first
// public URL on the product record.
func (c *ProductController) UploadProductImage(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if _, err := c.store.GetProduct(ctx.Request.Context(), productID); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid form data")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "No files uploaded")
		return
	}

	uploader, err := getAWSUploader(ctx.Request.Context())
	if err != nil {
		log.Println("AWS configuration error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to configure AWS")
		return
	}

	bucket := envOr("S3_BUCKET", "sudhamrit-products")

	var uploadedUrls []string
	var failedUploads []string

	for _, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			log.Printf("Error opening file %s: %v", file.Filename, openErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		key := fmt.Sprintf("products/%d/%s%s", productID, uuid.NewString(), filepath.Ext(file.Filename))
		result, uploadErr := uploader.Upload(ctx.Request.Context(), &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        f,
			ACL:         "public-read",
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		f.Close()

		if uploadErr != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}
		uploadedUrls = append(uploadedUrls, result.Location)
	}

	if len(uploadedUrls) > 0 {
		patch := models.ProductPatch{Image: &uploadedUrls[0]}
		if _, err := c.store.UpdateProduct(ctx.Request.Context(), productID, patch); err != nil {
			log.Printf("Error saving image URL for product %d: %v", productID, err)
		}
	}

	response := gin.H{
		"message": "Files processed",
		"urls":    uploadedUrls,
	}
	if len(failedUploads) > 0 {
		response["failed"] = failedUploads
	}
	ctx.JSON(http.StatusOK, response)
}
