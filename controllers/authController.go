package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sudhamrit/grocery-api/models"
	"github.com/sudhamrit/grocery-api/services"
	"github.com/sudhamrit/grocery-api/storage"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Session cookie carrying the JWT
	tokenCookieName   = "token"
	tokenCookieMaxAge = 24 * 60 * 60

	// Standard response messages
	msgInvalidInput         = "invalid input"
	msgUserAlreadyExists    = "user already exists"
	msgFailedToHashPassword = "failed to hash password"
	msgInvalidCredentials   = "invalid username or password"
	msgInvalidRole          = "invalid role"
	msgInternalServerError  = "Internal server error"
	msgLoggedOut            = "Logged out successfully."
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// statusForError maps service and storage errors onto the API's error
// taxonomy: 400 for malformed input, 404 for unknown ids, 500 otherwise.
func statusForError(err error) int {
	switch {
	case errors.Is(err, storage.ErrUserNotFound),
		errors.Is(err, storage.ErrProductNotFound),
		errors.Is(err, storage.ErrOrderNotFound),
		errors.Is(err, storage.ErrCartNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrUsernameTaken),
		errors.Is(err, services.ErrNoItems),
		errors.Is(err, services.ErrMissingAddress),
		errors.Is(err, services.ErrInvalidItem),
		errors.Is(err, services.ErrUnknownStatus),
		errors.Is(err, services.ErrInvalidTransition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondWithServiceError(ctx *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Println("Internal error:", err)
		sendErrorResponse(ctx, status, msgInternalServerError)
		return
	}
	sendErrorResponse(ctx, status, err.Error())
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(tokenCookieMaxAge * time.Second).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

type AuthController struct {
	store storage.Store
}

func NewAuthController(store storage.Store) *AuthController {
	return &AuthController{store: store}
}

// Register handles account creation
// Register creates a customer account. The role is never taken from the
// request: admin and delivery accounts exist only through seeding or the
// admin user-creation endpoint.
func (c *AuthController) Register(ctx *gin.Context) {
	var registerData struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
		FullName string `json:"fullName" binding:"required"`
		Address  string `json:"address"`
		Phone    string `json:"phone"`
	}
	if err := ctx.ShouldBindJSON(&registerData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	hashedPassword, err := hashPassword(registerData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Username: registerData.Username,
		Password: hashedPassword,
		Role:     models.RoleCustomer,
		FullName: registerData.FullName,
		Address:  registerData.Address,
		Phone:    registerData.Phone,
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

// Login checks credentials and establishes the session cookie
func (c *AuthController) Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := c.store.GetUserByUsername(ctx.Request.Context(), loginData.Username)
	if err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	ctx.SetCookie(tokenCookieName, tokenString, tokenCookieMaxAge, "/", "", false, true)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString, "user": user})
}

// Logout clears the session cookie
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(tokenCookieName, "", -1, "/", "", false, true)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgLoggedOut})
}

// CurrentUser returns the authenticated user's record
func (c *AuthController) CurrentUser(ctx *gin.Context) {
	userID := ctx.GetInt("userID")
	user, err := c.store.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}
