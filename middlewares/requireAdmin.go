package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sudhamrit/grocery-api/models"
)

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := ctx.GetString("userRole")
		if role != models.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}
		ctx.Next()
	}
}
