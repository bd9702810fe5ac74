package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gcstatus/backend/internal/database"
	"gcstatus/backend/internal/models"
)

// AdminMiddleware gates a route group to users with the admin role. It
// reads the userID set by AuthMiddleware, so it must run after it.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var roles []string
		err := database.DB.Model(&models.User{}).
			Where("id = ?", userID).
			Limit(1).
			Pluck("role", &roles).Error
		if err != nil || len(roles) == 0 {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Authenticated user not found"})
			return
		}

		if roles[0] != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Next()
	}
}
