package middleware

import (
	"net/http" // HTTP status codes

	"github.com/satya-datta/beyond-dreams/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// AdminOnlyMiddleware re-checks the admin account in the database on each
// request, so revoked admins are locked out before their token expires
func AdminOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, exists := c.Get("adminID") // Get admin ID from context
		// Check if adminID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var admin domain.Admin // Fetch admin from database
		if err := db.First(&admin, adminID).Error; err != nil {
			// If admin not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// If still a registered admin, proceed to the next handler
		c.Next()
	}
}
