package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/satya-datta/beyond-dreams/internal/domain" // Importing domain models
	"github.com/satya-datta/beyond-dreams/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for admin login
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AdminInfo is the admin identity returned on successful login
type AdminInfo struct {
	ID    uint   `json:"id"`    // Admin ID
	Email string `json:"email"` // Admin email
	Name  string `json:"name"`  // Admin display name
}

// AuthAdminHandler authenticates an admin and returns a JWT token
func AuthAdminHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminLoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
			return
		}
		var admin domain.Admin // Fetch admin from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&admin).Error; err != nil {
			// If admin not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unknown admin"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unknown admin"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(admin.ID, admin.Email, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
			return
		}
		// Return the token and admin details in the response
		c.JSON(http.StatusOK, gin.H{
			"message": "Authentication successful",
			"token":   token,
			"admin":   AdminInfo{ID: admin.ID, Email: admin.Email, Name: admin.Name},
		})
	}
}

// LogoutHandler acknowledges a logout; tokens are stateless and simply
// discarded by the dashboard
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
	}
}

// ValidateAdminHandler confirms the presented token still maps to a
// registered admin; it runs behind the JWT middleware
func ValidateAdminHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, exists := c.Get("adminID") // Get admin ID from context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		var admin domain.Admin // Fetch admin from database
		if err := db.First(&admin, adminID).Error; err != nil {
			// Token is valid but the account no longer exists
			c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden: Invalid token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Token valid",
			"admin":   AdminInfo{ID: admin.ID, Email: admin.Email, Name: admin.Name},
		})
	}
}
