package api

import (
	"context"       // Context for Redis operations
	"net/http"      // HTTP status codes
	"path/filepath" // Upload path handling
	"strconv"       // String conversion
	"time"          // Time durations

	"github.com/satya-datta/beyond-dreams/internal/domain"   // Importing domain models
	"github.com/satya-datta/beyond-dreams/internal/referral" // Referral commission core
	"github.com/satya-datta/beyond-dreams/internal/utils"    // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library

	"github.com/sirupsen/logrus" // Logging library
)

// UserDetailsResponse is the flattened user record returned to the dashboard
type UserDetailsResponse struct {
	UserID                uint   `json:"userId"`                // User ID
	Name                  string `json:"name"`                  // Full name
	PackageID             uint   `json:"packageId"`             // Purchased package
	Email                 string `json:"email"`                 // Email address
	Phone                 string `json:"phone"`                 // Phone number
	Gender                string `json:"gender"`                // Gender
	Avatar                string `json:"avatar"`                // Avatar filename
	Address               string `json:"Address"`               // Postal address
	Pincode               string `json:"Pincode"`               // Postal code
	GeneratedReferralCode string `json:"generatedReferralCode"` // Code this user shares
	ReferrerID            *uint  `json:"referrerId"`            // Referrer, if any
	ReferralCode          string `json:"referralCode"`          // Code supplied at signup
}

// createUserMessage picks the response message variant for a referral outcome
func createUserMessage(res referral.Result) string {
	switch res.Outcome {
	case referral.Applied:
		return "User and wallet created successfully with referral bonus"
	case referral.AlreadyApplied:
		return "User and wallet created successfully (referral bonus already applied)"
	default:
		return "User and wallet created successfully (no referrer found)"
	}
}

// CreateUserHandler creates a user together with a zero-balance wallet and,
// when a referral code is supplied, credits the referrer's wallet
func CreateUserHandler(db *gorm.DB, referrals *referral.Service, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Read multipart form fields
		name := c.PostForm("name")
		packageIDStr := c.PostForm("package_id")
		email := c.PostForm("email")
		phone := c.PostForm("phone")
		gender := c.PostForm("gender")
		address := c.PostForm("Address")
		pincode := c.PostForm("Pincode")
		generatedCode := c.PostForm("generatedReferralCode")
		referrerCode := c.PostForm("referrercode")
		// Validate the data
		if name == "" || packageIDStr == "" || email == "" || phone == "" || gender == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		}
		packageID, err := strconv.ParseUint(packageIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid package id"})
			return
		}
		// Validate email and phone formats
		if !utils.ValidateEmail(email) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email format"})
			return
		}
		if !utils.ValidatePhone(phone) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid phone number"})
			return
		}
		// Optional referrer id field
		var referrerID *uint
		if v := c.PostForm("referrerId"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil {
				rid := uint(id)
				referrerID = &rid
			}
		}
		// Save the uploaded avatar, if any
		avatar := ""
		if file, err := c.FormFile("avatar"); err == nil && file != nil {
			avatar = utils.UploadFilename(file.Filename)
			if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, avatar)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading avatar image"})
				return
			}
		}
		// Every user gets a shareable code; accept the client's if supplied
		if generatedCode == "" {
			generatedCode = utils.GenerateReferralCode()
		}
		var user domain.User
		var wallet domain.Wallet
		// User row and its zero-balance wallet commit as one atomic unit
		err = db.Transaction(func(tx *gorm.DB) error {
			user = domain.User{
				Name:         name,
				PackageID:    uint(packageID),
				Email:        email,
				Phone:        phone,
				Gender:       gender,
				Avatar:       avatar,
				Address:      address,
				Pincode:      pincode,
				ReferralCode: generatedCode,
				ReferrerID:   referrerID,
				ReferredBy:   referrerCode,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err // Return error to rollback
			}
			wallet = domain.Wallet{UserID: user.ID, Balance: 0}
			return tx.Create(&wallet).Error
		})
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"email": email,
				"error": err.Error(),
			}).Error("User creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating user", "error": err.Error()})
			return
		}
		// No referral code means the plain success path
		if referrerCode == "" {
			c.JSON(http.StatusCreated, gin.H{
				"message":  "User and wallet created successfully",
				"userId":   user.ID,
				"walletId": wallet.ID,
			})
			return
		}
		// Apply the referral bonus after the user has committed; a failure
		// here is reported but never rolls back the new user
		res, err := referrals.Apply(user.PackageID, referrerCode, user.ID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":       user.ID,
				"referral_code": referrerCode,
				"error":         err.Error(),
			}).Error("Referral bonus failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "userId": user.ID, "walletId": wallet.ID})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":  createUserMessage(res),
			"userId":   user.ID,
			"walletId": wallet.ID,
		})
	}
}

// UpdateUserHandler rewrites a user record; the avatar keeps its previous
// value when no new file is uploaded, and a supplied referral code re-runs
// the referral flow (idempotent per referred user)
func UpdateUserHandler(db *gorm.DB, referrals *referral.Service, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
			return
		}
		// Read multipart form fields
		name := c.PostForm("name")
		packageIDStr := c.PostForm("package_id")
		email := c.PostForm("email")
		phone := c.PostForm("phone")
		gender := c.PostForm("gender")
		referrerCode := c.PostForm("referrercode")
		// Validate required fields
		if name == "" || packageIDStr == "" || email == "" || phone == "" || gender == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All required fields must be provided"})
			return
		}
		packageID, err := strconv.ParseUint(packageIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid package id"})
			return
		}
		var user domain.User // Fetch the existing record
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		// New avatar replaces the old one; otherwise the old value stays
		avatar := user.Avatar
		if file, err := c.FormFile("avatar"); err == nil && file != nil {
			avatar = utils.UploadFilename(file.Filename)
			if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, avatar)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading avatar image"})
				return
			}
		}
		// Generated code keeps its old value unless the client sends a new one
		generatedCode := c.PostForm("generatedReferralCode")
		if generatedCode == "" {
			generatedCode = user.ReferralCode
		}
		var referrerID *uint
		if v := c.PostForm("referrerId"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil {
				rid := uint(id)
				referrerID = &rid
			}
		}
		// Full overwrite of the record; optional fields go to empty when absent
		updates := map[string]any{
			"name":          name,
			"package_id":    uint(packageID),
			"email":         email,
			"phone":         phone,
			"gender":        gender,
			"avatar":        avatar,
			"address":       c.PostForm("Address"),
			"pincode":       c.PostForm("Pincode"),
			"referral_code": generatedCode,
			"referrer_id":   referrerID,
			"referred_by":   referrerCode,
		}
		if err := db.Model(&domain.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("User update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating user details", "error": err.Error()})
			return
		}
		// Drop the cached detail record for this user
		if v, ok := c.Get("redisClient"); ok {
			if rdb, ok := v.(*redis.Client); ok {
				_ = utils.DeleteCache(context.Background(), rdb, utils.UserCacheKey(uint(userID)))
			}
		}
		// Re-run the referral flow when a code is present
		if referrerCode != "" {
			res, err := referrals.Apply(uint(packageID), referrerCode, uint(userID))
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id":       userID,
					"referral_code": referrerCode,
					"error":         err.Error(),
				}).Error("Referral bonus failed")
				c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
			switch res.Outcome {
			case referral.Applied:
				c.JSON(http.StatusOK, gin.H{"message": "User details updated successfully with referral bonus applied"})
			case referral.AlreadyApplied:
				c.JSON(http.StatusOK, gin.H{"message": "User details updated successfully (referral bonus already applied)"})
			default:
				c.JSON(http.StatusOK, gin.H{"message": "User details updated successfully (no referrer found)"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User details updated successfully"})
	}
}

// GetUserDetailsHandler returns the flattened user record, cached for 60s
func GetUserDetailsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
			return
		}
		ctx := context.Background()
		cacheKey := utils.UserCacheKey(uint(userID))
		var cached UserDetailsResponse
		// Try the cache first
		if rdb != nil {
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, gin.H{"message": "User details retrieved successfully", "user": cached, "cached": true})
				return
			}
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		resp := UserDetailsResponse{
			UserID:                user.ID,
			Name:                  user.Name,
			PackageID:             user.PackageID,
			Email:                 user.Email,
			Phone:                 user.Phone,
			Gender:                user.Gender,
			Avatar:                user.Avatar,
			Address:               user.Address,
			Pincode:               user.Pincode,
			GeneratedReferralCode: user.ReferralCode,
			ReferrerID:            user.ReferrerID,
			ReferralCode:          user.ReferredBy,
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second) // Cache for 60 seconds
		}
		c.JSON(http.StatusOK, gin.H{"message": "User details retrieved successfully", "user": resp, "cached": false})
	}
}
