package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation
	"time"     // Time durations

	"github.com/satya-datta/beyond-dreams/internal/domain" // Importing domain models
	"github.com/satya-datta/beyond-dreams/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// UserAdminResponse represents the user data returned to the dashboard
type UserAdminResponse struct {
	ID           uint          `json:"id"`           // User ID
	Name         string        `json:"name"`         // Full name
	Email        string        `json:"email"`        // Email address
	PackageID    uint          `json:"package_id"`   // Purchased package
	ReferralCode string        `json:"referralCode"` // Code this user shares
	Wallet       domain.Wallet `json:"wallet"`       // Associated wallet
}

// ListUsersHandler returns all users with their wallet info
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Create a cache key based on pagination parameters
		cacheKey := "admin:users:page=" + c.DefaultQuery("page", "1") + ":size=" + c.DefaultQuery("page_size", "20")
		var cached struct {
			Users      []UserAdminResponse `json:"users"`       // List of users
			Page       int                 `json:"page"`        // Current page
			PageSize   int                 `json:"page_size"`   // Page size
			Total      int64               `json:"total"`       // Total number of users
			TotalPages int                 `json:"total_pages"` // Total pages
		}
		// If cached data found, return it
		if rdb != nil {
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, gin.H{
					"users":       cached.Users,      // List of users
					"page":        cached.Page,       // Current page
					"page_size":   cached.PageSize,   // Page size
					"total":       cached.Total,      // Total number of users
					"total_pages": cached.TotalPages, // Total pages
					"cached":      true,              // Indicate response is from cache
				})
				return
			}
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		offset := (page - 1) * pageSize // Calculate offset for pagination
		var total int64                 // Total user count
		if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count users"}) // Return on error
			return
		}
		var users []domain.User // Slice to hold users
		// Preload Wallet relation, apply offset and limit for pagination
		if err := db.Preload("Wallet").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"}) // Return on error
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		// Map users to response format
		resp := make([]UserAdminResponse, len(users))
		for i, u := range users {
			resp[i] = UserAdminResponse{
				ID:           u.ID,           // User ID
				Name:         u.Name,         // Full name
				Email:        u.Email,        // Email address
				PackageID:    u.PackageID,    // Purchased package
				ReferralCode: u.ReferralCode, // Shared code
				Wallet:       u.Wallet,       // Associated wallet
			}
		}
		respData := gin.H{
			"users":       resp,       // List of users
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of users
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		if rdb != nil {
			// Cache the response for future requests
			_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		}
		c.JSON(http.StatusOK, respData) // Return the response
	}
}

// parseTimeFilter converts a from/to query value into the epoch-milli scale
// created_at is stored in. Accepts a raw milli timestamp or a YYYY-MM-DD
// date; a date used as the range end covers that whole day.
func parseTimeFilter(s string, endOfDay bool) (int64, bool) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, true
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, false
	}
	if endOfDay {
		d = d.Add(24*time.Hour - time.Millisecond)
	}
	return d.UnixMilli(), true
}

// ListTransactionsHandler returns all wallet transactions, with optional
// filtering by user, type, or date
func ListTransactionsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		// Build cache key from all query params
		var keyParts []string
		for _, k := range []string{"user_id", "type", "from", "to", "page", "page_size"} {
			keyParts = append(keyParts, k+"="+c.DefaultQuery(k, "")) // Append key-value pair
		}
		cacheKey := "admin:txs:" + strings.Join(keyParts, ":")
		var cached struct {
			Transactions []domain.WalletTransaction `json:"transactions"` // List of transactions
			Page         int                        `json:"page"`         // Current page
			PageSize     int                        `json:"page_size"`    // Page size
			Total        int64                      `json:"total"`        // Total number of transactions
			TotalPages   int                        `json:"total_pages"`  // Total pages
		}
		// If cached data found, return it
		if rdb != nil {
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, gin.H{
					"transactions": cached.Transactions, // List of transactions
					"page":         cached.Page,         // Current page
					"page_size":    cached.PageSize,     // Page size
					"total":        cached.Total,        // Total number of transactions
					"total_pages":  cached.TotalPages,   // Total pages
					"cached":       true,                // Indicate response is from cache
				})
				return
			}
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		offset := (page - 1) * pageSize                // Calculate offset for pagination
		query := db.Model(&domain.WalletTransaction{}) // Start building the query
		if userID := c.Query("user_id"); userID != "" {
			query = query.Where("user_id = ?", userID) // Filter by user ID
		}
		if txType := c.Query("type"); txType != "" {
			query = query.Where("type = ?", txType) // Filter by transaction type
		}
		if from := c.Query("from"); from != "" {
			if ms, ok := parseTimeFilter(from, false); ok {
				query = query.Where("created_at >= ?", ms) // Filter by start date
			}
		}
		if to := c.Query("to"); to != "" {
			if ms, ok := parseTimeFilter(to, true); ok {
				query = query.Where("created_at <= ?", ms) // Filter by end date
			}
		}
		var total int64 // Total transaction count
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count transactions"})
			return
		}
		var txs []domain.WalletTransaction // Slice to hold transactions
		// Fetch paginated transactions with filters applied
		if err := query.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&txs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch transactions"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize
		respData := gin.H{
			"transactions": txs,        // List of transactions
			"page":         page,       // Current page
			"page_size":    pageSize,   // Page size
			"total":        total,      // Total number of transactions
			"total_pages":  totalPages, // Total pages
			"cached":       false,      // Indicate response is not from cache
		}
		if rdb != nil {
			// Cache the response for future requests
			_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		}
		c.JSON(http.StatusOK, respData) // Return the response
	}
}
