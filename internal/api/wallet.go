package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"github.com/satya-datta/beyond-dreams/internal/domain" // Importing domain models
	"github.com/satya-datta/beyond-dreams/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// GetWalletHandler returns the wallet for a given user, cached for 60s
func GetWalletHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
			return
		}
		ctx := context.Background()
		cacheKey := "wallet:user:" + strconv.Itoa(int(userID)) // Cache key for wallet
		var wallet domain.Wallet
		// Try to get from cache
		if rdb != nil {
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &wallet); err == nil && found {
				c.JSON(http.StatusOK, gin.H{"wallet": wallet, "cached": true})
				return
			}
		}
		// If not in cache, fetch from DB
		if err := db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Wallet not found"})
			return
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, wallet, 60*time.Second) // Cache the wallet for 60 seconds
		}
		c.JSON(http.StatusOK, gin.H{"wallet": wallet, "cached": false})
	}
}

// GetWalletTransactionsHandler returns the credit history for a user's wallet
func GetWalletTransactionsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
			return
		}
		var wallet domain.Wallet // Get user's wallet
		if err := db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Wallet not found"})
			return
		}
		page := 1      // Default page
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size if valid
			}
		}
		offset := (page - 1) * pageSize // Calculate offset
		var total int64
		// Count total transactions for pagination
		if err := db.Model(&domain.WalletTransaction{}).
			Where("wallet_id = ?", wallet.ID).
			Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count transactions"})
			return
		}
		var transactions []domain.WalletTransaction
		// Fetch paginated transactions, newest first
		if err := db.Where("wallet_id = ?", wallet.ID).
			Order("created_at desc").
			Offset(offset).
			Limit(pageSize).
			Find(&transactions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch transactions"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		c.JSON(http.StatusOK, gin.H{
			"transactions": transactions, // List of transactions
			"page":         page,         // Current page
			"page_size":    pageSize,     // Page size
			"total":        total,        // Total transactions
			"total_pages":  totalPages,   // Total pages
		})
	}
}
