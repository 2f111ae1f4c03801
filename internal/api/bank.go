package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/satya-datta/beyond-dreams/internal/domain" // Importing domain models
	"github.com/satya-datta/beyond-dreams/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Request struct for inserting bank details
type BankDetailsRequest struct {
	UserID            uint   `json:"user_id" binding:"required"`
	AccountHolderName string `json:"account_holder_name" binding:"required"`
	IFSCCode          string `json:"ifsc_code" binding:"required"`
	AccountNumber     string `json:"account_number" binding:"required"`
	BankName          string `json:"bank_name" binding:"required"`
	UpiID             string `json:"upi_id" binding:"required"`
}

// CreateBankDetailsHandler stores a user's payout bank details
func CreateBankDetailsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BankDetailsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		}
		// Validate the IFSC code format
		if !utils.ValidateIFSC(req.IFSCCode) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid IFSC code"})
			return
		}
		details := domain.BankDetail{
			UserID:            req.UserID,
			AccountHolderName: req.AccountHolderName,
			IFSCCode:          req.IFSCCode,
			AccountNumber:     req.AccountNumber,
			BankName:          req.BankName,
			UpiID:             req.UpiID,
		}
		if err := db.Create(&details).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while inserting user bank details"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "User bank details inserted successfully",
			"ubdid":   details.ID,
		})
	}
}

// GetBankDetailsHandler returns all bank detail records for a user
func GetBankDetailsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
			return
		}
		var details []domain.BankDetail
		if err := db.Where("user_id = ?", userID).Find(&details).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while retrieving user bank details"})
			return
		}
		if len(details) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "No bank details found for this user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":      "User bank details retrieved successfully",
			"bank_details": details,
		})
	}
}

// Request struct for updating bank details
type UpdateBankDetailsRequest struct {
	AccountHolderName string `json:"account_holder_name"`
	IFSCCode          string `json:"ifsc_code"`
	AccountNumber     string `json:"account_number"`
	BankName          string `json:"bank_name"`
	UpiID             string `json:"upi_id"`
}

// UpdateBankDetailsHandler rewrites a user's bank details
func UpdateBankDetailsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User ID is required"})
			return
		}
		var req UpdateBankDetailsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		if req.IFSCCode != "" && !utils.ValidateIFSC(req.IFSCCode) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid IFSC code"})
			return
		}
		res := db.Model(&domain.BankDetail{}).Where("user_id = ?", userID).Updates(map[string]any{
			"account_holder_name": req.AccountHolderName,
			"ifsc_code":           req.IFSCCode,
			"account_number":      req.AccountNumber,
			"bank_name":           req.BankName,
			"upi_id":              req.UpiID,
		})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while updating user bank details"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "No record found with the provided user ID"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":      "User bank details updated successfully",
			"affectedRows": res.RowsAffected,
		})
	}
}
