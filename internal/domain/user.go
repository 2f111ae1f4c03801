package domain

// User Model
type User struct {
	ID           uint   `gorm:"primaryKey"`           // Primary key
	Name         string `gorm:"not null"`             // Full name
	PackageID    uint   `gorm:"not null"`             // Foreign key to the purchased Package
	Email        string `gorm:"uniqueIndex;not null"` // Unique email address
	Phone        string `gorm:"uniqueIndex;not null"` // Unique phone number
	Gender       string `gorm:"not null"`             // Gender
	Avatar       string // Filename of the uploaded avatar image
	Address      string // Postal address
	Pincode      string // Postal code
	ReferralCode string `gorm:"uniqueIndex"` // Code generated for this user to share
	ReferrerID   *uint  // User who referred this one, if any
	ReferredBy   string // Referral code supplied at signup, if any
	Wallet       Wallet `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"` // One-to-one relationship with Wallet
}

// TableName keeps the legacy singular table name
func (User) TableName() string { return "user" }
