package domain

// BankDetail Model, payout destination for a user's wallet earnings
type BankDetail struct {
	ID                uint   `gorm:"primaryKey"` // Primary key
	UserID            uint   `gorm:"not null"`   // Foreign key to User
	AccountHolderName string `gorm:"not null"`   // Account holder name
	IFSCCode          string `gorm:"not null"`   // Branch IFSC code
	AccountNumber     string `gorm:"not null"`   // Bank account number
	BankName          string `gorm:"not null"`   // Bank name
	UpiID             string `gorm:"not null"`   // UPI identifier
}

// TableName keeps the legacy table name
func (BankDetail) TableName() string { return "user_bank_details" }
