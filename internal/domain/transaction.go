package domain

// WalletTransaction Model, append-only audit log of balance changes
type WalletTransaction struct {
	ID          uint    `gorm:"primaryKey"` // Primary key
	UserID      uint    `gorm:"not null"`   // Owner of the credited wallet
	WalletID    uint    `gorm:"not null"`   // Foreign key to Wallet
	Amount      float64 `gorm:"not null"`   // Amount of the transaction
	Type        string  `gorm:"not null"`   // Transaction type: credit
	Description string  // Human-readable description
	CreatedAt   int64   `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
}

// TableName keeps the legacy table name
func (WalletTransaction) TableName() string { return "wallettransactions" }
