package domain

// Referral Model, one row per referred signup.
// The unique index on ReferredUserID makes commission application
// idempotent per referred user.
type Referral struct {
	ID             uint    `gorm:"primaryKey"`           // Primary key
	ReferrerID     uint    `gorm:"not null"`             // User who earned the commission
	ReferredUserID uint    `gorm:"uniqueIndex;not null"` // User whose signup triggered it
	Amount         float64 `gorm:"not null"`             // Commission credited
	CreatedAt      int64   `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
}
