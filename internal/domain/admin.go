package domain

// Admin Model, dashboard operator credentials
type Admin struct {
	ID       uint   `gorm:"primaryKey"`           // Primary key
	Name     string `gorm:"not null"`             // Display name
	Email    string `gorm:"uniqueIndex;not null"` // Login email
	Password string `gorm:"not null"`             // Hashed password
}

// TableName keeps the legacy table name
func (Admin) TableName() string { return "admin_details" }
