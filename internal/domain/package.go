package domain

import "time"

// Package Model, a purchasable bundle of courses
type Package struct {
	ID          uint    `gorm:"primaryKey"` // Primary key
	Name        string  `gorm:"not null"`   // Package name
	Price       float64 `gorm:"not null"`   // Package price
	Description string  // Package description
	Commission  float64 // Admin-set commission percentage
	ImagePath   string  // Path to the uploaded package image
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName keeps the legacy table name
func (Package) TableName() string { return "packages" }

// PackageCourse Model, many-to-many join between packages and courses
type PackageCourse struct {
	PackageID uint `gorm:"primaryKey"` // Composite key part: package
	CourseID  uint `gorm:"primaryKey"` // Composite key part: course
}

// TableName keeps the legacy table name
func (PackageCourse) TableName() string { return "package_courses" }
