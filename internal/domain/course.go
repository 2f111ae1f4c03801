package domain

import "time"

// Course Model
type Course struct {
	ID          uint   `gorm:"primaryKey"` // Primary key
	Name        string `gorm:"not null"`   // Course name
	Description string // Course description
	Instructor  string // Instructor name
	CreatedAt   time.Time
}

// TableName keeps the legacy singular table name
func (Course) TableName() string { return "course" }

// Topic Model, a single lesson inside a course
type Topic struct {
	ID       uint   `gorm:"primaryKey"` // Primary key
	Name     string `gorm:"not null"`   // Topic name
	VideoURL string `gorm:"not null"`   // Lesson video URL
	CourseID uint   `gorm:"not null"`   // Foreign key to Course
}

// TableName keeps the legacy table name
func (Topic) TableName() string { return "topics" }
