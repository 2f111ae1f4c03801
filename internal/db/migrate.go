package db

import (
	"github.com/satya-datta/beyond-dreams/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Open connects to MySQL with error translation enabled, so duplicate-key
// violations surface as gorm.ErrDuplicatedKey (the referral idempotency
// guard relies on it).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := Open(dsn) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(
		&domain.Admin{},
		&domain.Course{},
		&domain.Topic{},
		&domain.Package{},
		&domain.PackageCourse{},
		&domain.User{},
		&domain.Wallet{},
		&domain.WalletTransaction{},
		&domain.Referral{},
		&domain.BankDetail{},
	)
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
