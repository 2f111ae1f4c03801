package main

import (
	"github.com/satya-datta/beyond-dreams/internal/config" // Custom import path (Config)
	"github.com/satya-datta/beyond-dreams/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Run schema migration against MySQL
}
