package database

import (
	"fmt"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"landlink/config"
	"landlink/entities"
)

// Open connects to the configured backend. sqlite is the local default;
// postgres is the hosted deployment.
func Open(cfg config.AppConfig) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch cfg.DBDriver {
	case "", "sqlite":
		dial = sqlite.Open(cfg.DBPath)
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for postgres")
		}
		dial = postgres.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	if dial.Name() == "sqlite" {
		// a single writer avoids SQLITE_BUSY between concurrent requests
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates or updates the profiles, farmer_profiles and lands tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.Profile{},
		&entities.FarmerProfile{},
		&entities.Land{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
