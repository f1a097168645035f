package database

import (
	"fmt"
	"log"

	"github.com/lnprasad/invoice-api/internal/config"
	"github.com/lnprasad/invoice-api/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Unique violations must surface as gorm.ErrDuplicatedKey so the
		// invoice save protocol can retry with a freshly allocated number.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Invoice{},
		&entity.Address{},
		&entity.Passkey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SeedDefaultPasskey hashes and stores the configured passkey when the
// passkeys table is empty, so a fresh install is reachable.
func SeedDefaultPasskey(db *gorm.DB, passkey string) error {
	if passkey == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.Passkey{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count passkeys: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passkey), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default passkey: %w", err)
	}

	if err := db.Create(&entity.Passkey{KeyHash: string(hash)}).Error; err != nil {
		return fmt.Errorf("failed to seed default passkey: %w", err)
	}

	log.Println("Default passkey seeded")
	return nil
}
