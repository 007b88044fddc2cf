package database

import (
	"fmt"

	"psxlens/internal/logger"
	"psxlens/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Manager owns the local SQLite cache store. The cache holds scraped stock
// lists and company page snapshots; deleting the file only costs a re-scrape.
type Manager struct {
	db *gorm.DB
}

// NewManager opens (or creates) the cache database at path.
func NewManager(path string) (*Manager, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	return &Manager{db: db}, nil
}

// Migrate creates or updates the cache tables.
func (m *Manager) Migrate() error {
	logger.Get().Info("Migrating cache tables...")

	if err := m.db.AutoMigrate(
		&models.StockListEntry{},
		&models.CompanySnapshot{},
	); err != nil {
		return fmt.Errorf("cache migration failed: %w", err)
	}
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}
