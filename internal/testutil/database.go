// Package testutil provides test helpers for setting up in-memory databases,
// building company record fixtures, and making assertions.
package testutil

import (
	"testing"

	"psxlens/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// cacheModels is the list of GORM models to auto-migrate in tests.
var cacheModels = []interface{}{
	&models.StockListEntry{},
	&models.CompanySnapshot{},
}

// SetupTestDB creates an in-memory SQLite database with the cache tables
// migrated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(cacheModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
