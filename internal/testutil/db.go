// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dmvcalc/internal/database"
	"dmvcalc/internal/model"
)

// NewDB opens an isolated in-memory SQLite database with the schema migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// Listing inserts a market listing with the given CO2 value.
func Listing(t *testing.T, db *gorm.DB, co2 int) *model.MarketListing {
	t.Helper()

	reg := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)
	l := &model.MarketListing{
		ExternalID:             uuid.NewString(),
		Source:                 "mobile.de",
		Make:                   "Volkswagen",
		Model:                  "Golf",
		FirstRegistration:      &reg,
		Price:                  decimal.NewFromInt(18500),
		Currency:               "EUR",
		CO2EmissionsGramsPerKm: co2,
		FuelTypeID:             2,
		EnginePowerKw:          85,
	}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("failed to insert listing: %v", err)
	}
	return l
}
