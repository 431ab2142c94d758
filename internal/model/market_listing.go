package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketListing is a vehicle ad imported from an external marketplace
// (mobile.de). Calculations linked to one must state their CO2 emissions.
type MarketListing struct {
	ID                     uint            `gorm:"primaryKey" json:"id"`
	ExternalID             string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"externalId"`
	Source                 string          `gorm:"type:varchar(32);not null;default:'mobile.de'" json:"source"`
	Make                   string          `gorm:"type:varchar(100);not null" json:"make"`
	Model                  string          `gorm:"type:varchar(100)" json:"model"`
	FirstRegistration      *time.Time      `gorm:"type:date" json:"firstRegistration"`
	Price                  decimal.Decimal `gorm:"type:decimal(18,4)" json:"price"`
	Currency               string          `gorm:"type:varchar(10);not null;default:'EUR'" json:"currency"`
	CO2EmissionsGramsPerKm int             `gorm:"column:co2_emissions_grams_per_km;default:0" json:"co2EmissionsGramsPerKm"`
	FuelTypeID             int             `gorm:"default:0" json:"fuelType"`
	EnginePowerKw          int             `gorm:"default:0" json:"enginePowerKw"`
	URL                    string          `gorm:"type:text" json:"url"`
	CreatedAt              time.Time       `json:"createdAt"`
}
