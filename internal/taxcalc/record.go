// Package taxcalc validates a vehicle tax ("DMV") calculation record and
// derives its tax totals. It performs no I/O and holds no state, so every
// function is safe for concurrent use.
package taxcalc

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingRef marks a record as linked to an external market listing.
// Only its presence is read by the rules; the listing itself is owned by
// the persistence layer.
type ListingRef struct {
	ID uint `json:"id"`
}

// Record is one vehicle tax calculation with its inputs and derived totals.
type Record struct {
	ID uint `json:"id,omitempty"`

	VehicleType         VehicleType         `json:"vehicleType"`
	FuelType            FuelType            `json:"fuelType"`
	EuroExhaustStandard EuroExhaustStandard `json:"euroExhaustStandard"`
	EngineType          EngineType          `json:"engineType"`

	CO2EmissionsGramsPerKm    int  `json:"co2EmissionsGramsPerKm"`
	EngineDisplacementCcm     int  `json:"engineDisplacementCcm"`
	EnginePowerKw             int  `json:"enginePowerKw"`
	HasAtLeastEightSeats      bool `json:"hasAtLeastEightSeats"`
	DieselParticlesAboveLimit bool `json:"dieselParticlesAboveLimit"`

	VehicleValue             decimal.Decimal `json:"vehicleValue"`
	BaseTaxRatePercent       decimal.Decimal `json:"baseTaxRatePercent"`
	AdditionalTaxRatePercent decimal.Decimal `json:"additionalTaxRatePercent"`

	// Set only by Derive.
	BaseTaxAmount            decimal.Decimal `json:"baseTaxAmount"`
	AdditionalTaxAmount      decimal.Decimal `json:"additionalTaxAmount"`
	TotalTaxAmount           decimal.Decimal `json:"totalTaxAmount"`
	TotalVehicleValueWithTax decimal.Decimal `json:"totalVehicleValueWithTax"`
	TotalTaxRatePercent      decimal.Decimal `json:"totalTaxRatePercent"`

	DateOfCalculation time.Time `json:"dateOfCalculation"`
	IsDeleted         bool      `json:"isDeleted"`
	OwnerUserID       string    `json:"ownerUserId,omitempty"`
	CreatedOn         time.Time `json:"createdOn"`

	Listing *ListingRef `json:"marketListing,omitempty"`
}

// HasListing reports whether the record is linked to a market listing.
func (r Record) HasListing() bool {
	return r.Listing != nil
}
