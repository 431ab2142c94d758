package model

import (
	"time"

	"github.com/shopspring/decimal"

	"dmvcalc/internal/taxcalc"
)

// DmvCalculation is the persisted form of a vehicle tax calculation.
// Tax amount columns are written only from taxcalc.Derive output. The two
// totals are not stored; ToRecord rebuilds them from the stored values.
type DmvCalculation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DateOfCalculation time.Time `gorm:"type:date;not null" json:"dateOfCalculation"`

	VehicleTypeID         int `gorm:"not null" json:"vehicleType"`
	FuelTypeID            int `gorm:"not null" json:"fuelType"`
	EuroExhaustStandardID int `gorm:"not null" json:"euroExhaustStandard"`
	EngineTypeID          int `gorm:"not null;default:0" json:"engineType"`

	CO2EmissionsGramsPerKm    int  `gorm:"column:co2_emissions_grams_per_km;default:0" json:"co2EmissionsGramsPerKm"`
	EngineDisplacementCcm     int  `gorm:"not null" json:"engineDisplacementCcm"`
	EnginePowerKw             int  `gorm:"default:0" json:"enginePowerKw"`
	HasAtLeastEightSeats      bool `gorm:"default:false" json:"hasAtLeastEightSeats"`
	DieselParticlesAboveLimit bool `gorm:"default:false" json:"dieselParticlesAboveLimit"`

	VehicleValue             decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"vehicleValue"`
	BaseTaxRatePercent       decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"baseTaxRatePercent"`
	AdditionalTaxRatePercent decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"additionalTaxRatePercent"`

	BaseTaxAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"baseTaxAmount"`
	AdditionalTaxAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"additionalTaxAmount"`
	TotalTaxAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"totalTaxAmount"`

	IsDeleted   bool      `gorm:"not null;default:false;index" json:"isDeleted"`
	OwnerUserID string    `gorm:"type:varchar(128);not null;index" json:"ownerUserId"`
	CreatedOn   time.Time `gorm:"not null" json:"createdOn"`
	UpdatedAt   time.Time `json:"updatedAt"`

	MarketListingID *uint          `gorm:"index" json:"marketListingId"`
	MarketListing   *MarketListing `gorm:"foreignKey:MarketListingID" json:"marketListing,omitempty"`
}

// ToRecord converts the row into the calculation core's record.
func (m DmvCalculation) ToRecord() taxcalc.Record {
	r := taxcalc.Record{
		ID:                        m.ID,
		VehicleType:               taxcalc.VehicleType(m.VehicleTypeID),
		FuelType:                  taxcalc.FuelType(m.FuelTypeID),
		EuroExhaustStandard:       taxcalc.EuroExhaustStandard(m.EuroExhaustStandardID),
		EngineType:                taxcalc.EngineType(m.EngineTypeID),
		CO2EmissionsGramsPerKm:    m.CO2EmissionsGramsPerKm,
		EngineDisplacementCcm:     m.EngineDisplacementCcm,
		EnginePowerKw:             m.EnginePowerKw,
		HasAtLeastEightSeats:      m.HasAtLeastEightSeats,
		DieselParticlesAboveLimit: m.DieselParticlesAboveLimit,
		VehicleValue:              m.VehicleValue,
		BaseTaxRatePercent:        m.BaseTaxRatePercent,
		AdditionalTaxRatePercent:  m.AdditionalTaxRatePercent,
		BaseTaxAmount:             m.BaseTaxAmount,
		AdditionalTaxAmount:       m.AdditionalTaxAmount,
		TotalTaxAmount:            m.TotalTaxAmount,
		TotalVehicleValueWithTax:  m.VehicleValue.Add(m.TotalTaxAmount),
		TotalTaxRatePercent:       m.BaseTaxRatePercent.Add(m.AdditionalTaxRatePercent),
		DateOfCalculation:         m.DateOfCalculation,
		IsDeleted:                 m.IsDeleted,
		OwnerUserID:               m.OwnerUserID,
		CreatedOn:                 m.CreatedOn,
	}
	switch {
	case m.MarketListing != nil:
		r.Listing = &taxcalc.ListingRef{ID: m.MarketListing.ID}
	case m.MarketListingID != nil:
		r.Listing = &taxcalc.ListingRef{ID: *m.MarketListingID}
	}
	return r
}

// FromRecord copies a processed record into the row. The listing association
// is reduced to its foreign key.
func FromRecord(r taxcalc.Record) DmvCalculation {
	m := DmvCalculation{
		ID:                        r.ID,
		DateOfCalculation:         r.DateOfCalculation,
		VehicleTypeID:             int(r.VehicleType),
		FuelTypeID:                int(r.FuelType),
		EuroExhaustStandardID:     int(r.EuroExhaustStandard),
		EngineTypeID:              int(r.EngineType),
		CO2EmissionsGramsPerKm:    r.CO2EmissionsGramsPerKm,
		EngineDisplacementCcm:     r.EngineDisplacementCcm,
		EnginePowerKw:             r.EnginePowerKw,
		HasAtLeastEightSeats:      r.HasAtLeastEightSeats,
		DieselParticlesAboveLimit: r.DieselParticlesAboveLimit,
		VehicleValue:              r.VehicleValue,
		BaseTaxRatePercent:        r.BaseTaxRatePercent,
		AdditionalTaxRatePercent:  r.AdditionalTaxRatePercent,
		BaseTaxAmount:             r.BaseTaxAmount,
		AdditionalTaxAmount:       r.AdditionalTaxAmount,
		TotalTaxAmount:            r.TotalTaxAmount,
		IsDeleted:                 r.IsDeleted,
		OwnerUserID:               r.OwnerUserID,
		CreatedOn:                 r.CreatedOn,
	}
	if r.Listing != nil {
		id := r.Listing.ID
		m.MarketListingID = &id
	}
	return m
}
