package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"dmvcalc/internal/taxcalc"
)

const dateLayout = "2006-01-02"

// --- DTOs ---

// CalculationRequest carries the user-supplied primary fields. Derived
// fields are never accepted from the client.
type CalculationRequest struct {
	DateOfCalculation string `json:"dateOfCalculation"` // YYYY-MM-DD, defaults to today

	VehicleType         int `json:"vehicleType"`
	FuelType            int `json:"fuelType"`
	EuroExhaustStandard int `json:"euroExhaustStandard"`
	EngineType          int `json:"engineType"`

	CO2EmissionsGramsPerKm    int  `json:"co2EmissionsGramsPerKm"`
	EngineDisplacementCcm     int  `json:"engineDisplacementCcm"`
	EnginePowerKw             int  `json:"enginePowerKw" binding:"gte=0"`
	HasAtLeastEightSeats      bool `json:"hasAtLeastEightSeats"`
	DieselParticlesAboveLimit bool `json:"dieselParticlesAboveLimit"`

	VehicleValue             decimal.Decimal `json:"vehicleValue"`
	BaseTaxRatePercent       decimal.Decimal `json:"baseTaxRatePercent"`
	AdditionalTaxRatePercent decimal.Decimal `json:"additionalTaxRatePercent"`

	MarketListingID *uint `json:"marketListingId"`
}

// CalculationResponse is a record as exposed over the API. Money is
// rendered with the configured currency precision.
type CalculationResponse struct {
	ID                uint   `json:"id,omitempty"`
	DateOfCalculation string `json:"dateOfCalculation"`

	VehicleType         int `json:"vehicleType"`
	FuelType            int `json:"fuelType"`
	EuroExhaustStandard int `json:"euroExhaustStandard"`
	EngineType          int `json:"engineType"`

	CO2EmissionsGramsPerKm    int  `json:"co2EmissionsGramsPerKm"`
	EngineDisplacementCcm     int  `json:"engineDisplacementCcm"`
	EnginePowerKw             int  `json:"enginePowerKw"`
	HasAtLeastEightSeats      bool `json:"hasAtLeastEightSeats"`
	DieselParticlesAboveLimit bool `json:"dieselParticlesAboveLimit"`

	VehicleValue             string `json:"vehicleValue"`
	BaseTaxRatePercent       string `json:"baseTaxRatePercent"`
	AdditionalTaxRatePercent string `json:"additionalTaxRatePercent"`

	BaseTaxAmount            string `json:"baseTaxAmount"`
	AdditionalTaxAmount      string `json:"additionalTaxAmount"`
	TotalTaxAmount           string `json:"totalTaxAmount"`
	TotalVehicleValueWithTax string `json:"totalVehicleValueWithTax"`
	TotalTaxRatePercent      string `json:"totalTaxRatePercent"`

	IsDeleted       bool   `json:"isDeleted"`
	OwnerUserID     string `json:"ownerUserId,omitempty"`
	CreatedOn       string `json:"createdOn,omitempty"`
	MarketListingID *uint  `json:"marketListingId"`
}

// PreviewResponse is the outcome of processing a record without saving it.
type PreviewResponse struct {
	Record     CalculationResponse `json:"record"`
	Violations taxcalc.Violations  `json:"violations"`
	Valid      bool                `json:"valid"`
}

// --- Helpers ---

// toRecord maps the request onto a fresh record dated today unless a date is given.
func (req CalculationRequest) toRecord(today time.Time) (taxcalc.Record, error) {
	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if req.DateOfCalculation != "" {
		parsed, err := time.Parse(dateLayout, req.DateOfCalculation)
		if err != nil {
			return taxcalc.Record{}, fmt.Errorf("%w: dateOfCalculation must be YYYY-MM-DD", ErrInvalidInput)
		}
		date = parsed
	}

	r := taxcalc.Record{
		VehicleType:               taxcalc.VehicleType(req.VehicleType),
		FuelType:                  taxcalc.FuelType(req.FuelType),
		EuroExhaustStandard:       taxcalc.EuroExhaustStandard(req.EuroExhaustStandard),
		EngineType:                taxcalc.EngineType(req.EngineType),
		CO2EmissionsGramsPerKm:    req.CO2EmissionsGramsPerKm,
		EngineDisplacementCcm:     req.EngineDisplacementCcm,
		EnginePowerKw:             req.EnginePowerKw,
		HasAtLeastEightSeats:      req.HasAtLeastEightSeats,
		DieselParticlesAboveLimit: req.DieselParticlesAboveLimit,
		VehicleValue:              req.VehicleValue,
		BaseTaxRatePercent:        req.BaseTaxRatePercent,
		AdditionalTaxRatePercent:  req.AdditionalTaxRatePercent,
		DateOfCalculation:         date,
	}
	if req.MarketListingID != nil {
		r.Listing = &taxcalc.ListingRef{ID: *req.MarketListingID}
	}
	return r, nil
}

// Formatter renders records with a fixed currency precision. Inputs are
// rendered as given.
type Formatter struct {
	rounding taxcalc.Rounding
}

func NewFormatter(rounding taxcalc.Rounding) Formatter {
	return Formatter{rounding: rounding}
}

// money pads derived amounts to the currency precision. Digits beyond it
// come from the unrounded vehicle value and are kept.
func (f Formatter) money(d decimal.Decimal) string {
	if f.rounding.Mode == taxcalc.RoundNone || !d.Equal(d.Truncate(f.rounding.Places)) {
		return d.String()
	}
	return d.StringFixed(f.rounding.Places)
}

func (f Formatter) Response(r taxcalc.Record) CalculationResponse {
	resp := CalculationResponse{
		ID:                        r.ID,
		DateOfCalculation:         r.DateOfCalculation.Format(dateLayout),
		VehicleType:               int(r.VehicleType),
		FuelType:                  int(r.FuelType),
		EuroExhaustStandard:       int(r.EuroExhaustStandard),
		EngineType:                int(r.EngineType),
		CO2EmissionsGramsPerKm:    r.CO2EmissionsGramsPerKm,
		EngineDisplacementCcm:     r.EngineDisplacementCcm,
		EnginePowerKw:             r.EnginePowerKw,
		HasAtLeastEightSeats:      r.HasAtLeastEightSeats,
		DieselParticlesAboveLimit: r.DieselParticlesAboveLimit,
		VehicleValue:              r.VehicleValue.String(),
		BaseTaxRatePercent:        r.BaseTaxRatePercent.String(),
		AdditionalTaxRatePercent:  r.AdditionalTaxRatePercent.String(),
		BaseTaxAmount:             f.money(r.BaseTaxAmount),
		AdditionalTaxAmount:       f.money(r.AdditionalTaxAmount),
		TotalTaxAmount:            f.money(r.TotalTaxAmount),
		TotalVehicleValueWithTax:  f.money(r.TotalVehicleValueWithTax),
		TotalTaxRatePercent:       r.TotalTaxRatePercent.String(),
		IsDeleted:                 r.IsDeleted,
		OwnerUserID:               r.OwnerUserID,
	}
	if !r.CreatedOn.IsZero() {
		resp.CreatedOn = r.CreatedOn.Format(time.RFC3339)
	}
	if r.Listing != nil {
		id := r.Listing.ID
		resp.MarketListingID = &id
	}
	return resp
}
