package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dmvcalc/internal/taxcalc"
)

func TestFromRecord_ToRecord(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	in := taxcalc.Derive(taxcalc.Record{
		ID:                     7,
		VehicleType:            taxcalc.VehicleTypePassengerCar,
		FuelType:               taxcalc.FuelTypeDiesel,
		EuroExhaustStandard:    taxcalc.Euro6,
		EngineType:             taxcalc.EngineTypeCombustion,
		CO2EmissionsGramsPerKm: 128,
		EngineDisplacementCcm:  1968,
		EnginePowerKw:          110,
		VehicleValue:           decimal.NewFromInt(31500),
		BaseTaxRatePercent:     decimal.NewFromInt(8),
		DateOfCalculation:      created,
		OwnerUserID:            "user-1",
		CreatedOn:              created,
		Listing:                &taxcalc.ListingRef{ID: 12},
	})

	row := FromRecord(in)
	require.NotNil(t, row.MarketListingID)
	assert.Equal(t, uint(12), *row.MarketListingID)
	assert.Equal(t, 1, row.VehicleTypeID)

	assert.Equal(t, in, row.ToRecord())
}

func TestToRecord_ListingPresence(t *testing.T) {
	assert.Nil(t, DmvCalculation{}.ToRecord().Listing)

	id := uint(5)
	assert.Equal(t, &taxcalc.ListingRef{ID: 5}, DmvCalculation{MarketListingID: &id}.ToRecord().Listing)

	byRef := DmvCalculation{MarketListing: &MarketListing{ID: 9}}
	assert.Equal(t, &taxcalc.ListingRef{ID: 9}, byRef.ToRecord().Listing)
}
