package taxcalc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() Record {
	return Record{
		VehicleType:           VehicleTypePassengerCar,
		FuelType:              FuelTypePetrol,
		EuroExhaustStandard:   Euro6,
		EngineDisplacementCcm: 1200,
		VehicleValue:          decimal.NewFromInt(8000),
	}
}

func TestValidate_ValidRecordHasNoViolations(t *testing.T) {
	assert.Empty(t, Validate(validRecord()))
}

func TestValidate_SingleRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Record)
		kind   Kind
		field  string
	}{
		{"vehicle type unset", func(r *Record) { r.VehicleType = VehicleTypeUnset }, KindVehicleTypeRequired, FieldVehicleType},
		{"vehicle type negative", func(r *Record) { r.VehicleType = -3 }, KindVehicleTypeRequired, FieldVehicleType},
		{"vehicle type out of range", func(r *Record) { r.VehicleType = 99 }, KindVehicleTypeUnknown, FieldVehicleType},
		{"fuel type unset", func(r *Record) { r.FuelType = FuelTypeUnset }, KindFuelTypeRequired, FieldFuelType},
		{"fuel type out of range", func(r *Record) { r.FuelType = 42 }, KindFuelTypeUnknown, FieldFuelType},
		{"euro unset", func(r *Record) { r.EuroExhaustStandard = EuroUnset }, KindEuroExhaustStandardRequired, FieldEuroExhaustStandard},
		{"euro out of range", func(r *Record) { r.EuroExhaustStandard = 7 }, KindEuroExhaustStandardUnknown, FieldEuroExhaustStandard},
		{"engine displacement zero", func(r *Record) { r.EngineDisplacementCcm = 0 }, KindEngineDisplacementRequired, FieldEngineDisplacementCcm},
		{"engine displacement negative", func(r *Record) { r.EngineDisplacementCcm = -1 }, KindEngineDisplacementRequired, FieldEngineDisplacementCcm},
		{"vehicle value zero", func(r *Record) { r.VehicleValue = decimal.Zero }, KindVehicleValueRequired, FieldVehicleValue},
		{"vehicle value negative", func(r *Record) { r.VehicleValue = decimal.NewFromInt(-5) }, KindVehicleValueRequired, FieldVehicleValue},
		{"engine type out of range", func(r *Record) { r.EngineType = 9 }, KindEngineTypeUnknown, FieldEngineType},
		{"listed without co2", func(r *Record) { r.Listing = &ListingRef{ID: 4} }, KindCO2Required, FieldCO2EmissionsGramsPerKm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)

			got := Validate(r)
			require.Len(t, got, 1)
			assert.Equal(t, tt.kind, got[0].Kind)
			assert.Equal(t, tt.field, got[0].Field)
			assert.Equal(t, DefaultMessage(tt.kind), got[0].Message)
		})
	}
}

func TestValidate_VehicleTypeOnly(t *testing.T) {
	r := Record{
		VehicleType:           0,
		FuelType:              1,
		EuroExhaustStandard:   1,
		EngineDisplacementCcm: 1200,
		VehicleValue:          decimal.NewFromInt(8000),
	}

	got := Validate(r)

	assert.Equal(t, Violations{
		{Kind: KindVehicleTypeRequired, Field: "vehicleType", Message: "vehicle type required"},
	}, got)
}

func TestValidate_ListingMakesCO2Required(t *testing.T) {
	r := Record{
		VehicleType:            0,
		FuelType:               1,
		EuroExhaustStandard:    1,
		EngineDisplacementCcm:  1200,
		VehicleValue:           decimal.NewFromInt(8000),
		CO2EmissionsGramsPerKm: 0,
		Listing:                &ListingRef{ID: 17},
	}

	got := Validate(r)

	assert.Equal(t, []string{FieldVehicleType, FieldCO2EmissionsGramsPerKm}, got.Fields())
	assert.True(t, got.Has(KindCO2Required))
}

func TestValidate_CO2OptionalWithoutListing(t *testing.T) {
	for _, co2 := range []int{-10, 0, 1, 150} {
		r := validRecord()
		r.CO2EmissionsGramsPerKm = co2
		assert.False(t, Validate(r).Has(KindCO2Required), "co2=%d", co2)

		r.Listing = &ListingRef{}
		assert.Equal(t, co2 <= 0, Validate(r).Has(KindCO2Required), "co2=%d listed", co2)
	}
}

func TestValidate_CollectsEveryViolation(t *testing.T) {
	got := Validate(Record{Listing: &ListingRef{ID: 1}})

	assert.Equal(t, []string{
		FieldVehicleType,
		FieldFuelType,
		FieldEuroExhaustStandard,
		FieldEngineDisplacementCcm,
		FieldVehicleValue,
		FieldCO2EmissionsGramsPerKm,
	}, got.Fields())
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	r := validRecord()
	r.VehicleType = 0
	before := r

	Validate(r)

	assert.Equal(t, before, r)
}

func TestValidateWith_CustomRules(t *testing.T) {
	r := Record{}
	got := ValidateWith(r, ruleVehicleValue)
	require.Len(t, got, 1)
	assert.Equal(t, FieldVehicleValue, got[0].Field)
}

func TestViolations_Error(t *testing.T) {
	vs := Violations{
		newViolation(KindFuelTypeRequired, FieldFuelType),
		newViolation(KindVehicleValueRequired, FieldVehicleValue),
	}
	assert.Equal(t, "validation failed: fuelType: fuel type required; vehicleValue: vehicle value required", vs.Error())
}
