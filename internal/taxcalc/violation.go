package taxcalc

import (
	"fmt"
	"strings"
)

// Kind identifies which rule a violation comes from. Presentation layers key
// localized messages by it.
type Kind string

const (
	KindVehicleTypeRequired         Kind = "vehicle_type_required"
	KindVehicleTypeUnknown          Kind = "vehicle_type_unknown"
	KindFuelTypeRequired            Kind = "fuel_type_required"
	KindFuelTypeUnknown             Kind = "fuel_type_unknown"
	KindEuroExhaustStandardRequired Kind = "euro_exhaust_standard_required"
	KindEuroExhaustStandardUnknown  Kind = "euro_exhaust_standard_unknown"
	KindEngineTypeUnknown           Kind = "engine_type_unknown"
	KindEngineDisplacementRequired  Kind = "engine_displacement_required"
	KindVehicleValueRequired        Kind = "vehicle_value_required"
	KindCO2Required                 Kind = "co2_required"
)

// Wire names of the fields rules attribute violations to.
const (
	FieldVehicleType            = "vehicleType"
	FieldFuelType               = "fuelType"
	FieldEuroExhaustStandard    = "euroExhaustStandard"
	FieldEngineType             = "engineType"
	FieldEngineDisplacementCcm  = "engineDisplacementCcm"
	FieldVehicleValue           = "vehicleValue"
	FieldCO2EmissionsGramsPerKm = "co2EmissionsGramsPerKm"
)

var defaultMessages = map[Kind]string{
	KindVehicleTypeRequired:         "vehicle type required",
	KindVehicleTypeUnknown:          "vehicle type unknown",
	KindFuelTypeRequired:            "fuel type required",
	KindFuelTypeUnknown:             "fuel type unknown",
	KindEuroExhaustStandardRequired: "euro exhaust standard required",
	KindEuroExhaustStandardUnknown:  "euro exhaust standard unknown",
	KindEngineTypeUnknown:           "engine type unknown",
	KindEngineDisplacementRequired:  "engine displacement required",
	KindVehicleValueRequired:        "vehicle value required",
	KindCO2Required:                 "CO2 value required",
}

// DefaultMessage returns the English message for k.
func DefaultMessage(k Kind) string {
	if m, ok := defaultMessages[k]; ok {
		return m
	}
	return string(k)
}

// Violation ties a failed rule to the offending field.
type Violation struct {
	Kind    Kind   `json:"kind"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func newViolation(k Kind, field string) Violation {
	return Violation{Kind: k, Field: field, Message: DefaultMessage(k)}
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Violations is the ordered list produced by Validate. It satisfies error so
// callers outside the core can return it up the stack.
type Violations []Violation

func (vs Violations) Error() string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields lists the offending fields in rule order.
func (vs Violations) Fields() []string {
	fields := make([]string, 0, len(vs))
	for _, v := range vs {
		fields = append(fields, v.Field)
	}
	return fields
}

// Has reports whether any violation is of kind k.
func (vs Violations) Has(k Kind) bool {
	for _, v := range vs {
		if v.Kind == k {
			return true
		}
	}
	return false
}
