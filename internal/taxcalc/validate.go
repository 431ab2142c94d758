package taxcalc

// Rule checks one condition of a record and returns the violation it finds.
type Rule func(r Record) (Violation, bool)

// Rules are evaluated in this order; every rule runs regardless of earlier
// results so a form can show all problems at once.
var Rules = []Rule{
	ruleVehicleType,
	ruleFuelType,
	ruleEuroExhaustStandard,
	ruleEngineDisplacement,
	ruleVehicleValue,
	ruleCO2WhenListed,
	ruleEngineType,
}

// Validate returns every rule violation of r. An empty result means r is
// valid.
func Validate(r Record) Violations {
	return ValidateWith(r, Rules...)
}

// ValidateWith runs the given rules against r.
func ValidateWith(r Record, rules ...Rule) Violations {
	var out Violations
	for _, rule := range rules {
		if v, failed := rule(r); failed {
			out = append(out, v)
		}
	}
	return out
}

func ruleVehicleType(r Record) (Violation, bool) {
	switch {
	case r.VehicleType <= VehicleTypeUnset:
		return newViolation(KindVehicleTypeRequired, FieldVehicleType), true
	case !r.VehicleType.Known():
		return newViolation(KindVehicleTypeUnknown, FieldVehicleType), true
	}
	return Violation{}, false
}

func ruleFuelType(r Record) (Violation, bool) {
	switch {
	case r.FuelType <= FuelTypeUnset:
		return newViolation(KindFuelTypeRequired, FieldFuelType), true
	case !r.FuelType.Known():
		return newViolation(KindFuelTypeUnknown, FieldFuelType), true
	}
	return Violation{}, false
}

func ruleEuroExhaustStandard(r Record) (Violation, bool) {
	switch {
	case r.EuroExhaustStandard <= EuroUnset:
		return newViolation(KindEuroExhaustStandardRequired, FieldEuroExhaustStandard), true
	case !r.EuroExhaustStandard.Known():
		return newViolation(KindEuroExhaustStandardUnknown, FieldEuroExhaustStandard), true
	}
	return Violation{}, false
}

func ruleEngineDisplacement(r Record) (Violation, bool) {
	if r.EngineDisplacementCcm <= 0 {
		return newViolation(KindEngineDisplacementRequired, FieldEngineDisplacementCcm), true
	}
	return Violation{}, false
}

func ruleVehicleValue(r Record) (Violation, bool) {
	if !r.VehicleValue.IsPositive() {
		return newViolation(KindVehicleValueRequired, FieldVehicleValue), true
	}
	return Violation{}, false
}

// Linked records are priced from a real listing, which always states CO2.
func ruleCO2WhenListed(r Record) (Violation, bool) {
	if r.HasListing() && r.CO2EmissionsGramsPerKm <= 0 {
		return newViolation(KindCO2Required, FieldCO2EmissionsGramsPerKm), true
	}
	return Violation{}, false
}

func ruleEngineType(r Record) (Violation, bool) {
	if !r.EngineType.Known() {
		return newViolation(KindEngineTypeUnknown, FieldEngineType), true
	}
	return Violation{}, false
}
