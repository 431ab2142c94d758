package taxcalc

// VehicleType classifies the taxed vehicle. Zero means "not chosen".
type VehicleType int

const (
	VehicleTypeUnset VehicleType = iota
	VehicleTypePassengerCar
	VehicleTypeMotorcycle
	VehicleTypeMotorhome
	VehicleTypeLightCommercial
	VehicleTypeQuad
)

var vehicleTypeNames = []string{"unset", "passenger_car", "motorcycle", "motorhome", "light_commercial", "quad"}

func (v VehicleType) String() string { return enumName(vehicleTypeNames, int(v)) }

// Known reports whether v is a recognized member other than the unset sentinel.
func (v VehicleType) Known() bool { return v > VehicleTypeUnset && v <= VehicleTypeQuad }

// FuelType of the taxed vehicle. Zero means "not chosen".
type FuelType int

const (
	FuelTypeUnset FuelType = iota
	FuelTypePetrol
	FuelTypeDiesel
	FuelTypeLPG
	FuelTypeCNG
	FuelTypeHybrid
	FuelTypeElectric
)

var fuelTypeNames = []string{"unset", "petrol", "diesel", "lpg", "cng", "hybrid", "electric"}

func (f FuelType) String() string { return enumName(fuelTypeNames, int(f)) }

func (f FuelType) Known() bool { return f > FuelTypeUnset && f <= FuelTypeElectric }

// EuroExhaustStandard is the EURO emission class. Zero means "not chosen".
type EuroExhaustStandard int

const (
	EuroUnset EuroExhaustStandard = iota
	Euro1
	Euro2
	Euro3
	Euro4
	Euro5
	Euro6
)

var euroNames = []string{"unset", "euro1", "euro2", "euro3", "euro4", "euro5", "euro6"}

func (e EuroExhaustStandard) String() string { return enumName(euroNames, int(e)) }

func (e EuroExhaustStandard) Known() bool { return e > EuroUnset && e <= Euro6 }

// EngineType is optional; zero is a valid default.
type EngineType int

const (
	EngineTypeUnspecified EngineType = iota
	EngineTypeCombustion
	EngineTypeHybrid
	EngineTypeElectric
)

var engineTypeNames = []string{"unspecified", "combustion", "hybrid", "electric"}

func (e EngineType) String() string { return enumName(engineTypeNames, int(e)) }

func (e EngineType) Known() bool { return e >= EngineTypeUnspecified && e <= EngineTypeElectric }

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return "unknown"
	}
	return names[v]
}
