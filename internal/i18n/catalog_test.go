package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dmvcalc/internal/taxcalc"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	c, err := Load("sl")
	require.NoError(t, err)

	assert.Equal(t, []string{"sl", "en"}, c.Languages())
	assert.Equal(t, "Vozilo je obvezno polje.", c.Message("sl", taxcalc.KindVehicleTypeRequired))
	assert.Equal(t, "Co2 je obvezno polje.", c.Message("sl", taxcalc.KindCO2Required))
	assert.Equal(t, "Fuel is a required field.", c.Message("en", taxcalc.KindFuelTypeRequired))
}

func TestLoad_UnknownFallback(t *testing.T) {
	_, err := Load("de")
	assert.Error(t, err)
}

func TestCatalog_EveryKindTranslated(t *testing.T) {
	c, err := Load("en")
	require.NoError(t, err)

	kinds := []taxcalc.Kind{
		taxcalc.KindVehicleTypeRequired, taxcalc.KindVehicleTypeUnknown,
		taxcalc.KindFuelTypeRequired, taxcalc.KindFuelTypeUnknown,
		taxcalc.KindEuroExhaustStandardRequired, taxcalc.KindEuroExhaustStandardUnknown,
		taxcalc.KindEngineTypeUnknown, taxcalc.KindEngineDisplacementRequired,
		taxcalc.KindVehicleValueRequired, taxcalc.KindCO2Required,
	}
	for _, lang := range c.Languages() {
		for _, k := range kinds {
			_, ok := c.locales[lang].Messages[k]
			assert.True(t, ok, "%s missing %s", lang, k)
		}
	}
}

func TestCatalog_Negotiate(t *testing.T) {
	c, err := Load("sl")
	require.NoError(t, err)

	tests := map[string]string{
		"":                        "sl",
		"en-US,en;q=0.9":          "en",
		"sl-SI":                   "sl",
		"de-DE,de;q=0.8":          "sl",
		"de;q=0.9, en;q=0.5":      "en",
		"this is not a language!": "sl",
	}
	for header, want := range tests {
		assert.Equal(t, want, c.Negotiate(header), "Accept-Language %q", header)
	}
}

func TestCatalog_Fallbacks(t *testing.T) {
	c, err := Parse([]byte(`
sl:
  messages:
    fuel_type_required: Gorivo je obvezno polje.
en:
  fields:
    fuelType: Fuel
`), "sl")
	require.NoError(t, err)

	assert.Equal(t, "Gorivo je obvezno polje.", c.Message("en", taxcalc.KindFuelTypeRequired))
	assert.Equal(t, "vehicle value required", c.Message("en", taxcalc.KindVehicleValueRequired))
	assert.Equal(t, "Fuel", c.FieldLabel("en", "fuelType"))
	assert.Equal(t, "vehicleValue", c.FieldLabel("en", "vehicleValue"))
}

func TestCatalog_Localize(t *testing.T) {
	c, err := Load("sl")
	require.NoError(t, err)

	vs := taxcalc.Validate(taxcalc.Record{
		FuelType:              taxcalc.FuelTypeDiesel,
		EuroExhaustStandard:   taxcalc.Euro5,
		EngineDisplacementCcm: 1600,
	})

	got := c.Localize("sl", vs)

	require.Len(t, got, 2)
	assert.Equal(t, LocalizedViolation{
		Field:      "vehicleType",
		FieldLabel: "Vozilo",
		Kind:       taxcalc.KindVehicleTypeRequired,
		Message:    "Vozilo je obvezno polje.",
	}, got[0])
	assert.Equal(t, "vehicleValue", got[1].Field)
	assert.Equal(t, "Vrednost vozila je obvezno polje.", got[1].Message)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("sl: [unclosed"), "sl")
	assert.Error(t, err)
}
