package taxcalc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func TestDerive_Example(t *testing.T) {
	r := Derive(Record{
		VehicleValue:             dec("10000"),
		BaseTaxRatePercent:       dec("5"),
		AdditionalTaxRatePercent: dec("2"),
	})

	assertDecimal(t, "500", r.BaseTaxAmount)
	assertDecimal(t, "200", r.AdditionalTaxAmount)
	assertDecimal(t, "700", r.TotalTaxAmount)
	assertDecimal(t, "10700", r.TotalVehicleValueWithTax)
	assertDecimal(t, "7", r.TotalTaxRatePercent)
}

func TestDerive_Invariants(t *testing.T) {
	cases := []struct {
		value, base, additional string
	}{
		{"10000", "5", "2"},
		{"8999.99", "8.5", "0.75"},
		{"12345.67", "31", "3.333"},
		{"0", "5", "2"},
		{"-2500", "5", "1"},
		{"1500.5", "0", "0"},
		{"0.01", "99.999", "0.001"},
		{"99999999999.99", "28", "3"},
		{"1000.005", "5", "0"},
		{"1234.5678", "3.125", "1.0625"},
	}
	for _, tc := range cases {
		r := Derive(Record{
			VehicleValue:             dec(tc.value),
			BaseTaxRatePercent:       dec(tc.base),
			AdditionalTaxRatePercent: dec(tc.additional),
		})

		assert.True(t, r.TotalVehicleValueWithTax.Equal(r.VehicleValue.Add(r.TotalTaxAmount)), "value=%s", tc.value)
		assert.True(t, r.TotalTaxRatePercent.Equal(r.BaseTaxRatePercent.Add(r.AdditionalTaxRatePercent)), "value=%s", tc.value)
		assert.True(t, r.TotalTaxAmount.Equal(r.BaseTaxAmount.Add(r.AdditionalTaxAmount)), "value=%s", tc.value)
	}
}

func TestDerive_KeepsUnroundedVehicleValue(t *testing.T) {
	r := Derive(Record{
		VehicleValue:       dec("1000.005"),
		BaseTaxRatePercent: dec("5"),
	})

	assertDecimal(t, "50.00", r.TotalTaxAmount)
	assertDecimal(t, "1050.005", r.TotalVehicleValueWithTax)
}

func TestDerive_Idempotent(t *testing.T) {
	once := Derive(Record{
		VehicleValue:             dec("18990.49"),
		BaseTaxRatePercent:       dec("12.5"),
		AdditionalTaxRatePercent: dec("4"),
	})
	twice := Derive(once)

	assert.Equal(t, once, twice)
}

func TestDerive_OverwritesStaleDerivedFields(t *testing.T) {
	r := Derive(Record{
		VehicleValue:             dec("1000"),
		BaseTaxRatePercent:       dec("10"),
		BaseTaxAmount:            dec("999"),
		TotalVehicleValueWithTax: dec("1"),
		TotalTaxRatePercent:      dec("50"),
	})

	assertDecimal(t, "100", r.BaseTaxAmount)
	assertDecimal(t, "1100", r.TotalVehicleValueWithTax)
	assertDecimal(t, "10", r.TotalTaxRatePercent)
}

func TestDerive_ZeroRecord(t *testing.T) {
	r := Derive(Record{})

	assert.True(t, r.TotalTaxAmount.IsZero())
	assert.True(t, r.TotalVehicleValueWithTax.IsZero())
	assert.True(t, r.TotalTaxRatePercent.IsZero())
}

func TestDeriver_RoundingModes(t *testing.T) {
	in := Record{
		VehicleValue:             dec("1000.50"),
		BaseTaxRatePercent:       dec("0.5"),
		AdditionalTaxRatePercent: dec("0.25"),
	}

	halfUp := NewDeriver(Rounding{Places: 2, Mode: RoundHalfUp}).Derive(in)
	assertDecimal(t, "5.00", halfUp.BaseTaxAmount) // 5.0025
	assertDecimal(t, "2.50", halfUp.AdditionalTaxAmount)

	bank := NewDeriver(Rounding{Places: 1, Mode: RoundBank}).Derive(Record{
		VehicleValue:       dec("5"),
		BaseTaxRatePercent: dec("5"),
	})
	assertDecimal(t, "0.2", bank.BaseTaxAmount) // 0.25 to even

	none := NewDeriver(Rounding{Mode: RoundNone}).Derive(in)
	assertDecimal(t, "5.0025", none.BaseTaxAmount)
	assertDecimal(t, "2.50125", none.AdditionalTaxAmount)
	assertDecimal(t, "7.50375", none.TotalTaxAmount)
	assertDecimal(t, "1008.00375", none.TotalVehicleValueWithTax)
}

func TestDeriver_WholeValueTotalsStayWhole(t *testing.T) {
	r := NewDeriver(Rounding{Places: 0, Mode: RoundHalfUp}).Derive(Record{
		VehicleValue:             dec("333"),
		BaseTaxRatePercent:       dec("3.3"),
		AdditionalTaxRatePercent: dec("1.1"),
	})

	for _, d := range []decimal.Decimal{r.BaseTaxAmount, r.AdditionalTaxAmount, r.TotalTaxAmount, r.TotalVehicleValueWithTax} {
		assert.True(t, d.Equal(d.Round(0)), "%s not rounded to whole units", d)
	}
}

func TestParseRoundingMode(t *testing.T) {
	for in, want := range map[string]RoundingMode{"": RoundHalfUp, "HALF_UP": RoundHalfUp, " bank ": RoundBank, "none": RoundNone} {
		got, err := ParseRoundingMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseRoundingMode("ceil")
	assert.Error(t, err)
}
