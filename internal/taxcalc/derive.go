package taxcalc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RoundingMode selects how monetary derived fields are rounded.
type RoundingMode string

const (
	RoundHalfUp RoundingMode = "half_up"
	RoundBank   RoundingMode = "bank"
	RoundNone   RoundingMode = "none"
)

// ParseRoundingMode accepts the names above, case-insensitively.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch m := RoundingMode(strings.ToLower(strings.TrimSpace(s))); m {
	case RoundHalfUp, RoundBank, RoundNone:
		return m, nil
	case "":
		return RoundHalfUp, nil
	default:
		return "", fmt.Errorf("unknown rounding mode %q", s)
	}
}

// Rounding is the currency precision policy. Both tax amounts are rounded
// with it; the totals built from them stay on the same precision grid.
type Rounding struct {
	Places int32
	Mode   RoundingMode
}

// DefaultRounding rounds to cents, half away from zero.
var DefaultRounding = Rounding{Places: 2, Mode: RoundHalfUp}

func (p Rounding) apply(d decimal.Decimal) decimal.Decimal {
	switch p.Mode {
	case RoundNone:
		return d
	case RoundBank:
		return d.RoundBank(p.Places)
	default:
		return d.Round(p.Places)
	}
}

// Deriver computes the derived fields of a record.
type Deriver struct {
	Rounding Rounding
}

// NewDeriver returns a Deriver using the given rounding policy.
func NewDeriver(rounding Rounding) Deriver {
	return Deriver{Rounding: rounding}
}

// Derive returns r with every derived field recomputed from its inputs. It
// never fails: zero or negative inputs simply propagate. Only input fields
// are read, so Derive(Derive(r)) == Derive(r).
//
// Only the two tax amounts are rounded. Totals are plain sums of values
// already on the record, so both total invariants hold exactly.
func (d Deriver) Derive(r Record) Record {
	out := r
	out.BaseTaxAmount = d.Rounding.apply(percentOf(r.VehicleValue, r.BaseTaxRatePercent))
	out.AdditionalTaxAmount = d.Rounding.apply(percentOf(r.VehicleValue, r.AdditionalTaxRatePercent))
	out.TotalTaxAmount = out.BaseTaxAmount.Add(out.AdditionalTaxAmount)
	out.TotalVehicleValueWithTax = r.VehicleValue.Add(out.TotalTaxAmount)
	out.TotalTaxRatePercent = r.BaseTaxRatePercent.Add(r.AdditionalTaxRatePercent)
	return out
}

// Derive uses DefaultRounding.
func Derive(r Record) Record {
	return NewDeriver(DefaultRounding).Derive(r)
}

func percentOf(value, percent decimal.Decimal) decimal.Decimal {
	return value.Mul(percent).Div(hundred)
}
