package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"dmvcalc/internal/taxcalc"
)

func TestObserveResult(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveResult("preview", taxcalc.Process(taxcalc.Record{Listing: &taxcalc.ListingRef{ID: 1}}))
	m.ObserveResult("preview", taxcalc.Process(taxcalc.Record{
		VehicleType:           taxcalc.VehicleTypePassengerCar,
		FuelType:              taxcalc.FuelTypeDiesel,
		EuroExhaustStandard:   taxcalc.Euro6,
		EngineDisplacementCcm: 1998,
		VehicleValue:          decimal.NewFromInt(25000),
	}))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsProcessed.WithLabelValues("preview", OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsProcessed.WithLabelValues("preview", OutcomeValid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Violations.WithLabelValues(string(taxcalc.KindCO2Required))))
	assert.Equal(t, 6, testutil.CollectAndCount(m.Violations))
}

func TestObserveSavedAndRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSaved(taxcalc.Derive(taxcalc.Record{
		VehicleValue:       decimal.NewFromInt(10000),
		BaseTaxRatePercent: decimal.NewFromInt(5),
	}))
	m.ObserveRequest("/api/dmv-calculations", "201", time.Now())

	assert.Equal(t, 1, testutil.CollectAndCount(m.TaxAmount))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}
