package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"dmvcalc/internal/taxcalc"
)

// Outcome labels for processed records.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

// Metrics tracks processed calculation records and their rule violations.
type Metrics struct {
	RecordsProcessed *prometheus.CounterVec
	Violations       *prometheus.CounterVec
	TaxAmount        prometheus.Histogram
	RequestDuration  *prometheus.HistogramVec
}

// New registers all metrics with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordsProcessed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dmv_records_processed_total",
			Help: "Calculation records processed, by operation and outcome",
		}, []string{"operation", "outcome"}),
		Violations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dmv_violations_total",
			Help: "Rule violations reported, by kind",
		}, []string{"kind"}),
		TaxAmount: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dmv_total_tax_amount",
			Help:    "Total tax amount of persisted calculations",
			Buckets: []float64{100, 500, 1000, 2500, 5000, 10000, 25000, 50000},
		}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dmv_http_request_duration_seconds",
			Help:    "Duration of HTTP requests, by route and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "status"}),
	}
}

// ObserveResult records one processed record.
func (m *Metrics) ObserveResult(operation string, res taxcalc.Result) {
	outcome := OutcomeValid
	if !res.Valid() {
		outcome = OutcomeInvalid
	}
	m.RecordsProcessed.WithLabelValues(operation, outcome).Inc()
	for _, v := range res.Violations {
		m.Violations.WithLabelValues(string(v.Kind)).Inc()
	}
}

// ObserveSaved records the tax total of a persisted calculation.
func (m *Metrics) ObserveSaved(rec taxcalc.Record) {
	m.TaxAmount.Observe(rec.TotalTaxAmount.InexactFloat64())
}

// ObserveRequest records an HTTP request. Call with time.Now() taken at the
// start of the request.
func (m *Metrics) ObserveRequest(route, status string, start time.Time) {
	m.RequestDuration.WithLabelValues(route, status).Observe(time.Since(start).Seconds())
}
