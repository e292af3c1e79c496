package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics provides observability for the calculation engine.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Completed calculations by case type
	Calculations *prometheus.CounterVec

	// Compliance verdicts by outcome ("valid" or "blocked")
	ComplianceOutcomes *prometheus.CounterVec

	// Registration records dropped during normalization
	SkippedPeriods prometheus.Counter

	// Calculations rejected for structural input errors
	InputErrors prometheus.Counter

	// Duration of a full calculation
	CalculationDuration prometheus.Histogram
}

// New creates the engine metrics and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "opentransfer_calculations_total",
			Help: "Completed calculations by case type",
		}, []string{"case_type"}), // case_type: "veteran", "first_departure", "subsequent"

		ComplianceOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "opentransfer_compliance_outcomes_total",
			Help: "Compliance verdicts by outcome",
		}, []string{"outcome"}),

		SkippedPeriods: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "opentransfer_skipped_periods_total",
			Help: "Registration records dropped during normalization",
		}),

		InputErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "opentransfer_input_errors_total",
			Help: "Calculations rejected for structural input errors",
		}),

		CalculationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "opentransfer_calculation_duration_seconds",
			Help:    "Duration of a full calculation",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),
	}

	reg.MustRegister(m.Calculations, m.ComplianceOutcomes, m.SkippedPeriods, m.InputErrors, m.CalculationDuration)
	return m
}

// ObserveCalculation records a completed calculation
func (m *Metrics) ObserveCalculation(caseType string, valid bool, skipped int, d time.Duration) {
	if m == nil {
		return
	}
	m.Calculations.WithLabelValues(caseType).Inc()
	outcome := "valid"
	if !valid {
		outcome = "blocked"
	}
	m.ComplianceOutcomes.WithLabelValues(outcome).Inc()
	m.SkippedPeriods.Add(float64(skipped))
	m.CalculationDuration.Observe(d.Seconds())
}

// IncrementInputError records a rejected calculation
func (m *Metrics) IncrementInputError() {
	if m != nil {
		m.InputErrors.Inc()
	}
}
