package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arundhati-c/datatapevalidation/pkg/config"
	"github.com/arundhati-c/datatapevalidation/pkg/ev5/report"
)

// ValidationMetrics tracks metrics related to tape validation.
//
// Metrics:
//   - datatape_validation_runs_total: tape validations by outcome
//   - datatape_validation_duration_seconds: validation duration
//   - datatape_validation_checked_fields_total: checked field occurrences
//   - datatape_validation_findings_total: findings by kind
type ValidationMetrics struct {
	// Total validation runs by outcome ("valid", "invalid", "error")
	runsTotal *prometheus.CounterVec

	// Validation duration histogram
	runDuration prometheus.Histogram

	// Checked field occurrences
	checkedFieldsTotal prometheus.Counter

	// Findings by kind (FIELD, CODE)
	findingsTotal *prometheus.CounterVec
}

// NewValidationMetrics creates and registers validation metrics with
// the provided registry.
func NewValidationMetrics(cfg config.MetricsConfig, registry *prometheus.Registry) *ValidationMetrics {
	vm := &ValidationMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of tape validation runs",
			},
			[]string{"outcome"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "duration_seconds",
				Help:      "Duration of one tape validation in seconds",
				// Tapes are memory-resident; runs are fast (<1s typical)
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms to 16s
			},
		),

		checkedFieldsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "checked_fields_total",
				Help:      "Total number of checked field occurrences",
			},
		),

		findingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "findings_total",
				Help:      "Total number of validation findings",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(
		vm.runsTotal,
		vm.runDuration,
		vm.checkedFieldsTotal,
		vm.findingsTotal,
	)

	return vm
}

// RecordRun records the outcome of one tape validation.
func (vm *ValidationMetrics) RecordRun(result report.Result, duration time.Duration) {
	outcome := "valid"
	if result.Invalid() {
		outcome = "invalid"
	}
	vm.runsTotal.WithLabelValues(outcome).Inc()
	vm.runDuration.Observe(duration.Seconds())
	vm.checkedFieldsTotal.Add(float64(result.CheckedFields))

	for _, f := range result.Findings {
		vm.findingsTotal.WithLabelValues(string(f.Kind)).Inc()
	}
}

// RecordError records a validation run that failed before producing a
// result (unreadable file, oversized tape).
func (vm *ValidationMetrics) RecordError() {
	vm.runsTotal.WithLabelValues("error").Inc()
}
