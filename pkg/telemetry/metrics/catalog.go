package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arundhati-c/datatapevalidation/pkg/config"
)

// CatalogMetrics tracks metrics related to valid code catalog fetches.
type CatalogMetrics struct {
	// Total fetches by outcome ("success", "error")
	fetchesTotal *prometheus.CounterVec

	// Fetch duration histogram
	fetchDuration prometheus.Histogram

	// Field types in the current index
	fieldTypes prometheus.Gauge
}

// NewCatalogMetrics creates and registers catalog metrics with the
// provided registry.
func NewCatalogMetrics(cfg config.MetricsConfig, registry *prometheus.Registry) *CatalogMetrics {
	cm := &CatalogMetrics{
		fetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "catalog",
				Name:      "fetches_total",
				Help:      "Total number of catalog fetches",
			},
			[]string{"outcome"},
		),

		fetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: "catalog",
				Name:      "fetch_duration_seconds",
				Help:      "Duration of catalog fetches in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
		),

		fieldTypes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: "catalog",
				Name:      "field_types",
				Help:      "Number of field types in the current code index",
			},
		),
	}

	registry.MustRegister(cm.fetchesTotal, cm.fetchDuration, cm.fieldTypes)

	return cm
}

// RecordFetch records one catalog fetch attempt.
func (cm *CatalogMetrics) RecordFetch(err error, duration time.Duration, fieldTypes int) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	cm.fetchesTotal.WithLabelValues(outcome).Inc()
	cm.fetchDuration.Observe(duration.Seconds())
	if err == nil {
		cm.fieldTypes.Set(float64(fieldTypes))
	}
}
