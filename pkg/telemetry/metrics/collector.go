package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arundhati-c/datatapevalidation/pkg/config"
)

// Collector orchestrates all Prometheus metrics for datatape. It
// manages metric registration and provides a unified interface for
// recording metrics across components.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	// Validation metrics
	validationMetrics *ValidationMetrics

	// Catalog metrics
	catalogMetrics *CatalogMetrics
}

// NewCollector creates a metrics collector with the specified
// configuration and registry. If registry is nil a fresh registry is
// created.
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "datatape"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "validation"
	}

	return &Collector{
		config:            cfg,
		registry:          registry,
		validationMetrics: NewValidationMetrics(cfg, registry),
		catalogMetrics:    NewCatalogMetrics(cfg, registry),
	}
}

// Validation returns the validation metric set.
func (c *Collector) Validation() *ValidationMetrics {
	return c.validationMetrics
}

// Catalog returns the catalog metric set.
func (c *Collector) Catalog() *CatalogMetrics {
	return c.catalogMetrics
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler serving the registry, for watch
// mode's /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
