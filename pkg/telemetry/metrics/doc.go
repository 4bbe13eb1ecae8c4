// Package metrics collects Prometheus metrics for validation activity.
//
// The Collector owns a registry and per-concern metric structs:
// ValidationMetrics for tape runs and findings, CatalogMetrics for
// catalog fetches. Watch mode serves the registry over /metrics;
// one-shot CLI runs record metrics but never expose them, which is
// harmless.
package metrics
