// Package metric provides Prometheus metrics for SessGate.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: metrics registry and HTTP handler
//
// Metrics include:
//
//   - Session lifecycle counters (created, renewed, revoked, expired)
//   - Active session count gauge
//   - HTTP request counters and latency histograms
//   - Authorization failure counters
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
