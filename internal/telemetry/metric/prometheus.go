// Package metric provides Prometheus metrics for SessGate.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sessgate"

// Metrics holds all application metrics.
type Metrics struct {
	registry *prometheus.Registry

	// Session lifecycle
	SessionsCreated prometheus.Counter
	SessionsRenewed prometheus.Counter
	SessionsRevoked prometheus.Counter
	SessionsExpired prometheus.Counter

	// Authorization outcomes, labeled by reason
	// (unauthenticated, forbidden, bad_credentials).
	AuthFailures *prometheus.CounterVec

	// HTTP surface
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates the metrics registry with all application metrics and
// the standard Go runtime collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,

		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "created_total",
			Help:      "Total sessions created via login",
		}),
		SessionsRenewed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "renewed_total",
			Help:      "Total successful session renewals",
		}),
		SessionsRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "revoked_total",
			Help:      "Total sessions removed via logout",
		}),
		SessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "expired_total",
			Help:      "Total expired sessions evicted from the table",
		}),

		AuthFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "failures_total",
			Help:      "Authorization failures by reason",
		}, []string{"reason"}),

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		m.SessionsCreated,
		m.SessionsRenewed,
		m.SessionsRevoked,
		m.SessionsExpired,
		m.AuthFailures,
		m.RequestsTotal,
		m.RequestDuration,
	)

	return m
}

// Registry exposes the underlying registry so other components (the
// storage engine, gauges over live state) can register their own
// collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterSessionGauge registers a gauge reporting the current session
// table size via fn.
func (m *Metrics) RegisterSessionGauge(fn func() float64) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "sessions",
		Name:      "active",
		Help:      "Current session table size, including not yet evicted dead entries",
	}, fn))
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
