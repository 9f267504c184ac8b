// Package httpserver provides the HTTP server for SessGate.
package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/yndnr/sessgate-go/internal/core/service"
	"github.com/yndnr/sessgate-go/internal/server/httpserver/handler"
	"github.com/yndnr/sessgate-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Gate enforces session and role checks on protected routes.
	Gate *service.Gate

	// SessionService handles session lifecycle operations.
	SessionService *service.SessionService

	// CredentialService handles registration and password checks.
	CredentialService *service.CredentialService

	// TimeoutPolicy is the mutable session timeout.
	TimeoutPolicy *service.TimeoutPolicy

	// AuditLog lists recorded audit events.
	AuditLog handler.AuditLog

	// Metrics collects request and session counters.
	Metrics *metric.Metrics

	// Logger for request logging.
	Logger *slog.Logger

	// CredentialRateLimit is the per-IP rate limit for login and
	// registration, in requests per second. Zero disables limiting.
	CredentialRateLimit float64

	// CredentialRateBurst is the burst size for CredentialRateLimit.
	CredentialRateBurst int
}

// NewRouter creates and configures the HTTP router with all routes
// and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	h := handler.New(cfg.Gate, cfg.SessionService, cfg.CredentialService, cfg.TimeoutPolicy, cfg.AuditLog, cfg.Metrics, cfg.Logger)

	// Shared middleware, outermost first.
	base := func(route string, hf http.HandlerFunc) http.Handler {
		return Chain(hf,
			Recover(cfg.Logger),
			RequestID(),
			AccessLog(cfg.Logger),
			Measure(cfg.Metrics, route),
		)
	}

	// Credential endpoints additionally get per-IP rate limiting so
	// password guessing cannot run at line speed.
	credential := func(route string, hf http.HandlerFunc) http.Handler {
		if cfg.CredentialRateLimit <= 0 {
			return base(route, hf)
		}
		return Chain(hf,
			Recover(cfg.Logger),
			RequestID(),
			AccessLog(cfg.Logger),
			RateLimit(cfg.CredentialRateLimit, cfg.CredentialRateBurst),
			Measure(cfg.Metrics, route),
		)
	}

	mux := http.NewServeMux()

	// Auth endpoints
	mux.Handle("POST /api/auth/register", credential("/api/auth/register", h.Register))
	mux.Handle("POST /api/auth/login", credential("/api/auth/login", h.Login))
	mux.Handle("POST /api/auth/logout", base("/api/auth/logout", h.Logout))
	mux.Handle("POST /api/auth/renew", base("/api/auth/renew", h.Renew))
	mux.Handle("GET /api/auth/me", base("/api/auth/me", h.Me))

	// Admin endpoints, role-checked inside the handlers
	mux.Handle("GET /api/admin/session-timeout", base("/api/admin/session-timeout", h.GetTimeout))
	mux.Handle("PUT /api/admin/session-timeout", base("/api/admin/session-timeout", h.UpdateTimeout))
	mux.Handle("GET /api/admin/audits", base("/api/admin/audits", h.ListAudits))

	// Operational endpoints
	mux.Handle("GET /health", Chain(http.HandlerFunc(h.Health), Recover(cfg.Logger), RequestID()))
	mux.Handle("GET /ready", Chain(http.HandlerFunc(h.Ready), Recover(cfg.Logger), RequestID()))
	mux.Handle("GET /metrics", cfg.Metrics.Handler())

	return mux
}
