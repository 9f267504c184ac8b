// Package httpserver provides the HTTP server for SessGate.
//
// This package implements the external API using stdlib net/http:
//
//   - Auth endpoints: /api/auth/register, /api/auth/login,
//     /api/auth/logout, /api/auth/renew, /api/auth/me
//   - Admin endpoints: /api/admin/session-timeout, /api/admin/audits
//   - Operational endpoints: /health, /ready, /metrics
//
// Features:
//
//   - Middleware chain: Recover, RequestID, AccessLog, RateLimit, Metrics
//   - Graceful shutdown with configurable timeout
//   - Prometheus metrics integration
//
// Session tokens travel in the X-SESSION-TOKEN request header; the
// handlers resolve them through the authorization gate.
package httpserver
