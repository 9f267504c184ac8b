// Package handler provides HTTP request handlers for SessGate.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yndnr/sessgate-go/internal/core/domain"
	"github.com/yndnr/sessgate-go/internal/core/service"
	"github.com/yndnr/sessgate-go/internal/telemetry/metric"
)

// TokenHeader is the request header carrying the session token.
const TokenHeader = "X-SESSION-TOKEN"

// AuditLog lists recorded audit events, newest first.
type AuditLog interface {
	List(ctx context.Context, limit int) ([]*domain.AuditEvent, error)
}

// Handler holds the services behind the HTTP API.
type Handler struct {
	gate        *service.Gate
	sessions    *service.SessionService
	credentials *service.CredentialService
	policy      *service.TimeoutPolicy
	audits      AuditLog
	metrics     *metric.Metrics
	logger      *slog.Logger
}

// New creates a Handler with the given services.
func New(gate *service.Gate, sessions *service.SessionService, credentials *service.CredentialService, policy *service.TimeoutPolicy, audits AuditLog, m *metric.Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		gate:        gate,
		sessions:    sessions,
		credentials: credentials,
		policy:      policy,
		audits:      audits,
		metrics:     m,
		logger:      logger,
	}
}

// sessionToken extracts the session token from the request header.
func sessionToken(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(TokenHeader))
}

// writeJSON writes a JSON response body.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response carrying the code in the body
// and in the X-Error-Code header.
func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Code: code, Message: message})
}

// handleServiceError converts service errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	if domain.IsDomainError(err, "") {
		code := domain.GetErrorCode(err)
		h.writeError(w, errorCodeToHTTPStatus(code), code, err.Error())
		return
	}

	h.logger.Error("internal error", "error", err)
	h.writeError(w, http.StatusInternalServerError, "SG-SYS-5000", "internal server error")
}

// errorCodeToHTTPStatus maps error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4010"), strings.HasSuffix(code, "-4011"):
		return http.StatusUnauthorized
	case strings.HasSuffix(code, "-4030"):
		return http.StatusForbidden
	case strings.HasSuffix(code, "-4040"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4090"):
		return http.StatusConflict
	case strings.HasSuffix(code, "-4290"):
		return http.StatusTooManyRequests
	case strings.HasSuffix(code, "-4000"), strings.HasSuffix(code, "-4001"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "SG-ARG-"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
