// Package handler provides HTTP request handlers for SessGate.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/yndnr/sessgate-go/internal/core/domain"
)

// maxAuditListLimit caps the number of events one listing may return.
const maxAuditListLimit = 1000

// requireAdmin resolves the session token and checks for the ADMIN
// role. On failure it writes the error response and returns false.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, err := h.gate.RequireRole(r.Context(), sessionToken(r), domain.RoleAdmin); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			h.metrics.AuthFailures.WithLabelValues("forbidden").Inc()
		case errors.Is(err, domain.ErrUnauthenticated):
			h.metrics.AuthFailures.WithLabelValues("unauthenticated").Inc()
		}
		h.handleServiceError(w, err)
		return false
	}
	return true
}

// GetTimeout handles GET /api/admin/session-timeout.
func (h *Handler) GetTimeout(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	h.writeJSON(w, http.StatusOK, TimeoutResponse{TimeoutSeconds: h.policy.Current()})
}

// UpdateTimeout handles PUT /api/admin/session-timeout.
//
// The response reports the applied value, which may differ from the
// requested one when the floor clamped it.
func (h *Handler) UpdateTimeout(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req TimeoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "SG-SYS-4000", "invalid request body")
		return
	}

	applied, err := h.policy.Update(r.Context(), req.TimeoutSeconds)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("session timeout updated",
		"requested_seconds", req.TimeoutSeconds,
		"applied_seconds", applied,
	)
	h.writeJSON(w, http.StatusOK, TimeoutResponse{TimeoutSeconds: applied})
}

// ListAudits handles GET /api/admin/audits.
//
// Accepts an optional limit query parameter; events come back newest
// first.
func (h *Handler) ListAudits(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	limit := maxAuditListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.writeError(w, http.StatusBadRequest, "SG-ARG-1001", "limit must be a positive integer")
			return
		}
		if n < limit {
			limit = n
		}
	}

	events, err := h.audits.List(r.Context(), limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	entries := make([]AuditEntry, 0, len(events))
	for _, ev := range events {
		entries = append(entries, AuditEntry{
			ID:        ev.ID,
			UserID:    ev.UserID,
			Username:  ev.Username,
			Action:    string(ev.Action),
			Timestamp: time.UnixMilli(ev.Timestamp).UTC().Format(time.RFC3339),
		})
	}

	h.writeJSON(w, http.StatusOK, AuditListResponse{Events: entries, Count: len(entries)})
}
