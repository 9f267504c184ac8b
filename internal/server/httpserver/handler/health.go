// Package handler provides HTTP request handlers for SessGate.
package handler

import (
	"net/http"
	"time"

	"github.com/yndnr/sessgate-go/internal/infra/buildinfo"
)

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": buildinfo.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /ready.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"sessions": "ok",
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
