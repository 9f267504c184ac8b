// Package handler provides HTTP request handlers for SessGate.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/yndnr/sessgate-go/internal/core/domain"
)

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "SG-SYS-4000", "invalid request body")
		return
	}

	user, err := h.credentials.Register(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
}

// Login handles POST /api/auth/login.
//
// Credential verification and session creation are separate steps; the
// token is minted only after the password check passed.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "SG-SYS-4000", "invalid request body")
		return
	}

	principal, err := h.credentials.VerifyCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.metrics.AuthFailures.WithLabelValues("bad_credentials").Inc()
		}
		h.handleServiceError(w, err)
		return
	}

	resp, err := h.sessions.Create(r.Context(), principal)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.metrics.SessionsCreated.Inc()

	h.writeJSON(w, http.StatusOK, LoginResponse{
		Token:     resp.Token,
		Username:  resp.Session.Username,
		Role:      string(resp.Session.Role),
		ExpiresIn: resp.ExpiresIn,
	})
}

// Logout handles POST /api/auth/logout.
//
// Always returns 204, whether or not the token named a live session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.sessions.Invalidate(r.Context(), sessionToken(r)) {
		h.metrics.SessionsRevoked.Inc()
	}
	w.WriteHeader(http.StatusNoContent)
}

// Renew handles POST /api/auth/renew.
func (h *Handler) Renew(w http.ResponseWriter, r *http.Request) {
	resp, err := h.sessions.Renew(r.Context(), sessionToken(r))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			h.metrics.AuthFailures.WithLabelValues("unauthenticated").Inc()
		}
		h.handleServiceError(w, err)
		return
	}
	h.metrics.SessionsRenewed.Inc()

	h.writeJSON(w, http.StatusOK, RenewResponse{
		OK:        true,
		ExpiresIn: resp.ExpiresIn,
	})
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Resolve(r.Context(), sessionToken(r))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			h.metrics.AuthFailures.WithLabelValues("unauthenticated").Inc()
		}
		h.handleServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, MeResponse{
		UserID:    session.UserID,
		Username:  session.Username,
		Role:      string(session.Role),
		ExpiresAt: session.ExpiresAtTime().UTC().Format(time.RFC3339),
	})
}
