// Package httpserver provides the HTTP server for SessGate.
package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yndnr/sessgate-go/internal/core/domain"
	"github.com/yndnr/sessgate-go/internal/core/service"
	"github.com/yndnr/sessgate-go/internal/storage/memory"
	"github.com/yndnr/sessgate-go/internal/telemetry/metric"
)

// stubUserRepo implements service.UserRepository in memory.
type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return domain.ErrUserExists
	}
	cp := *user
	r.users[user.Username] = &cp
	return nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

// stubAuditLog implements service.AuditSink and handler.AuditLog.
type stubAuditLog struct {
	mu     sync.Mutex
	events []*domain.AuditEvent
}

func (a *stubAuditLog) record(userID, username string, action domain.AuditAction) error {
	ev, err := domain.NewAuditEvent(userID, username, action, time.Now())
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
	return nil
}

func (a *stubAuditLog) RecordLogin(_ context.Context, userID, username string) error {
	return a.record(userID, username, domain.AuditLogin)
}

func (a *stubAuditLog) RecordLogout(_ context.Context, userID, username string) error {
	return a.record(userID, username, domain.AuditLogout)
}

func (a *stubAuditLog) List(_ context.Context, limit int) ([]*domain.AuditEvent, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*domain.AuditEvent, 0, limit)
	for i := len(a.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, a.events[i])
	}
	return out, nil
}

// stubPolicyRepo implements service.PolicyRepository.
type stubPolicyRepo struct {
	mu     sync.Mutex
	value  int64
	hasRow bool
}

func (r *stubPolicyRepo) LoadTimeoutSeconds(_ context.Context) (int64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value, r.hasRow, nil
}

func (r *stubPolicyRepo) SaveTimeoutSeconds(_ context.Context, seconds int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value, r.hasRow = seconds, true
	return nil
}

func newTestRouter(t *testing.T, credRate float64, credBurst int) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	audits := &stubAuditLog{}

	policy, err := service.NewTimeoutPolicy(context.Background(), &stubPolicyRepo{}, 0)
	if err != nil {
		t.Fatalf("NewTimeoutPolicy: %v", err)
	}

	sessions := service.NewSessionService(memory.New(), policy, audits, logger)
	credentials := service.NewCredentialService(&stubUserRepo{users: make(map[string]*domain.User)}, logger, service.WithBcryptCost(bcrypt.MinCost))

	return NewRouter(&RouterConfig{
		Gate:                service.NewGate(sessions),
		SessionService:      sessions,
		CredentialService:   credentials,
		TimeoutPolicy:       policy,
		AuditLog:            audits,
		Metrics:             metric.New(),
		Logger:              logger,
		CredentialRateLimit: credRate,
		CredentialRateBurst: credBurst,
	})
}

func routerRequest(t *testing.T, router http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.RemoteAddr = "10.1.2.3:40000"
	if token != "" {
		req.Header.Set("X-SESSION-TOKEN", token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_FullFlow(t *testing.T) {
	router := newTestRouter(t, 0, 0)

	rec := routerRequest(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"password": "s3cret-pass",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = routerRequest(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "s3cret-pass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&loginResp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}

	rec = routerRequest(t, router, http.MethodGet, "/api/auth/me", loginResp.Token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("me status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Request-ID"); got == "" {
		t.Error("expected X-Request-ID on routed response")
	}

	rec = routerRequest(t, router, http.MethodPost, "/api/auth/logout", loginResp.Token, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("logout status = %d, want 204", rec.Code)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, 0, 0)

	rec := routerRequest(t, router, http.MethodGet, "/api/auth/login", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET login status = %d, want 405", rec.Code)
	}

	rec = routerRequest(t, router, http.MethodPost, "/api/admin/audits", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST audits status = %d, want 405", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(t, 0, 0)

	rec := routerRequest(t, router, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "sessgate_") {
		t.Error("metrics output missing sessgate_ series")
	}
}

func TestRouter_CredentialRateLimit(t *testing.T) {
	router := newTestRouter(t, 1, 1)

	body := map[string]string{"username": "alice", "password": "wrong"}
	first := routerRequest(t, router, http.MethodPost, "/api/auth/login", "", body)
	second := routerRequest(t, router, http.MethodPost, "/api/auth/login", "", body)

	if first.Code == http.StatusTooManyRequests {
		t.Errorf("first request already limited: %d", first.Code)
	}
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", second.Code)
	}
	if got := second.Header().Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want 1", got)
	}

	// Non-credential endpoints stay unlimited.
	rec := routerRequest(t, router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}

func TestRouter_HealthEndpoints(t *testing.T) {
	router := newTestRouter(t, 0, 0)

	for _, path := range []string{"/health", "/ready"} {
		rec := routerRequest(t, router, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}
