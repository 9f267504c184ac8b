// Package service provides domain services for SessGate.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/yndnr/sessgate-go/internal/core/domain"
	"github.com/yndnr/sessgate-go/pkg/token"
)

// SessionTable defines the storage interface for the session table.
//
// Implementations must be safe under arbitrary concurrent access and
// must perform the expired-entry check-and-evict atomically with
// respect to the calling operation.
type SessionTable interface {
	// Put inserts a freshly created session.
	Put(session *domain.Session)

	// Get returns the live session for token, evicting it first if it
	// has expired. Absent covers empty, unknown, and expired tokens.
	Get(tok string) (*domain.Session, bool)

	// Renew extends the session expiry to now + ttl, or reports false
	// if the session is absent.
	Renew(tok string, ttl time.Duration) (*domain.Session, bool)

	// Invalidate removes the token if present (idempotent). It reports
	// the removed session only when it was still live.
	Invalidate(tok string) (*domain.Session, bool)

	// Count returns the current table size.
	Count() int
}

// AuditSink receives login/logout notifications.
//
// The session core calls it after the store mutation has completed and
// never while holding a store lock, so a slow sink cannot stall
// session resolution. Sink failures are logged, never propagated.
type AuditSink interface {
	RecordLogin(ctx context.Context, userID, username string) error
	RecordLogout(ctx context.Context, userID, username string) error
}

// SessionService handles session lifecycle operations.
type SessionService struct {
	table  SessionTable
	policy *TimeoutPolicy
	sink   AuditSink
	logger *slog.Logger
	now    func() time.Time
}

// SessionOption configures the SessionService.
type SessionOption func(*SessionService)

// WithSessionClock sets the time source.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionService) {
		s.now = now
	}
}

// NewSessionService creates a new SessionService.
func NewSessionService(table SessionTable, policy *TimeoutPolicy, sink AuditSink, logger *slog.Logger, opts ...SessionOption) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &SessionService{
		table:  table,
		policy: policy,
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateSessionResponse contains the result of session creation.
type CreateSessionResponse struct {
	Token     string          // The opaque token (only returned once)
	ExpiresIn int64           // Session lifetime in seconds
	Session   *domain.Session // The full session snapshot
}

// Create mints a token for an already-verified principal.
//
// The session lifetime is the timeout policy value read at this
// instant; later policy updates do not move the expiry of this session
// until it is renewed.
func (s *SessionService) Create(ctx context.Context, p domain.Principal) (*CreateSessionResponse, error) {
	if p.UserID == "" {
		return nil, domain.ErrMissingArgument.WithDetails("user id is required")
	}

	tok, err := token.Generate()
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}

	ttlSeconds := s.policy.Current()
	session := domain.NewSession(tok, p, s.now(), time.Duration(ttlSeconds)*time.Second)
	s.table.Put(session)

	// Audit after the mutation, outside any store lock.
	if err := s.sink.RecordLogin(ctx, p.UserID, p.Username); err != nil {
		s.logger.Error("audit login record failed", "user_id", p.UserID, "error", err)
	}

	// Log a digest, never the token itself.
	s.logger.Debug("session created",
		"user_id", p.UserID,
		"token_digest", token.Hash(tok)[:12],
		"expires_in", ttlSeconds,
	)

	return &CreateSessionResponse{
		Token:     tok,
		ExpiresIn: ttlSeconds,
		Session:   session.Clone(),
	}, nil
}

// Resolve returns the live session behind a token.
//
// Total over arbitrary input: empty, malformed, unknown, and expired
// tokens all resolve to ErrUnauthenticated.
func (s *SessionService) Resolve(_ context.Context, tok string) (*domain.Session, error) {
	session, ok := s.table.Get(tok)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return session, nil
}

// RenewSessionResponse contains the result of session renewal.
type RenewSessionResponse struct {
	ExpiresIn int64           // New lifetime in seconds
	Session   *domain.Session // The renewed session snapshot
}

// Renew extends the session behind the token by the timeout policy
// value read now.
//
// A dead token yields ErrUnauthenticated; the caller must treat that
// as "must re-authenticate", never as a silent success.
func (s *SessionService) Renew(_ context.Context, tok string) (*RenewSessionResponse, error) {
	ttlSeconds := s.policy.Current()

	session, ok := s.table.Renew(tok, time.Duration(ttlSeconds)*time.Second)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	return &RenewSessionResponse{
		ExpiresIn: ttlSeconds,
		Session:   session,
	}, nil
}

// Invalidate removes the session behind the token, reporting whether a
// live session was actually removed.
//
// Idempotent: unknown and already-removed tokens are a no-op. A logout
// audit event is recorded only for a live removal.
func (s *SessionService) Invalidate(ctx context.Context, tok string) bool {
	removed, ok := s.table.Invalidate(tok)
	if !ok {
		return false
	}

	if err := s.sink.RecordLogout(ctx, removed.UserID, removed.Username); err != nil {
		s.logger.Error("audit logout record failed", "user_id", removed.UserID, "error", err)
	}
	return true
}

// TableSize returns the current session table size, including dead
// entries not yet evicted.
func (s *SessionService) TableSize() int {
	return s.table.Count()
}
