// Package memory provides the in-memory session table for SessGate.
package memory

import (
	"time"

	"github.com/yndnr/sessgate-go/internal/core/domain"
	"github.com/yndnr/sessgate-go/pkg/cmap"
)

// SessionStore is the concurrent mapping from opaque token to session.
//
// The store owns the session table exclusively; callers only ever see
// clones, so a returned session can be read without synchronization.
// Operations on the same token are linearized by the underlying shard
// lock; operations on different tokens are independent.
type SessionStore struct {
	sessions *cmap.Map[string, *domain.Session]
	now      func() time.Time
	onEvict  func()
}

// Option configures the SessionStore.
type Option func(*SessionStore)

// WithClock sets the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *SessionStore) {
		s.now = now
	}
}

// WithEvictionHook registers a callback invoked once per expired entry
// removed by lazy eviction. The hook runs outside the shard lock and
// must be safe for concurrent calls.
func WithEvictionHook(fn func()) Option {
	return func(s *SessionStore) {
		s.onEvict = fn
	}
}

// WithShardCount sets the shard count of the backing map.
func WithShardCount(n int) Option {
	return func(s *SessionStore) {
		s.sessions = cmap.NewWithShards[string, *domain.Session](n)
	}
}

// New creates a new in-memory session store.
func New(opts ...Option) *SessionStore {
	s := &SessionStore{
		sessions: cmap.New[string, *domain.Session](),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Put inserts a freshly created session.
//
// Token collisions are treated as impossible (128-bit-class randomness),
// so Put overwrites unconditionally.
func (s *SessionStore) Put(session *domain.Session) {
	s.sessions.Set(session.Token, session.Clone())
}

// Get returns the live session for token, or false if the token is
// empty, unknown, or expired.
//
// An expired entry is removed as part of this call; a caller never
// observes a session that is "expired but present". The returned
// session is a clone.
func (s *SessionStore) Get(token string) (*domain.Session, bool) {
	if token == "" {
		return nil, false
	}

	var found *domain.Session
	evicted := false
	now := s.now()

	s.sessions.Compute(token, func(session *domain.Session, exists bool) (*domain.Session, bool) {
		if !exists {
			return nil, false
		}
		if session.ExpiredAt(now) {
			evicted = true
			return nil, false // evict
		}
		found = session.Clone()
		return session, true
	})

	if evicted {
		s.notifyEvict()
	}
	return found, found != nil
}

// Renew extends the session's expiry to now + ttl.
//
// Returns the renewed session, or false if the token was absent or
// already expired (the expired entry is evicted, same as Get). Identity
// fields are never touched.
func (s *SessionStore) Renew(token string, ttl time.Duration) (*domain.Session, bool) {
	if token == "" {
		return nil, false
	}

	var renewed *domain.Session
	evicted := false
	now := s.now()

	s.sessions.Compute(token, func(session *domain.Session, exists bool) (*domain.Session, bool) {
		if !exists {
			return nil, false
		}
		if session.ExpiredAt(now) {
			evicted = true
			return nil, false // evict
		}
		next := session.Clone()
		next.Renew(now, ttl)
		renewed = next.Clone()
		return next, true
	})

	if evicted {
		s.notifyEvict()
	}
	return renewed, renewed != nil
}

// Invalidate removes the token if present.
//
// Invalidating an unknown or already-removed token is a no-op, not an
// error. Returns the removed session (if it was still live) so the
// caller can notify the audit sink; the sink call happens outside any
// store lock.
func (s *SessionStore) Invalidate(token string) (*domain.Session, bool) {
	if token == "" {
		return nil, false
	}

	session, ok := s.sessions.Pop(token)
	if !ok {
		return nil, false
	}
	if session.ExpiredAt(s.now()) {
		// Removed, but it was already dead; nothing to report.
		s.notifyEvict()
		return nil, false
	}
	return session.Clone(), true
}

func (s *SessionStore) notifyEvict() {
	if s.onEvict != nil {
		s.onEvict()
	}
}

// Count returns the number of entries in the table, including expired
// entries that have not been touched since they died.
func (s *SessionStore) Count() int {
	return s.sessions.Count()
}
