// Package domain defines the core domain models for SessGate.
package domain

import (
	"strings"
	"time"
)

// Role identifies the authorization level of a principal.
type Role string

// Known roles.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps a free-form role string to a known Role.
// Anything that is not ADMIN (case-insensitive) is a plain user.
func ParseRole(s string) Role {
	if strings.EqualFold(s, string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

// Principal is the resolved identity behind a live session token.
type Principal struct {
	// UserID identifies the user who owns the session.
	UserID string `json:"user_id"`

	// Username is the login name at session creation time.
	Username string `json:"username"`

	// Role is the authorization role snapshotted at login.
	Role Role `json:"role"`
}

// Session represents one live login keyed by its opaque token.
//
// The principal fields are an immutable snapshot taken at login; role
// changes elsewhere never retroactively affect an open session. Only
// ExpiresAt is mutable, and only through Renew.
type Session struct {
	// Token is the opaque unique identifier, generated at creation,
	// never reused, never mutated.
	Token string `json:"token"`

	// UserID identifies the user who owns this session.
	UserID string `json:"user_id"`

	// Username is the login name snapshot.
	Username string `json:"username"`

	// Role is the authorization role snapshot.
	Role Role `json:"role"`

	// CreatedAt is the session creation timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`

	// ExpiresAt is the absolute expiration timestamp (Unix milliseconds).
	// Set at creation, overwritten by renewal.
	ExpiresAt int64 `json:"expires_at"`
}

// NewSession creates a session for the given principal expiring ttl
// after now.
func NewSession(token string, p Principal, now time.Time, ttl time.Duration) *Session {
	return &Session{
		Token:     token,
		UserID:    p.UserID,
		Username:  p.Username,
		Role:      p.Role,
		CreatedAt: now.UnixMilli(),
		ExpiresAt: now.Add(ttl).UnixMilli(),
	}
}

// ExpiredAt reports whether the session is dead at the given instant.
// The boundary is inclusive: a session is expired at exactly ExpiresAt.
func (s *Session) ExpiredAt(now time.Time) bool {
	return now.UnixMilli() >= s.ExpiresAt
}

// Renew replaces the expiry with now + ttl. Identity fields are untouched.
func (s *Session) Renew(now time.Time, ttl time.Duration) {
	s.ExpiresAt = now.Add(ttl).UnixMilli()
}

// Principal returns the identity snapshot carried by the session.
func (s *Session) Principal() Principal {
	return Principal{
		UserID:   s.UserID,
		Username: s.Username,
		Role:     s.Role,
	}
}

// ExpiresAtTime returns ExpiresAt as time.Time.
func (s *Session) ExpiresAtTime() time.Time {
	return time.UnixMilli(s.ExpiresAt)
}

// CreatedAtTime returns CreatedAt as time.Time.
func (s *Session) CreatedAtTime() time.Time {
	return time.UnixMilli(s.CreatedAt)
}

// Clone creates a copy of the session.
func (s *Session) Clone() *Session {
	clone := *s
	return &clone
}
