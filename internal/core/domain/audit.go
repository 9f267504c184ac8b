// Package domain defines the core domain models for SessGate.
package domain

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// AuditEventIDPrefix is the prefix for audit event IDs.
const AuditEventIDPrefix = "sgae-"

// AuditAction distinguishes the recorded session events.
type AuditAction string

// Recorded actions.
const (
	AuditLogin  AuditAction = "LOGIN"
	AuditLogout AuditAction = "LOGOUT"
)

// AuditEvent is one login/logout record.
//
// The ULID-based ID makes events naturally ordered by creation time,
// which the storage layer relies on for listing.
type AuditEvent struct {
	// ID is the unique identifier for the event.
	// Format: sgae-{ulid_lowercase}, 31 characters total.
	ID string `json:"id"`

	// UserID identifies the acting user.
	UserID string `json:"user_id"`

	// Username is the acting user's login name.
	Username string `json:"username"`

	// Action is LOGIN or LOGOUT.
	Action AuditAction `json:"action"`

	// Timestamp is the event instant (Unix milliseconds).
	Timestamp int64 `json:"timestamp"`
}

// NewAuditEvent creates an audit event stamped with the given instant.
func NewAuditEvent(userID, username string, action AuditAction, now time.Time) (*AuditEvent, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		return nil, ErrInternalServer.WithCause(err)
	}

	return &AuditEvent{
		ID:        AuditEventIDPrefix + strings.ToLower(id.String()),
		UserID:    userID,
		Username:  username,
		Action:    action,
		Timestamp: now.UnixMilli(),
	}, nil
}

// TimestampTime returns Timestamp as time.Time.
func (e *AuditEvent) TimestampTime() time.Time {
	return time.UnixMilli(e.Timestamp)
}
