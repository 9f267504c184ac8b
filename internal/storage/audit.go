// Package storage provides durable storage for SessGate.
//
// This file implements the login/logout audit trail.
package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yndnr/sessgate-go/internal/core/domain"
)

// auditKeyPrefix namespaces audit records inside the shared KV engine.
// Records are keyed by event ID; ULIDs sort chronologically, so a
// prefix scan yields events oldest first.
const auditKeyPrefix = "audit:"

// DefaultAuditListLimit bounds a listing when the caller asks for
// everything.
const DefaultAuditListLimit = 1000

// AuditStore persists login/logout events in the KV engine.
type AuditStore struct {
	engine KVEngine
	now    func() time.Time
}

// AuditOption configures the AuditStore.
type AuditOption func(*AuditStore)

// WithAuditClock sets the time source.
func WithAuditClock(now func() time.Time) AuditOption {
	return func(s *AuditStore) {
		s.now = now
	}
}

// NewAuditStore creates an audit repository over the given engine.
func NewAuditStore(engine KVEngine, opts ...AuditOption) *AuditStore {
	s := &AuditStore{
		engine: engine,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func auditKey(eventID string) []byte {
	return []byte(auditKeyPrefix + eventID)
}

// RecordLogin appends a LOGIN event.
func (s *AuditStore) RecordLogin(ctx context.Context, userID, username string) error {
	return s.record(ctx, userID, username, domain.AuditLogin)
}

// RecordLogout appends a LOGOUT event.
func (s *AuditStore) RecordLogout(ctx context.Context, userID, username string) error {
	return s.record(ctx, userID, username, domain.AuditLogout)
}

func (s *AuditStore) record(ctx context.Context, userID, username string, action domain.AuditAction) error {
	event, err := domain.NewAuditEvent(userID, username, action, s.now())
	if err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return domain.ErrInternalServer.WithCause(err)
	}

	if err := s.engine.Set(ctx, auditKey(event.ID), data); err != nil {
		return domain.ErrStorageError.WithCause(err)
	}

	return nil
}

// List returns the most recent events, newest first.
//
// limit <= 0 applies DefaultAuditListLimit.
func (s *AuditStore) List(ctx context.Context, limit int) ([]*domain.AuditEvent, error) {
	if limit <= 0 {
		limit = DefaultAuditListLimit
	}

	var events []*domain.AuditEvent
	err := s.engine.Scan(ctx, []byte(auditKeyPrefix), func(_, value []byte) bool {
		var event domain.AuditEvent
		if json.Unmarshal(value, &event) == nil {
			events = append(events, &event)
		}
		return true
	})
	if err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}

	// The scan is oldest first; flip and cap to the newest entries.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	if len(events) > limit {
		events = events[:limit]
	}

	return events, nil
}
