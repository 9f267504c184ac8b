// Package storage provides durable storage for SessGate.
//
// This file implements the single-row session timeout policy store.
package storage

import (
	"context"
	"errors"
	"strconv"

	"github.com/yndnr/sessgate-go/internal/core/domain"
)

// policyKey is the single row holding the session timeout in seconds,
// stored as a decimal string.
const policyKey = "config:session_timeout"

// PolicyStore persists the mutable session timeout.
type PolicyStore struct {
	engine KVEngine
}

// NewPolicyStore creates a policy repository over the given engine.
func NewPolicyStore(engine KVEngine) *PolicyStore {
	return &PolicyStore{engine: engine}
}

// LoadTimeoutSeconds returns the stored value and whether a row
// exists. Absence of a row is not an error.
func (s *PolicyStore) LoadTimeoutSeconds(ctx context.Context) (int64, bool, error) {
	data, err := s.engine.Get(ctx, []byte(policyKey))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return 0, false, nil
		}
		return 0, false, domain.ErrStorageError.WithCause(err)
	}

	seconds, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, false, domain.ErrStorageError.WithDetails("corrupt timeout row").WithCause(err)
	}

	return seconds, true, nil
}

// SaveTimeoutSeconds overwrites the stored value.
func (s *PolicyStore) SaveTimeoutSeconds(ctx context.Context, seconds int64) error {
	value := strconv.FormatInt(seconds, 10)
	if err := s.engine.Set(ctx, []byte(policyKey), []byte(value)); err != nil {
		return domain.ErrStorageError.WithCause(err)
	}
	return nil
}
