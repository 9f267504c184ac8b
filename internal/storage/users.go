// Package storage provides durable storage for SessGate.
//
// This file implements the user account repository.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/yndnr/sessgate-go/internal/core/domain"
)

// userKeyPrefix namespaces user records inside the shared KV engine.
// Records are keyed by username, which is the unique login handle.
const userKeyPrefix = "user:"

// UserStore persists user accounts in the KV engine.
type UserStore struct {
	engine KVEngine

	// Guards the read-check-write in Create. The engine serializes
	// individual operations but not the uniqueness check, and this
	// process is the only writer.
	mu sync.Mutex
}

// NewUserStore creates a user repository over the given engine.
func NewUserStore(engine KVEngine) *UserStore {
	return &UserStore{engine: engine}
}

func userKey(username string) []byte {
	return []byte(userKeyPrefix + username)
}

// Create stores a new user, refusing duplicate usernames.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.engine.Get(ctx, userKey(user.Username))
	switch {
	case err == nil:
		return domain.ErrUserExists.WithDetails("username " + user.Username)
	case !errors.Is(err, ErrKeyNotFound):
		return domain.ErrStorageError.WithCause(err)
	}

	data, err := json.Marshal(user)
	if err != nil {
		return domain.ErrInternalServer.WithCause(err)
	}

	if err := s.engine.Set(ctx, userKey(user.Username), data); err != nil {
		return domain.ErrStorageError.WithCause(err)
	}

	return nil
}

// GetByUsername retrieves a user by login name.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	data, err := s.engine.Get(ctx, userKey(username))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.ErrStorageError.WithCause(err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}

	return &user, nil
}

// Count returns the number of stored users.
func (s *UserStore) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.engine.Scan(ctx, []byte(userKeyPrefix), func(_, _ []byte) bool {
		count++
		return true
	})
	if err != nil {
		return 0, domain.ErrStorageError.WithCause(err)
	}
	return count, nil
}
