// Package service provides domain services for SessGate.
package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/yndnr/sessgate-go/internal/core/domain"
)

// Timeout policy bounds.
const (
	// MinTimeoutSeconds is the floor enforced on every write.
	MinTimeoutSeconds = 10

	// DefaultTimeoutSeconds is the built-in startup default, used when
	// neither configuration nor a persisted row provides a value.
	DefaultTimeoutSeconds = 600
)

// PolicyRepository persists the single timeout row.
type PolicyRepository interface {
	// LoadTimeoutSeconds returns the stored value and whether a row
	// exists. Absence of a row is not an error.
	LoadTimeoutSeconds(ctx context.Context) (int64, bool, error)

	// SaveTimeoutSeconds overwrites the stored value.
	SaveTimeoutSeconds(ctx context.Context, seconds int64) error
}

// TimeoutPolicy is the process-wide default session lifetime.
//
// The live value sits behind an atomic so readers always observe the
// last fully written value; writers persist first, then publish, so a
// crash between the two steps at worst loses the newest write. The
// only writer is the administrative update path.
type TimeoutPolicy struct {
	repo    PolicyRepository
	current atomic.Int64
}

// NewTimeoutPolicy creates the policy, resuming the persisted value if
// one exists and falling back to startupDefault otherwise.
//
// The floor applies to writes only; a configured startup default below
// the floor is taken at face value.
func NewTimeoutPolicy(ctx context.Context, repo PolicyRepository, startupDefault int64) (*TimeoutPolicy, error) {
	if startupDefault <= 0 {
		startupDefault = DefaultTimeoutSeconds
	}

	p := &TimeoutPolicy{repo: repo}

	stored, found, err := repo.LoadTimeoutSeconds(ctx)
	if err != nil {
		return nil, domain.ErrStorageError.WithCause(err)
	}
	if found {
		p.current.Store(stored)
	} else {
		p.current.Store(startupDefault)
	}

	return p, nil
}

// Current returns the live default lifetime in seconds.
func (p *TimeoutPolicy) Current() int64 {
	return p.current.Load()
}

// TTL returns the live default lifetime as a duration.
func (p *TimeoutPolicy) TTL() time.Duration {
	return time.Duration(p.current.Load()) * time.Second
}

// Update clamps seconds to the floor, persists it, publishes it as the
// new live default, and returns the clamped value.
//
// Sessions already open keep their original expiry; only future create
// and renew operations observe the new value.
func (p *TimeoutPolicy) Update(ctx context.Context, seconds int64) (int64, error) {
	if seconds < MinTimeoutSeconds {
		seconds = MinTimeoutSeconds
	}

	if err := p.repo.SaveTimeoutSeconds(ctx, seconds); err != nil {
		return 0, domain.ErrStorageError.WithCause(err)
	}

	p.current.Store(seconds)
	return seconds, nil
}
