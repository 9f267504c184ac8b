// Package service provides domain services for SessGate.
package service

import (
	"context"

	"github.com/yndnr/sessgate-go/internal/core/domain"
)

// Gate is the uniform authorization gate.
//
// Every protected operation in the system goes through one of its two
// shapes: any valid session, or a valid session with a specific role.
// Both are total over arbitrary string input and never panic; the
// outcome is always a principal, ErrUnauthenticated, or ErrForbidden.
type Gate struct {
	sessions *SessionService
}

// NewGate creates a Gate over the given session service.
func NewGate(sessions *SessionService) *Gate {
	return &Gate{sessions: sessions}
}

// RequireSession resolves the token to its principal.
//
// Missing, unknown, and expired tokens all fail with ErrUnauthenticated.
func (g *Gate) RequireSession(ctx context.Context, tok string) (domain.Principal, error) {
	session, err := g.sessions.Resolve(ctx, tok)
	if err != nil {
		return domain.Principal{}, err
	}
	return session.Principal(), nil
}

// RequireRole resolves the token and additionally requires role.
//
// A dead token is always ErrUnauthenticated, never ErrForbidden;
// ErrForbidden is reserved for a live session with the wrong role.
func (g *Gate) RequireRole(ctx context.Context, tok string, role domain.Role) (domain.Principal, error) {
	principal, err := g.RequireSession(ctx, tok)
	if err != nil {
		return domain.Principal{}, err
	}
	if principal.Role != role {
		return domain.Principal{}, domain.ErrForbidden
	}
	return principal, nil
}
