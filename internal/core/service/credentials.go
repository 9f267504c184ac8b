// Package service provides domain services for SessGate.
//
// CredentialService handles registration and password verification.
package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/yndnr/sessgate-go/internal/core/domain"
)

// maxPasswordLength is the bcrypt input limit in bytes.
const maxPasswordLength = 72

// UserRepository defines the storage interface for user accounts.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserExists if the username
	// is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by login name.
	// Returns ErrUserNotFound if absent.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Count returns the number of stored users.
	Count(ctx context.Context) (int, error)
}

// CredentialService handles registration and password verification.
//
// Password hashing is delegated to bcrypt; plaintext passwords are
// never stored or logged.
type CredentialService struct {
	users  UserRepository
	cost   int
	logger *slog.Logger
}

// CredentialOption configures the CredentialService.
type CredentialOption func(*CredentialService)

// WithBcryptCost sets the bcrypt cost factor.
func WithBcryptCost(cost int) CredentialOption {
	return func(s *CredentialService) {
		s.cost = cost
	}
}

// NewCredentialService creates a new CredentialService.
func NewCredentialService(users UserRepository, logger *slog.Logger, opts ...CredentialOption) *CredentialService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &CredentialService{
		users:  users,
		cost:   bcrypt.DefaultCost,
		logger: logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register creates a new user account.
//
// Only an explicit ADMIN role yields an admin; everything else is a
// plain user.
func (s *CredentialService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingArgument.WithDetails("username and password are required")
	}
	if len(password) > maxPasswordLength {
		return nil, domain.ErrInvalidArgument.WithDetails("password exceeds 72 bytes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}

	user, err := domain.NewUser(username, domain.ParseRole(role))
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// VerifyCredentials checks a username/password pair and returns the
// principal on success.
//
// Unknown users, inactive users, and wrong passwords all fail with the
// same ErrInvalidCredentials so the response reveals nothing about
// which check failed.
func (s *CredentialService) VerifyCredentials(ctx context.Context, username, password string) (domain.Principal, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Principal{}, domain.ErrInvalidCredentials
		}
		return domain.Principal{}, domain.ErrStorageError.WithCause(err)
	}

	if !user.Active {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	return domain.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// SeedAdmin creates an initial admin account when the user store is
// empty. Reports whether a user was created.
func (s *CredentialService) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, domain.ErrStorageError.WithCause(err)
	}
	if count > 0 {
		return false, nil
	}

	if _, err := s.Register(ctx, username, password, string(domain.RoleAdmin)); err != nil {
		return false, err
	}

	s.logger.Warn("seeded initial admin user; change the password", "username", username)
	return true, nil
}
