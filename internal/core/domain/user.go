// Package domain defines the core domain models for SessGate.
package domain

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// User constraints.
const (
	MaxUsernameLength = 80

	// UserIDPrefix is the prefix for user IDs.
	UserIDPrefix = "sgus-"
)

// User is a credential-bearing account.
type User struct {
	// ID is the unique identifier for the user.
	// Format: sgus-{ulid_lowercase}, 31 characters total.
	ID string `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the password.
	// Never serialized to API responses.
	PasswordHash string `json:"-"`

	// Role is the authorization role.
	Role Role `json:"role"`

	// Active indicates whether the user may log in.
	Active bool `json:"active"`

	// CreatedAt is the account creation timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`
}

// NewUser creates a user with a generated ID, active by default.
func NewUser(username string, role Role) (*User, error) {
	id, err := GenerateUserID()
	if err != nil {
		return nil, err
	}

	return &User{
		ID:        id,
		Username:  username,
		Role:      role,
		Active:    true,
		CreatedAt: time.Now().UnixMilli(),
	}, nil
}

// GenerateUserID generates a new user ID using ULID.
// Format: sgus-{ulid_lowercase}, 31 characters total.
func GenerateUserID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternalServer.WithCause(err)
	}
	return UserIDPrefix + strings.ToLower(id.String()), nil
}

// Validate validates the user fields against constraints.
func (u *User) Validate() error {
	var violations []string

	if u.Username == "" {
		violations = append(violations, "username is required")
	}
	if len(u.Username) > MaxUsernameLength {
		violations = append(violations, "username exceeds 80 characters")
	}
	if u.PasswordHash == "" {
		violations = append(violations, "password hash is required")
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		violations = append(violations, "role must be USER or ADMIN")
	}

	if len(violations) > 0 {
		return ErrUserValidation.WithDetails(strings.Join(violations, "; "))
	}

	return nil
}

// CreatedAtTime returns CreatedAt as time.Time.
func (u *User) CreatedAtTime() time.Time {
	return time.UnixMilli(u.CreatedAt)
}
