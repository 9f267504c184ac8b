// Package handler provides HTTP request handlers for SessGate.
package handler

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// RegisterResponse is the body of a successful registration.
type RegisterResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login. The token is
// returned here and never again.
type LoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expiresIn"`
}

// RenewResponse is the body of a successful renewal.
type RenewResponse struct {
	OK        bool  `json:"ok"`
	ExpiresIn int64 `json:"expiresIn"`
}

// MeResponse describes the session behind the presented token.
type MeResponse struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresAt string `json:"expiresAt"`
}

// TimeoutRequest is the body of PUT /api/admin/session-timeout.
type TimeoutRequest struct {
	TimeoutSeconds int64 `json:"timeoutSeconds"`
}

// TimeoutResponse reports the effective session timeout.
type TimeoutResponse struct {
	TimeoutSeconds int64 `json:"timeoutSeconds"`
}

// AuditEntry is one element of the audit listing.
type AuditEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

// AuditListResponse is the body of GET /api/admin/audits.
type AuditListResponse struct {
	Events []AuditEntry `json:"events"`
	Count  int          `json:"count"`
}
