// Package domain defines the core domain models for SessGate.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. This package contains:
//
//   - Session: opaque-token session with an absolute expiry instant
//   - Principal: the resolved identity behind a live token
//   - User: credential-bearing account with a role
//   - AuditEvent: login/logout audit record
//   - Errors: domain-specific error definitions
//
// All time comparisons take an explicit instant so that callers can
// inject a clock; nothing in this package reads the wall clock on its
// own except ID generation.
package domain
