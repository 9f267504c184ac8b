// Package domain defines the core domain models for SessGate.
package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	e := NewDomainError("SG-TEST-0001", "something failed")
	if got := e.Error(); got != "[SG-TEST-0001] something failed" {
		t.Errorf("Error() = %q", got)
	}

	withDetails := e.WithDetails("extra context")
	if got := withDetails.Error(); got != "[SG-TEST-0001] something failed: extra context" {
		t.Errorf("Error() with details = %q", got)
	}
}

func TestDomainError_Is(t *testing.T) {
	err := ErrUnauthenticated.WithDetails("token expired")

	if !errors.Is(err, ErrUnauthenticated) {
		t.Error("errors.Is should match by code")
	}
	if errors.Is(err, ErrForbidden) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := ErrStorageError.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestIsDomainError(t *testing.T) {
	if !IsDomainError(ErrForbidden, "SG-AUTH-4030") {
		t.Error("IsDomainError with matching code = false")
	}
	if IsDomainError(ErrForbidden, "SG-AUTH-4010") {
		t.Error("IsDomainError with wrong code = true")
	}
	if !IsDomainError(ErrForbidden, "") {
		t.Error("IsDomainError with empty code = false")
	}
	if IsDomainError(fmt.Errorf("plain"), "") {
		t.Error("IsDomainError on non-domain error = true")
	}

	// Works through wrapping
	wrapped := fmt.Errorf("handler: %w", ErrUnauthenticated)
	if !IsDomainError(wrapped, "SG-AUTH-4010") {
		t.Error("IsDomainError through fmt.Errorf wrap = false")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := GetErrorCode(ErrInvalidCredentials); got != "SG-AUTH-4011" {
		t.Errorf("GetErrorCode = %q", got)
	}
	if got := GetErrorCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetErrorCode on plain error = %q", got)
	}
}

func TestWithDetails_DoesNotMutate(t *testing.T) {
	base := ErrInvalidArgument
	derived := base.WithDetails("field x")

	if base.Details != "" {
		t.Error("WithDetails mutated the sentinel error")
	}
	if derived.Details != "field x" {
		t.Errorf("derived.Details = %q", derived.Details)
	}
}
