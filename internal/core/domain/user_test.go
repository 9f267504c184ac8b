// Package domain defines the core domain models for SessGate.
package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("alice", RoleAdmin)
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}

	if !strings.HasPrefix(u.ID, UserIDPrefix) {
		t.Errorf("ID = %q, want %q prefix", u.ID, UserIDPrefix)
	}
	if len(u.ID) != 31 {
		t.Errorf("ID length = %d, want 31", len(u.ID))
	}
	if u.ID != strings.ToLower(u.ID) {
		t.Errorf("ID not lowercase: %q", u.ID)
	}
	if !u.Active {
		t.Error("new user should be active")
	}
	if u.Role != RoleAdmin {
		t.Errorf("Role = %q", u.Role)
	}
}

func TestGenerateUserID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := GenerateUserID()
		if err != nil {
			t.Fatalf("GenerateUserID() error = %v", err)
		}
		if seen[id] {
			t.Errorf("duplicate user ID: %s", id)
		}
		seen[id] = true
	}
}

func TestUser_Validate(t *testing.T) {
	valid := func() *User {
		return &User{
			ID:           "sgus-00000000000000000000000000",
			Username:     "alice",
			PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
			Role:         RoleUser,
			Active:       true,
			CreatedAt:    time.Now().UnixMilli(),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*User)
		wantErr bool
	}{
		{"valid", func(u *User) {}, false},
		{"empty username", func(u *User) { u.Username = "" }, true},
		{"username too long", func(u *User) { u.Username = strings.Repeat("a", 81) }, true},
		{"username at limit", func(u *User) { u.Username = strings.Repeat("a", 80) }, false},
		{"missing hash", func(u *User) { u.PasswordHash = "" }, true},
		{"unknown role", func(u *User) { u.Role = "ROOT" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := valid()
			tt.mutate(u)
			err := u.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsDomainError(err, "SG-USER-4001") {
				t.Errorf("Validate() error code = %q, want SG-USER-4001", GetErrorCode(err))
			}
		})
	}
}

func TestNewAuditEvent(t *testing.T) {
	now := time.Now()
	e, err := NewAuditEvent("sgus-x", "alice", AuditLogin, now)
	if err != nil {
		t.Fatalf("NewAuditEvent() error = %v", err)
	}

	if !strings.HasPrefix(e.ID, AuditEventIDPrefix) {
		t.Errorf("ID = %q, want %q prefix", e.ID, AuditEventIDPrefix)
	}
	if e.Action != AuditLogin {
		t.Errorf("Action = %q", e.Action)
	}
	if e.Timestamp != now.UnixMilli() {
		t.Errorf("Timestamp = %d, want %d", e.Timestamp, now.UnixMilli())
	}
}

func TestNewAuditEvent_IDsOrdered(t *testing.T) {
	base := time.Now()
	first, err := NewAuditEvent("u", "n", AuditLogin, base)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewAuditEvent("u", "n", AuditLogout, base.Add(time.Second))
	if err != nil {
		t.Fatal(err)
	}

	if !(first.ID < second.ID) {
		t.Errorf("event IDs not ordered by time: %q >= %q", first.ID, second.ID)
	}
}
