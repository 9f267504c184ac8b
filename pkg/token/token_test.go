// Package token provides session token generation and hashing utilities.
package token

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tok, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !strings.HasPrefix(tok, Prefix) {
		t.Errorf("Generate() = %q, want %q prefix", tok, Prefix)
	}

	// Body should be base64 RawURL encoded DefaultLength bytes
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(tok, Prefix))
	if err != nil {
		t.Errorf("Generate() returned invalid base64 body: %v", err)
	}
	if len(decoded) != DefaultLength {
		t.Errorf("Generate() decoded length = %d, want %d", len(decoded), DefaultLength)
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	tokens := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if tokens[tok] {
			t.Errorf("Generate() produced duplicate token: %s", tok)
		}
		tokens[tok] = true
	}
}

func TestGenerateWithLength(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"16 bytes", 16},
		{"32 bytes", 32},
		{"64 bytes", 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := GenerateWithLength(tt.length)
			if err != nil {
				t.Fatalf("GenerateWithLength(%d) error = %v", tt.length, err)
			}

			decoded, err := base64.RawURLEncoding.DecodeString(body)
			if err != nil {
				t.Errorf("GenerateWithLength(%d) returned invalid base64: %v", tt.length, err)
			}
			if len(decoded) != tt.length {
				t.Errorf("GenerateWithLength(%d) decoded length = %d", tt.length, len(decoded))
			}
		})
	}
}

func TestValidFormat(t *testing.T) {
	valid, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"generated token", valid, true},
		{"empty string", "", false},
		{"missing prefix", strings.TrimPrefix(valid, Prefix), false},
		{"wrong prefix", "tmtk_" + strings.TrimPrefix(valid, Prefix), false},
		{"truncated body", valid[:len(valid)-5], false},
		{"invalid base64", Prefix + strings.Repeat("!", 43), false},
		{"garbage", "not-a-token-at-all", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidFormat(tt.input); got != tt.want {
				t.Errorf("ValidFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHashAndVerify(t *testing.T) {
	tok, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	hash := Hash(tok)
	if len(hash) != 64 {
		t.Errorf("Hash() length = %d, want 64 hex chars", len(hash))
	}

	if !Verify(tok, hash) {
		t.Error("Verify() = false for matching token")
	}
	if Verify(tok+"x", hash) {
		t.Error("Verify() = true for non-matching token")
	}
}

func TestHash_Deterministic(t *testing.T) {
	if Hash("sgtk_abc") != Hash("sgtk_abc") {
		t.Error("Hash() is not deterministic")
	}
	if Hash("sgtk_abc") == Hash("sgtk_abd") {
		t.Error("Hash() collides on different inputs")
	}
}
