// Package token provides session token generation and hashing utilities.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
)

// Prefix is prepended to every generated session token.
const Prefix = "sgtk_"

// DefaultLength is the default token entropy in bytes.
const DefaultLength = 32

// encodedLen is the Base64 RawURL length of DefaultLength random bytes.
const encodedLen = 43

// Generate generates a cryptographically secure random session token.
//
// The returned token is Prefix plus Base64 RawURL encoded random bytes,
// safe for transmission in an HTTP header.
func Generate() (string, error) {
	body, err := GenerateWithLength(DefaultLength)
	if err != nil {
		return "", err
	}
	return Prefix + body, nil
}

// GenerateWithLength generates a raw token body with the specified byte length.
func GenerateWithLength(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// GenerateBytes generates random bytes.
func GenerateBytes(length int) ([]byte, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return nil, err
	}
	return bytes, nil
}

// ValidFormat reports whether s is shaped like a generated token.
//
// It never errors on arbitrary input; malformed strings simply return
// false so callers can map them to an authentication failure.
func ValidFormat(s string) bool {
	if !strings.HasPrefix(s, Prefix) {
		return false
	}
	body := s[len(Prefix):]
	if len(body) != encodedLen {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(body)
	return err == nil
}
