// Package token provides session token generation and hashing utilities.
//
// This package implements cryptographically secure generation and
// validation of SessGate opaque session tokens.
//
// Token Format:
//
//   - Prefix: sgtk_ (5 characters)
//   - Body: 43 characters of Base64 RawURL encoded random bytes
//   - Total: 48 characters
//
// Security:
//
//   - Uses crypto/rand for CSPRNG (256 bits of entropy per token)
//   - SHA-256 hashing with constant-time comparison
//   - Token collisions are treated as impossible, not merely unlikely
package token
