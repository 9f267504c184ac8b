// Package storage provides durable storage for SessGate.
//
// Sessions themselves are ephemeral and live in the in-memory table
// (see the memory subpackage); this package persists everything that
// must survive a restart:
//
//   - User accounts (credentials, roles)
//   - Login/logout audit events
//   - The single session-timeout policy row
//
// All three repositories share one embedded Badger database behind the
// KVEngine interface, partitioned by key prefix.
package storage
