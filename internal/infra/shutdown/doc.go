// Package shutdown provides graceful shutdown for SessGate.
//
// This package handles process termination signals:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Timeout-based forced shutdown
//   - Cleanup callback registration, run in reverse order
//
// The server registers its HTTP listener, the storage engine and the
// config watcher as hooks; Wait blocks main until they have drained.
package shutdown
