// Package cmap provides a concurrent sharded map for SessGate.
//
// This package implements the map backing the session table:
//
//   - Sharding: configurable power-of-two shard count for parallelism
//   - Fine-grained locking: per-shard RWMutex for minimal contention
//   - Compute: arbitrary read-modify-delete steps under one shard lock,
//     which is what makes lazy check-and-evict atomic per caller
//
// Thread Safety:
//
// All operations are safe under arbitrary concurrent access. Operations
// on keys in different shards never contend; operations on the same key
// are linearized by the shard lock.
package cmap
