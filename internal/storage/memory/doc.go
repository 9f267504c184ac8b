// Package memory provides the in-memory session table for SessGate.
//
// It implements the token→session store on a sharded concurrent map.
// Expired entries are evicted lazily: there is no background sweeper,
// expiration is discovered on access, and the check-and-evict step is
// atomic with respect to the caller. Memory is therefore bounded only
// by the rate of lookups against dead tokens, an accepted tradeoff:
// dead tokens are only held by clients who eventually stop presenting
// them.
package memory
