// Package main provides the entry point for sessgate-server.
//
// sessgate-server is the SessGate service process: an HTTP API for
// user registration, token-based sessions with idle expiry, and
// administrative control over the session timeout policy.
//
// Configuration comes from a YAML file, overridden by SESSGATE_*
// environment variables, overridden by command-line flags. User
// accounts, audit events and the timeout policy persist in an
// embedded Badger database; live sessions are in-memory only and do
// not survive a restart.
package main
