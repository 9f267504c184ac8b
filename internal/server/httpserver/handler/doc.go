// Package handler provides HTTP request handlers for SessGate.
//
// This package implements the HTTP API endpoints for registration,
// login, session lifecycle, and administrative operations. Responses
// are plain JSON objects; errors carry a machine-readable code both in
// the body and in the X-Error-Code header.
//
// Session tokens travel in the X-SESSION-TOKEN request header.
package handler
