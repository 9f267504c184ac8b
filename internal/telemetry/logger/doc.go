// Package logger provides structured logging for SessGate.
//
// This package wraps log/slog for structured JSON logging:
//
//   - logger.go: configuration, level handling, default logger
//   - context.go: context-aware logging with request IDs
//   - redact.go: sensitive data redaction
//
// Features:
//
//   - JSON and text output formats
//   - Runtime log level adjustment
//   - Automatic masking of session tokens and credential fields
//   - Context propagation for request tracing
package logger
