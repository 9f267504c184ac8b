// Package httpserver provides the HTTP server for SessGate.
package httpserver

import (
	"context"
	"net/http"
	"time"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// ServerOption configures the Server.
type ServerOption func(*http.Server)

// WithTimeouts sets read and write timeouts.
func WithTimeouts(read, write time.Duration) ServerOption {
	return func(s *http.Server) {
		s.ReadTimeout = read
		s.WriteTimeout = write
	}
}

// New creates a new HTTP server.
func New(addr string, handler http.Handler, opts ...ServerOption) *Server {
	hs := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	for _, opt := range opts {
		opt(hs)
	}

	return &Server{
		httpServer: hs,
		handler:    handler,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
