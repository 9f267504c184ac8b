// Package config defines the server configuration structure.
package config

import (
	"errors"
	"os"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	return verifySession(&cfg.Session)
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}
	if cfg.HTTP.RateLimit < 0 {
		return errors.New("server.http.rate_limit cannot be negative")
	}
	if cfg.HTTP.RateLimit > 0 && cfg.HTTP.RateBurst < 1 {
		return errors.New("server.http.rate_burst must be at least 1 when rate limiting is enabled")
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	if cfg.DataDir == "" {
		return errors.New("storage.data_dir is required")
	}

	// Check if data directory exists or can be created
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return errors.New("cannot create data directory: " + err.Error())
	}

	return nil
}

func verifySession(cfg *SessionSection) error {
	if cfg.DefaultTimeoutSeconds <= 0 {
		return errors.New("session.default_timeout_seconds must be positive")
	}
	if cfg.ShardCount < 1 {
		return errors.New("session.shard_count must be at least 1")
	}
	// Seeding needs both halves or neither.
	if (cfg.SeedAdminUsername == "") != (cfg.SeedAdminPassword == "") {
		return errors.New("session.seed_admin_username and session.seed_admin_password must be set together")
	}
	return nil
}
