// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for sessgate-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Storage StorageSection `koanf:"storage"`
	Session SessionSection `koanf:"session"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr string `koanf:"addr"`

	// ReadTimeout bounds request reading, WriteTimeout the full
	// response write.
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds the graceful drain on shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimit is the per-client request budget in requests/second
	// applied to authentication endpoints. Zero disables limiting.
	RateLimit float64 `koanf:"rate_limit"`

	// RateBurst is the burst allowance on top of RateLimit.
	RateBurst int `koanf:"rate_burst"`
}

// StorageSection configures durable storage.
type StorageSection struct {
	// DataDir is the directory holding the embedded database with
	// user accounts, audit events and the timeout policy row.
	DataDir string `koanf:"data_dir"`

	// GCInterval is the interval between value log GC runs.
	GCInterval string `koanf:"gc_interval"`
}

// SessionSection configures session behavior.
type SessionSection struct {
	// DefaultTimeoutSeconds is the session lifetime used when no
	// persisted policy row exists yet. Administrative updates at
	// runtime are persisted and override this on later startups.
	DefaultTimeoutSeconds int64 `koanf:"default_timeout_seconds"`

	// ShardCount is the session table shard count (power of two).
	ShardCount int `koanf:"shard_count"`

	// SeedAdminUsername and SeedAdminPassword, when both set, create
	// an initial admin account if the user store is empty.
	SeedAdminUsername string `koanf:"seed_admin_username"`
	SeedAdminPassword string `koanf:"seed_admin_password"`

	// BcryptCost is the password hashing cost factor.
	// Zero selects the library default.
	BcryptCost int `koanf:"bcrypt_cost"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
