package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Server struct {
		HTTP struct {
			Address string `koanf:"address"`
			Enabled bool   `koanf:"enabled"`
		} `koanf:"http"`
	} `koanf:"server"`
	Session struct {
		DefaultTimeoutSeconds int64 `koanf:"default_timeout_seconds"`
	} `koanf:"session"`
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(
		WithEnvPrefix("TEST_"),
		WithConfigFile("/path/to/config.yaml"),
	)

	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want TEST_", l.envPrefix)
	}
	if l.filePath != "/path/to/config.yaml" {
		t.Errorf("filePath = %q", l.filePath)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  http:
    address: "0.0.0.0:8080"
    enabled: true
session:
  default_timeout_seconds: 1800
`)

	l := NewLoader(WithConfigFile(path))
	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.HTTP.Address != "0.0.0.0:8080" {
		t.Errorf("address = %q", cfg.Server.HTTP.Address)
	}
	if !cfg.Server.HTTP.Enabled {
		t.Error("enabled = false, want true")
	}
	if cfg.Session.DefaultTimeoutSeconds != 1800 {
		t.Errorf("timeout = %d, want 1800", cfg.Session.DefaultTimeoutSeconds)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() = false after Load")
	}
}

func TestLoader_LoadFile_Missing(t *testing.T) {
	l := NewLoader(WithConfigFile(filepath.Join(t.TempDir(), "absent.yaml")))
	var cfg testConfig
	if err := l.Load(&cfg); err == nil {
		t.Error("Load with missing file should fail")
	}
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  http:
    address: "127.0.0.1:8080"
`)

	t.Setenv("SESSGATE_SERVER_HTTP_ADDRESS", "0.0.0.0:9090")

	l := NewLoader(WithConfigFile(path))
	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.HTTP.Address != "0.0.0.0:9090" {
		t.Errorf("address = %q, env should win over file", cfg.Server.HTTP.Address)
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{
		"server.http.address": "flagged:1234",
	}); err != nil {
		t.Fatalf("LoadMap: %v", err)
	}

	if got := l.GetString("server.http.address"); got != "flagged:1234" {
		t.Errorf("GetString = %q", got)
	}
}

func TestLoader_Getters(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{
		"a.string": "x",
		"a.int":    42,
		"a.bool":   true,
	}); err != nil {
		t.Fatalf("LoadMap: %v", err)
	}

	if l.GetString("a.string") != "x" {
		t.Error("GetString failed")
	}
	if l.GetInt("a.int") != 42 {
		t.Error("GetInt failed")
	}
	if !l.GetBool("a.bool") {
		t.Error("GetBool failed")
	}
	if l.Get("nope") != nil {
		t.Error("Get for absent key should be nil")
	}
	if len(l.All()) != 3 {
		t.Errorf("All() returned %d keys, want 3", len(l.All()))
	}
}
