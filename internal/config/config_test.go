package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"
  jwt_issuer: "skillswap-staging"
  access_token_ttl: "30m"

exchange:
  max_active_per_user: 5
  default_deadline: "336h"

events:
  buffer_size: 128

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}

	// Auth
	if cfg.Auth.JWTIssuer != "skillswap-staging" {
		t.Errorf("auth.jwt_issuer = %q", cfg.Auth.JWTIssuer)
	}
	if cfg.Auth.AccessTokenTTL != 30*time.Minute {
		t.Errorf("auth.access_token_ttl = %v, want 30m", cfg.Auth.AccessTokenTTL)
	}

	// Exchange
	if cfg.Exchange.MaxActivePerUser != 5 {
		t.Errorf("exchange.max_active_per_user = %d, want 5", cfg.Exchange.MaxActivePerUser)
	}
	if cfg.Exchange.DefaultDeadline != 336*time.Hour {
		t.Errorf("exchange.default_deadline = %v, want 336h", cfg.Exchange.DefaultDeadline)
	}

	// Events
	if cfg.Events.BufferSize != 128 {
		t.Errorf("events.buffer_size = %d, want 128", cfg.Events.BufferSize)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	t.Setenv("CONFIG_PATH", "")
	// Set working dir to a temp dir with no config.yaml
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Auth.JWTIssuer != "skillswap" {
		t.Errorf("auth.jwt_issuer = %q, want skillswap (default)", cfg.Auth.JWTIssuer)
	}
	if cfg.Events.BufferSize != 64 {
		t.Errorf("events.buffer_size = %d, want 64 (default)", cfg.Events.BufferSize)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_JWTSecretTooShort(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short JWT secret")
	}
}

func TestValidate_JWTSecretEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty JWT secret")
	}
}

func TestValidate_AccessTokenTTLZero(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.AccessTokenTTL = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero access token TTL")
	}
}

func TestValidate_MaxConnsBelowMinConns(t *testing.T) {
	cfg := validConfig()
	cfg.Database.MaxConns = 2
	cfg.Database.MinConns = 5

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for max_conns < min_conns")
	}
}

func TestValidate_MaxActivePerUserZero(t *testing.T) {
	cfg := validConfig()
	cfg.Exchange.MaxActivePerUser = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for MaxActivePerUser = 0")
	}
}

func TestValidate_DefaultDeadlineNegative(t *testing.T) {
	cfg := validConfig()
	cfg.Exchange.DefaultDeadline = -time.Hour

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative DefaultDeadline")
	}
}

func TestValidate_EventsBufferSizeZero(t *testing.T) {
	cfg := validConfig()
	cfg.Events.BufferSize = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for BufferSize = 0")
	}
}

func TestValidate_UnknownLogFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Format = "xml"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Database: DatabaseConfig{
			DSN:      "postgres://u:p@localhost:5432/testdb",
			MaxConns: 25,
			MinConns: 5,
		},
		Auth: AuthConfig{
			JWTSecret:      "this-is-a-very-long-jwt-secret-for-testing-32+",
			JWTIssuer:      "skillswap",
			AccessTokenTTL: 15 * time.Minute,
		},
		Exchange: ExchangeConfig{
			MaxActivePerUser: 10,
			DefaultDeadline:  720 * time.Hour,
		},
		Events: EventsConfig{BufferSize: 64},
		Log:    LogConfig{Level: "info", Format: "json"},
	}
}
