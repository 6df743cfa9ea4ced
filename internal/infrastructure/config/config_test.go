package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-key-at-least-32-characters-long"

// writeConfig writes a YAML config file to a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "`+testSecret+`"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 3500 {
		t.Errorf("default port = %d, want 3500", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("default environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.Auth.TokenTTLMinutes != 60 {
		t.Errorf("default TTL = %d, want 60", cfg.Auth.TokenTTLMinutes)
	}
	if !cfg.Server.RateLimit.Enabled {
		t.Error("rate limiting should default on")
	}
	if cfg.Database.Path == "" {
		t.Error("database path should have a default")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  environment: "production"
auth:
  jwt_secret: "`+testSecret+`"
  token_ttl_minutes: 15
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.IsDevelopment() {
		t.Error("production config reports development")
	}
	if cfg.Auth.TokenTTL() != 15*time.Minute {
		t.Errorf("TokenTTL = %v, want 15m", cfg.Auth.TokenTTL())
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("TASKVAULT_SERVER_PORT", "9999")
	t.Setenv("TASKVAULT_JWT_SECRET", testSecret)
	t.Setenv("TASKVAULT_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("TASKVAULT_CORS_ORIGIN", "https://a.example,https://b.example")

	path := writeConfig(t, `
server:
  port: 8080
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want env override 9999", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("database path = %q, want /tmp/override.db", cfg.Database.Path)
	}
	if len(cfg.Server.CORS.AllowedOrigins) != 2 {
		t.Errorf("CORS origins = %v, want 2 entries", cfg.Server.CORS.AllowedOrigins)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.Auth.JWTSecret = testSecret
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, "jwt_secret is required"},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "too-short" }, "at least 32 characters"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad environment", func(c *Config) { c.Server.Environment = "staging" }, "server.environment"},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"zero TTL", func(c *Config) { c.Auth.TokenTTLMinutes = 0 }, "token_ttl_minutes"},
		{"bad rate window", func(c *Config) { c.Server.RateLimit.WindowMinutes = 0 }, "window_minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
