package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestRun_InvalidConfig verifies run fails with an invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("TASKVAULT_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingSecret verifies run fails when no JWT secret is configured.
func TestRun_MissingSecret(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "test-config.yaml")
	configContent := `
server:
  port: 38500
database:
  path: "` + filepath.Join(t.TempDir(), "test.db") + `"
logging:
  level: error
  format: text
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("TASKVAULT_CONFIG", configPath)
	t.Setenv("TASKVAULT_JWT_SECRET", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail without a JWT secret")
	}
}

// TestGetConfigPath_Default verifies the default config path.
func TestGetConfigPath_Default(t *testing.T) {
	t.Setenv("TASKVAULT_CONFIG", "")

	if path := getConfigPath(); path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies the environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	t.Setenv("TASKVAULT_CONFIG", "/custom/path/config.yaml")

	if path := getConfigPath(); path != "/custom/path/config.yaml" {
		t.Errorf("getConfigPath() = %q, want /custom/path/config.yaml", path)
	}
}

// TestRun_StartupAndShutdown boots the full stack against a temp database
// and shuts it down via context cancellation.
func TestRun_StartupAndShutdown(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")
	dbPath := filepath.Join(tmpDir, "test.db")

	configContent := `
server:
  host: "127.0.0.1"
  port: 38500
  environment: "test"
database:
  path: "` + dbPath + `"
  wal_mode: true
  busy_timeout: 5
auth:
  jwt_secret: "test-secret-key-at-least-32-characters-long"
logging:
  level: error
  format: text
  output: stdout
seed:
  demo: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("TASKVAULT_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}

	// The database file exists with the seeded accounts applied.
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file missing after run: %v", err)
	}
}
