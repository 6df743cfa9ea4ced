package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for TaskVault.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
	Seed     SeedConfig     `yaml:"seed"`
}

// ServerConfig contains HTTP API server settings.
type ServerConfig struct {
	Host        string          `yaml:"host"`
	Port        int             `yaml:"port"`
	Environment string          `yaml:"environment"`
	Timeouts    TimeoutConfig   `yaml:"timeouts"`
	CORS        CORSConfig      `yaml:"cors"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

// TimeoutConfig contains HTTP timeout settings in seconds.
type TimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// RateLimitConfig contains fixed-window rate limiting settings.
type RateLimitConfig struct {
	Enabled       bool `yaml:"enabled"`
	WindowMinutes int  `yaml:"window_minutes"`
	MaxRequests   int  `yaml:"max_requests"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// AuthConfig contains JWT token settings.
type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// SeedConfig controls first-boot account seeding.
type SeedConfig struct {
	// Demo creates a demo USER account with sample tasks for classroom use.
	Demo bool `yaml:"demo"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: TASKVAULT_SECTION_KEY
// For example: TASKVAULT_DATABASE_PATH, TASKVAULT_JWT_SECRET
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        3500,
			Environment: "development",
			Timeouts: TimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
			CORS: CORSConfig{
				AllowedOrigins: []string{"http://localhost:5173"},
				AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type", "Authorization"},
			},
			RateLimit: RateLimitConfig{
				Enabled:       true,
				WindowMinutes: 15,
				MaxRequests:   1000,
			},
		},
		Database: DatabaseConfig{
			Path:        "./data/taskvault.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Auth: AuthConfig{
			TokenTTLMinutes: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: TASKVAULT_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TASKVAULT_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("TASKVAULT_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("TASKVAULT_ENVIRONMENT"); v != "" {
		cfg.Server.Environment = v
	}
	if v := os.Getenv("TASKVAULT_CORS_ORIGIN"); v != "" {
		cfg.Server.CORS.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("TASKVAULT_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// JWT secret (IMPORTANT: always set via environment in production)
	if v := os.Getenv("TASKVAULT_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("TASKVAULT_TOKEN_TTL_MINUTES"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			cfg.Auth.TokenTTLMinutes = ttl
		}
	}
	if v := os.Getenv("TASKVAULT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// validEnvironments are the accepted server.environment values.
var validEnvironments = map[string]bool{
	"development": true,
	"production":  true,
	"test":        true,
}

// Validate checks the configuration for errors and security issues.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}

	if !validEnvironments[c.Server.Environment] {
		errs = append(errs, "server.environment must be development, production, or test")
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	// The same secret signs and verifies every outstanding token; a missing
	// or guessable secret would let anyone mint valid credentials.
	const minJWTSecretLength = 32
	if c.Auth.JWTSecret == "" {
		errs = append(errs, "auth.jwt_secret is required (set TASKVAULT_JWT_SECRET environment variable)")
	} else if len(c.Auth.JWTSecret) < minJWTSecretLength {
		errs = append(errs, "auth.jwt_secret must be at least 32 characters")
	}

	if c.Auth.TokenTTLMinutes <= 0 {
		errs = append(errs, "auth.token_ttl_minutes must be positive")
	}

	if c.Server.RateLimit.Enabled {
		if c.Server.RateLimit.WindowMinutes <= 0 {
			errs = append(errs, "server.rate_limit.window_minutes must be positive")
		}
		if c.Server.RateLimit.MaxRequests <= 0 {
			errs = append(errs, "server.rate_limit.max_requests must be positive")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment reports whether the server runs in development mode.
// Internal error details are only exposed on the wire in development.
func (c *ServerConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// GetReadTimeout returns the server read timeout as a Duration.
func (c *ServerConfig) GetReadTimeout() time.Duration {
	return time.Duration(c.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the server write timeout as a Duration.
func (c *ServerConfig) GetWriteTimeout() time.Duration {
	return time.Duration(c.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the server idle timeout as a Duration.
func (c *ServerConfig) GetIdleTimeout() time.Duration {
	return time.Duration(c.Timeouts.Idle) * time.Second
}

// TokenTTL returns the access token lifetime as a Duration.
func (c *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}
