// TaskVault - a teaching task manager with role-based access control.
//
// This is the main entry point for the TaskVault API server. It wires
// configuration, logging, storage, first-boot seeding, and the HTTP API,
// then waits for a shutdown signal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	_ "github.com/isaiasfl/taskvault/migrations"

	"github.com/isaiasfl/taskvault/internal/api"
	"github.com/isaiasfl/taskvault/internal/auth"
	"github.com/isaiasfl/taskvault/internal/infrastructure/config"
	"github.com/isaiasfl/taskvault/internal/infrastructure/database"
	"github.com/isaiasfl/taskvault/internal/infrastructure/logging"
	"github.com/isaiasfl/taskvault/internal/task"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "unknown"
)

// Default configuration file path, overridable via TASKVAULT_CONFIG.
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Load .env if present; absence is not an error in any environment.
	//nolint:errcheck // missing .env files are expected
	godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting TaskVault", "version", version, "commit", commit)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Open database and apply migrations
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Repositories and services
	userRepo := auth.NewUserRepository(db.DB)
	taskRepo := task.NewRepository(db.DB)

	authService, err := auth.NewService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		return fmt.Errorf("creating auth service: %w", err)
	}

	// First-boot seeding: an admin account when the user table is empty,
	// plus an optional demo user for classroom setups.
	if _, seedErr := auth.SeedAdmin(ctx, userRepo, log.Logger); seedErr != nil {
		return fmt.Errorf("seeding admin account: %w", seedErr)
	}
	if cfg.Seed.Demo {
		if seedErr := seedDemo(ctx, authService, taskRepo, log); seedErr != nil {
			log.Warn("demo seeding failed", "error", seedErr)
		}
	}

	// HTTP API server
	server, err := api.New(api.Deps{
		Config:      cfg.Server,
		Auth:        cfg.Auth,
		Logger:      log,
		AuthService: authService,
		Users:       userRepo,
		Tasks:       taskRepo,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("TaskVault ready",
		"address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		"environment", cfg.Server.Environment,
	)

	<-ctx.Done()
	log.Info("shutdown signal received")
	return nil
}

// getConfigPath returns the configuration file path from TASKVAULT_CONFIG,
// falling back to the default location.
func getConfigPath() string {
	if path := os.Getenv("TASKVAULT_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
