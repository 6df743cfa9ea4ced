package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/isaiasfl/taskvault/internal/auth"
	"github.com/isaiasfl/taskvault/internal/infrastructure/config"
	"github.com/isaiasfl/taskvault/internal/infrastructure/logging"
	"github.com/isaiasfl/taskvault/internal/task"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config      config.ServerConfig
	Auth        config.AuthConfig
	Logger      *logging.Logger
	AuthService *auth.Service
	Users       auth.UserRepository
	Tasks       task.Repository
	Version     string
}

// Server is the HTTP API server for TaskVault.
//
// It owns the HTTP listener, routes, and middleware. The server is created
// with New() and started with Start().
type Server struct {
	cfg     config.ServerConfig
	auth    config.AuthConfig
	logger  *logging.Logger
	svc     *auth.Service
	users   auth.UserRepository
	tasks   task.Repository
	version string
	server  *http.Server
	limiter *rateLimiter
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.AuthService == nil {
		return nil, fmt.Errorf("auth service is required")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if deps.Tasks == nil {
		return nil, fmt.Errorf("task repository is required")
	}

	return &Server{
		cfg:     deps.Config,
		auth:    deps.Auth,
		logger:  deps.Logger,
		svc:     deps.AuthService,
		users:   deps.Users,
		tasks:   deps.Tasks,
		version: deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// It builds the router and launches the HTTP listener in a background
// goroutine. The server can be stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.RateLimit.Enabled {
		s.limiter = newRateLimiter(
			time.Duration(s.cfg.RateLimit.WindowMinutes)*time.Minute,
			s.cfg.RateLimit.MaxRequests,
		)
	}

	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       s.cfg.GetReadTimeout(),
		ReadHeaderTimeout: s.cfg.GetReadTimeout(),
		WriteTimeout:      s.cfg.GetWriteTimeout(),
		IdleTimeout:       s.cfg.GetIdleTimeout(),
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete, then
// forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.limiter != nil {
		s.limiter.stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
