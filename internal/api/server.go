package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eshaffer321/room-allocation/internal/api/handlers"
	"github.com/eshaffer321/room-allocation/internal/api/middleware"
	"github.com/eshaffer321/room-allocation/internal/application/service"
	"github.com/eshaffer321/room-allocation/internal/infrastructure/config"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	RateLimit      middleware.RateLimitConfig
}

// DefaultConfig returns sensible defaults for the API server. Rate limiting
// is off.
func DefaultConfig() Config {
	return Config{
		Port:           config.DefaultPort,
		AllowedOrigins: middleware.DefaultCORSConfig().AllowedOrigins,
	}
}

// ConfigFrom builds the server configuration from the application config.
func ConfigFrom(cfg *config.Config) Config {
	out := DefaultConfig()
	out.Port = cfg.Server.Port
	if len(cfg.Server.AllowedOrigins) > 0 {
		out.AllowedOrigins = cfg.Server.AllowedOrigins
	}
	out.RateLimit = middleware.RateLimitConfig{
		RequestsPerMinute: cfg.Server.RateLimitPerMinute,
		Burst:             cfg.Server.RateLimitBurst,
	}
	return out
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	svc        *service.AllocationService
}

// NewServer creates a new API server backed by svc.
func NewServer(cfg Config, svc *service.AllocationService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if svc == nil {
		svc = service.NewAllocationService(nil, logger)
	}

	s := &Server{
		config: cfg,
		router: chi.NewRouter(),
		logger: logger,
		svc:    svc,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = s.config.AllowedOrigins
	s.router.Use(middleware.CORS(corsConfig))

	// Request logging; also assigns the request ID used below
	s.router.Use(middleware.Logging(s.logger))

	s.router.Use(middleware.RateLimit(s.config.RateLimit, s.logger))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler(s.svc)
	s.router.Get("/health", healthHandler.ServeHTTP)

	s.router.Route("/api", func(r chi.Router) {
		allocationsHandler := handlers.NewAllocationsHandler(s.svc, s.logger)
		r.Post("/allocations/search", allocationsHandler.Search)

		sessionsHandler := handlers.NewSessionsHandler(s.svc, s.logger)
		r.Post("/sessions", sessionsHandler.Create)
		r.Get("/sessions", sessionsHandler.List)
		r.Get("/sessions/{id}", sessionsHandler.Get)
		r.Delete("/sessions/{id}", sessionsHandler.Delete)
		r.Put("/sessions/{id}/rooms/{index}", sessionsHandler.UpdateRoom)
		r.Post("/sessions/{id}/rooms/{index}/step", sessionsHandler.StepRoom)
		r.Post("/sessions/{id}/rooms/{index}/input", sessionsHandler.InputRoom)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
