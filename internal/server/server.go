// Package server is the generation service HTTP API: it builds resumes, cover letters,
// portfolios and ATS scores with the rule engine.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/buildmyfolio/internal/engine"
	"github.com/jonathan/buildmyfolio/internal/server/middleware"
	"github.com/jonathan/buildmyfolio/internal/server/ratelimit"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

const shutdownTimeout = 30 * time.Second

// Server is the generation service.
type Server struct {
	httpServer  *http.Server
	engine      *engine.Engine
	rateLimiter *ratelimit.Limiter
	logger      *slog.Logger
}

// Config holds server configuration.
type Config struct {
	Port      int
	Engine    *engine.Engine
	RateLimit *ratelimit.Config
	Logger    *slog.Logger
}

// New creates the service. A nil Engine uses rules without polishing; a nil RateLimit
// reads RATE_LIMIT_* from the environment.
func New(cfg Config) *Server {
	s := &Server{engine: cfg.Engine, logger: cfg.Logger}
	if s.engine == nil {
		s.engine = engine.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	rl := cfg.RateLimit
	if rl == nil {
		rl = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rl)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/ats-score", s.handleATSScore)
	mux.HandleFunc("POST /api/enhance-summary", s.handleEnhanceSummary)
	mux.HandleFunc("POST /api/suggest-skills", s.handleSuggestSkills)
	mux.HandleFunc("POST /api/improve-bullets", s.handleImproveBullets)
	mux.HandleFunc("GET /api/templates", s.handleTemplates)

	s.httpServer = &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: middleware.Chain(mux,
			middleware.RateLimit(s.rateLimiter, s.logger),
			middleware.Logging(s.logger),
			middleware.Recover(s.logger),
			middleware.CORS,
		),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, s.httpServer, s.logger, s.rateLimiter.Stop)
}

// Serve runs srv until ctx is done, then drains connections. cleanup runs after shutdown.
func Serve(ctx context.Context, srv *http.Server, logger *slog.Logger, cleanup ...func()) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	for _, fn := range cleanup {
		fn()
	}
	logger.Info("server stopped")
	return nil
}

// WriteJSON writes data as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

// WriteError writes {"error": message}.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// WriteErr writes err with the status HTTPStatus assigns it.
func WriteErr(w http.ResponseWriter, err error) {
	WriteError(w, HTTPStatus(err), ErrorMessage(err))
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrDecode{Cause: err}
	}
	return nil
}
