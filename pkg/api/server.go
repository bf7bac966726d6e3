// Package api exposes normalization over HTTP.
//
// Routes:
//
//	POST /v1/normalize  normalize inline data, optionally into a widget payload
//	GET  /v1/modes      list the supported widget modes
//	GET  /healthz       liveness probe
//
// Every response carries an X-Request-ID header. Errors are returned as
// JSON objects with a code and a message; the status reflects the error
// category (400 configuration or missing field, 422 structural, 415
// unsupported input).
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/treeflow/pkg/pipeline"
)

// Default server settings.
const (
	DefaultAddr            = ":8080"
	DefaultMaxBodyBytes    = 8 << 20
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Config configures the HTTP server.
type Config struct {
	Addr         string        `toml:"addr"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// SetDefaults fills zero fields with the package defaults.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
}

// Server serves the normalization API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// NewServer creates a server backed by runner. A nil logger uses the
// runner's logger.
func NewServer(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	cfg.SetDefaults()
	if runner == nil {
		runner = pipeline.NewRunner(logger)
	}
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		cfg:    cfg,
		runner: runner,
		logger: logger.With("component", "api"),
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/modes", s.handleModes)
		r.Post("/normalize", s.handleNormalize)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: "no route for " + r.URL.Path})
	})
	s.router = r
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on the configured address until ctx is canceled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
