package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/netvalue/pkg/analysis"
	errs "github.com/matzehuels/netvalue/pkg/errors"
	"github.com/matzehuels/netvalue/pkg/httputil"
)

// Defaults for zero-valued Config fields.
const (
	DefaultAddr           = ":8080"
	DefaultMaxBodyBytes   = 8 << 20
	DefaultMaxNodes       = 100_000
	DefaultRequestTimeout = 30 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Config configures the HTTP server.
type Config struct {
	Addr           string        `json:"addr" toml:"addr"`
	MaxBodyBytes   int64         `json:"max_body_bytes" toml:"max_body_bytes" validate:"min=0"`
	MaxNodes       int           `json:"max_nodes" toml:"max_nodes" validate:"min=0"`
	RequestTimeout time.Duration `json:"request_timeout" toml:"request_timeout" validate:"min=0"`
}

func (c *Config) setDefaults() error {
	if err := errs.ValidateStruct(c); err != nil {
		return err
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.MaxNodes == 0 {
		c.MaxNodes = DefaultMaxNodes
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	return nil
}

// Server serves analyses over HTTP.
type Server struct {
	runner  *analysis.Runner
	cfg     Config
	logger  *log.Logger
	metrics http.Handler
}

// New creates a server. metrics, when non-nil, is mounted at /metrics.
func New(runner *analysis.Runner, cfg Config, logger *log.Logger, metrics http.Handler) (*Server, error) {
	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}
	if runner == nil {
		runner = analysis.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, cfg: cfg, logger: logger, metrics: metrics}, nil
}

// Config returns the effective configuration, defaults included.
func (s *Server) Config() Config { return s.cfg }

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(s.recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, RequestID(r.Context()), errs.New(errs.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorBody{
			Error:     httputil.ErrorDetail{Code: errs.ErrCodeInvalidInput, Message: "method not allowed"},
			RequestID: RequestID(r.Context()),
		})
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(bodyLimit(s.cfg.MaxBodyBytes))
		r.Post("/label", s.handleLabel)
		r.Post("/metcalfe", s.handleMetcalfe)
		r.Post("/shapley", s.handleShapley)
		r.Post("/exact", s.handleExact)
		r.Post("/rank", s.handleRank)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
