// ABOUTME: Viewer HTTP server: serves generated fishbone charts, the home page, the model page,
// ABOUTME: the progress API, health and metrics behind a single chi router.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/2389-research/fishbone/logging"
	"github.com/2389-research/fishbone/progress"
	"github.com/2389-research/fishbone/render"
)

const (
	defaultAddr     = "0.0.0.0:8023"
	defaultCacheTTL = 5 * time.Minute
	shutdownTimeout = 10 * time.Second
	maxProgressBody = 1 << 20
)

// Server is the chart viewer.
type Server struct {
	cfg       Config
	router    chi.Router
	templates *TemplateEngine
	cache     *render.RenderCache
	metrics   *metrics
	log       *zap.Logger
}

// Config holds the configuration for the viewer.
type Config struct {
	Addr   string // listen address (default: "0.0.0.0:8023")
	OutDir string // directory holding the generated charts

	// Models maps a locale code to a model file. When set, charts missing
	// from OutDir are rendered in memory and /model can show the model.
	Models map[string]string

	// Progress enables /api/progress when non-nil.
	Progress *progress.Store

	CacheTTL time.Duration
	Logger   *zap.Logger
}

// NewServer creates a Server and sets up routing.
func NewServer(cfg Config) (*Server, error) {
	if cfg.OutDir == "" {
		return nil, errors.New("OutDir must not be empty")
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	tmpl, err := NewTemplateEngine()
	if err != nil {
		return nil, fmt.Errorf("initializing templates: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		templates: tmpl,
		log:       logging.OrNop(cfg.Logger),
	}
	if len(cfg.Models) > 0 {
		s.cache = render.NewRenderCache(render.Source, cfg.CacheTTL)
	}
	s.metrics = newMetrics(s.cache)
	s.router = s.buildRouter()
	return s, nil
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.log.Info("viewer listening", zap.String("addr", ln.Addr().String()), zap.String("out_dir", s.cfg.OutDir))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down viewer")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/health", s.handleHealth)
	r.Get("/list", s.handleList)
	r.Get("/model", s.handleModel)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	for _, route := range chartRoutes {
		r.Get(route.Path, s.chartHandler(route))
	}
	r.Get("/charts/{name}", s.handleChartFile)

	r.Get("/api/progress", s.handleProgressKeys)
	r.Get("/api/progress/{key}", s.handleProgressGet)
	r.Put("/api/progress/{key}", s.handleProgressPut)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		fileNotFound(w)
	})

	return r
}

// handleHealth returns a JSON health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func fileNotFound(w http.ResponseWriter) {
	plainError(w, "File not found", http.StatusNotFound)
}

func plainError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	fmt.Fprint(w, msg)
}
