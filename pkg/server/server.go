package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	defaultName    = "wizgate-api-server"
	defaultVersion = "dev"
)

// Server is the wizgate HTTP server.
type Server struct {
	name     string
	version  string
	config   *Config
	handlers map[string]http.HandlerFunc
	checks   map[string]ReadinessCheck
	limiter  *rate.Limiter

	mu    sync.RWMutex
	ready bool
}

// Option configures a Server.
type Option func(*Server)

// WithName sets the server name reported on the default route.
func WithName(name string) Option {
	return func(s *Server) {
		s.name = name
	}
}

// WithVersion sets the server version reported on the default route.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithConfig replaces the configuration from DefaultConfig.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithHandler registers API handlers keyed by path. Registered handlers go
// through the full middleware chain.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		for path, h := range handlers {
			s.handlers[path] = h
		}
	}
}

// New creates a Server. Configuration defaults come from DefaultConfig.
func New(opts ...Option) *Server {
	s := &Server{
		name:     defaultName,
		version:  defaultVersion,
		config:   DefaultConfig(),
		handlers: make(map[string]http.HandlerFunc),
		checks:   make(map[string]ReadinessCheck),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)
	return s
}

// Handler returns the root HTTP handler with all routes installed.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// SetReady marks the server ready or not ready for /ready.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	s.ready = ready
	s.mu.Unlock()
}

func (s *Server) routes() []string {
	paths := make([]string, 0, len(s.handlers))
	for p := range s.handlers {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Run binds the configured address and serves until ctx is cancelled or
// SIGINT/SIGTERM is received, then shuts down gracefully within the
// configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled or SIGINT/SIGTERM is received.
// The server reports ready only while ln is accepting. Serve closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server listening",
			"address", ln.Addr().String(),
			"routes", s.routes(),
			"rateLimit", float64(s.config.RateLimit),
			"rateLimitBurst", s.config.RateLimitBurst,
		)
		s.SetReady(true)
		err := srv.Serve(ln)
		s.SetReady(false)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.SetReady(false)
		slog.Info("shutting down server", "timeout", s.config.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
