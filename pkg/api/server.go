// Package api wires the gate handlers into the wizgate HTTP server.
package api

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/joho/godotenv"

	"github.com/openshift-assisted/wizard-gate/pkg/defaults"
	wgerrors "github.com/openshift-assisted/wizard-gate/pkg/errors"
	"github.com/openshift-assisted/wizard-gate/pkg/gate"
	"github.com/openshift-assisted/wizard-gate/pkg/logging"
	"github.com/openshift-assisted/wizard-gate/pkg/server"
	"github.com/openshift-assisted/wizard-gate/pkg/stepmap"
)

const (
	name           = "wizgate-api-server"
	versionDefault = "dev"

	// StepMapEnv names the step validation map served instead of the
	// embedded one.
	StepMapEnv = "WIZGATE_STEP_MAP"
)

var (
	// overridden during build with ldflags
	// e.g., -X "github.com/openshift-assisted/wizard-gate/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Options configures Run.
type Options struct {
	// StepMapPath is a step validation map YAML; empty selects the embedded map.
	StepMapPath string
	// Port overrides the configured listen port when positive.
	Port int
	// EnvFile is loaded before the configuration is read; defaults to .env.
	EnvFile string
}

// Serve starts the API server with the map named by WIZGATE_STEP_MAP and
// blocks until shutdown.
func Serve() error {
	return Run(context.Background(), Options{})
}

// Run starts the API server and blocks until ctx is cancelled or the
// process is signalled.
func Run(ctx context.Context, opts Options) error {
	loadEnvFile(opts.EnvFile)
	if opts.StepMapPath == "" {
		opts.StepMapPath = os.Getenv(StepMapEnv)
	}

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	m, err := loadStepMap(opts.StepMapPath)
	if err != nil {
		slog.Error("failed to load step validation map", "error", err)
		return err
	}
	routes, err := routesFor(m, opts.StepMapPath)
	if err != nil {
		slog.Error("failed to initialize handlers", "error", err)
		return err
	}

	cfg := server.DefaultConfig()
	if opts.Port > 0 {
		cfg.Port = opts.Port
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithConfig(cfg),
		server.WithHandler(routes),
		server.WithReadinessCheck("step-map", stepMapCheck(opts.StepMapPath)),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// Routes loads the step validation map at stepMapPath, or the embedded map
// when empty, and returns the gate handlers keyed by path.
func Routes(stepMapPath string) (map[string]http.HandlerFunc, error) {
	m, err := loadStepMap(stepMapPath)
	if err != nil {
		return nil, err
	}
	return routesFor(m, stepMapPath)
}

func loadStepMap(path string) (*stepmap.Map, error) {
	if path == "" {
		return stepmap.Default()
	}
	return stepmap.LoadFile(path)
}

func routesFor(m *stepmap.Map, stepMapPath string) (map[string]http.HandlerFunc, error) {
	g := gate.New(m)
	memo, err := gate.NewMemo(g, defaults.MemoSize)
	if err != nil {
		return nil, err
	}

	slog.Info("step validation map ready",
		"name", m.Name(),
		"steps", len(m.Order()),
		"source", stepMapSource(stepMapPath))

	return gate.NewHandler(g, memo).Routes(), nil
}

// stepMapCheck fails readiness once the step map file the server was started
// with becomes unreadable or its content changes, since the served rules no
// longer match the deployed configuration. The embedded map needs no check.
func stepMapCheck(path string) server.ReadinessCheck {
	if path == "" {
		return nil
	}
	loaded, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read step validation map for readiness", "path", path, "error", err)
	}
	want := xxhash.Sum64(loaded)

	return func(context.Context) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return wgerrors.Wrap(wgerrors.ErrCodeUnavailable, "step validation map is unreadable", err)
		}
		if xxhash.Sum64(data) != want {
			return wgerrors.NewWithContext(wgerrors.ErrCodeUnavailable,
				"step validation map changed on disk, restart to apply",
				map[string]any{"path": path})
		}
		return nil
	}
}

func stepMapSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// loadEnvFile reads KEY=value pairs into the environment. Variables already
// set are kept and a missing file is not an error.
func loadEnvFile(path string) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to load env file", "path", path, "error", err)
		}
		return
	}
	slog.Debug("env file loaded", "path", path)
}
