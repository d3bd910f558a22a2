package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	wgerrors "github.com/openshift-assisted/wizard-gate/pkg/errors"
	"github.com/openshift-assisted/wizard-gate/pkg/serializer"
)

var systemRoutes = []string{"/health", "/ready", "/metrics"}

// RootResponse describes the server on GET /.
type RootResponse struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version" yaml:"version"`
	APIVersions []string `json:"apiVersions" yaml:"apiVersions"`
	Ready       bool     `json:"ready" yaml:"ready"`
	Timestamp   string   `json:"timestamp" yaml:"timestamp"`
	Routes      []string `json:"routes" yaml:"routes"`
}

// setupRoutes installs the system endpoints, which bypass the middleware
// chain, and the API handlers, which go through it.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	for _, path := range s.routes() {
		mux.HandleFunc(path, s.withMiddleware(path, s.handlers[path]))
	}

	return mux
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		slog.Debug("route not found",
			"path", r.URL.Path,
			"method", r.Method,
			"remote_addr", r.RemoteAddr,
		)
		WriteError(w, r, http.StatusNotFound, wgerrors.ErrCodeNotFound,
			"Route not found", false, map[string]interface{}{
				"path":   r.URL.Path,
				"routes": s.routes(),
			})
		return
	}
	if !allowGet(w, r) {
		return
	}

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	serializer.Respond(w, r, http.StatusOK, RootResponse{
		Name:        s.name,
		Version:     s.version,
		APIVersions: supportedAPIVersions,
		Ready:       ready,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Routes:      append(s.routes(), systemRoutes...),
	})
}
