package server

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	wgerrors "github.com/openshift-assisted/wizard-gate/pkg/errors"
	"github.com/openshift-assisted/wizard-gate/pkg/serializer"
)

const readinessCheckTimeout = 2 * time.Second

// ReadinessCheck reports whether a dependency of the server can serve requests.
type ReadinessCheck func(ctx context.Context) error

// WithReadinessCheck adds a named check consulted by /ready once the server
// is listening.
func WithReadinessCheck(name string, check ReadinessCheck) Option {
	return func(s *Server) {
		if check != nil {
			s.checks[name] = check
		}
	}
}

// HealthResponse is the body of /health and /ready.
type HealthResponse struct {
	Status    string            `json:"status" yaml:"status"`
	Name      string            `json:"name,omitempty" yaml:"name,omitempty"`
	Version   string            `json:"version,omitempty" yaml:"version,omitempty"`
	Timestamp time.Time         `json:"timestamp" yaml:"timestamp"`
	Reason    string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	Checks    map[string]string `json:"checks,omitempty" yaml:"checks,omitempty"`
}

func (s *Server) health(status string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Name:      s.name,
		Version:   s.version,
		Timestamp: time.Now().UTC(),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.health("healthy"))
}

// handleReady answers 200 once the server is listening and every readiness
// check passes.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	if !ready {
		resp := s.health("not_ready")
		resp.Reason = "service is initializing"
		serializer.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp := s.health("ready")
	failed := s.runChecks(r.Context(), &resp)
	if len(failed) > 0 {
		resp.Status = "not_ready"
		resp.Reason = "readiness checks failed: " + strings.Join(failed, ", ")
		serializer.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, resp)
}

func (s *Server) runChecks(ctx context.Context, resp *HealthResponse) []string {
	if len(s.checks) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, readinessCheckTimeout)
	defer cancel()

	resp.Checks = make(map[string]string, len(s.checks))
	var failed []string
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			resp.Checks[name] = err.Error()
			failed = append(failed, name)
			continue
		}
		resp.Checks[name] = "ok"
	}
	sort.Strings(failed)
	return failed
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	WriteError(w, r, http.StatusMethodNotAllowed, wgerrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]interface{}{
			"method": r.Method,
		})
	return false
}
