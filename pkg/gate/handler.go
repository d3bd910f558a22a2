package gate

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/openshift-assisted/wizard-gate/pkg/defaults"
	wgerrors "github.com/openshift-assisted/wizard-gate/pkg/errors"
	"github.com/openshift-assisted/wizard-gate/pkg/serializer"
	"github.com/openshift-assisted/wizard-gate/pkg/server"
	"github.com/openshift-assisted/wizard-gate/pkg/stepmap"
	"github.com/openshift-assisted/wizard-gate/pkg/validation"
)

// Handler serves the gate over HTTP.
type Handler struct {
	gate *Gate
	memo *Memo
}

// NewHandler returns a Handler for g. memo may be nil to disable caching.
func NewHandler(g *Gate, memo *Memo) *Handler {
	return &Handler{gate: g, memo: memo}
}

// RouteResponse is the answer to a routing request.
type RouteResponse struct {
	ValidationID validation.ID  `json:"validationId" yaml:"validationId"`
	MinimumStep  stepmap.StepID `json:"minimumStep,omitempty" yaml:"minimumStep,omitempty"`
	Step         stepmap.StepID `json:"step,omitempty" yaml:"step,omitempty"`
	Found        bool           `json:"found" yaml:"found"`
}

// FirstStepResponse is the answer to a first step request.
type FirstStepResponse struct {
	Step  stepmap.StepID `json:"step" yaml:"step"`
	Title string         `json:"title" yaml:"title"`
}

// HandleStatus evaluates a single step for the posted cluster.
//
// Example:
//
//	POST /v1/status?step=host-discovery
//	Content-Type: application/json
//	Body: { "status": "insufficient", "validationsInfo": "{...}", "hosts": [...] }
//
// With hostsOnly=true only the host side of the step is evaluated.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	step := stepmap.StepID(r.URL.Query().Get("step"))
	if step == "" {
		server.WriteError(w, r, http.StatusBadRequest, wgerrors.ErrCodeInvalidRequest,
			"Missing required query parameter", false, map[string]interface{}{
				"parameter": "step",
			})
		return
	}

	hostsOnly := false
	if v := r.URL.Query().Get("hostsOnly"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			server.WriteError(w, r, http.StatusBadRequest, wgerrors.ErrCodeInvalidRequest,
				"Invalid query parameter", false, map[string]interface{}{
					"parameter": "hostsOnly",
					"error":     err.Error(),
				})
			return
		}
		hostsOnly = parsed
	}

	var cluster validation.Cluster
	if !decodeBody(w, r, &cluster) {
		return
	}

	start := time.Now()
	var (
		res StepResult
		err error
	)
	switch {
	case hostsOnly:
		res, err = h.gate.EvaluateHosts(step, cluster.Hosts)
	case h.memo != nil:
		res, err = h.memo.Evaluate(step, cluster, cluster.Hosts)
	default:
		res, err = h.gate.Evaluate(step, cluster, cluster.Hosts)
	}
	evaluationDuration.WithLabelValues("status").Observe(time.Since(start).Seconds())
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to evaluate step", nil)
		return
	}
	stepVerdictTotal.WithLabelValues(string(res.Step), string(res.Verdict)).Inc()

	slog.Debug("step evaluated",
		"step", res.Step,
		"cluster", cluster.ID,
		"verdict", res.Verdict,
		"findings", len(res.Findings))

	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, res)
}

// HandleReport evaluates every step for the posted cluster.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var cluster validation.Cluster
	if !decodeBody(w, r, &cluster) {
		return
	}

	report, err := h.gate.Report(cluster)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to build step report", nil)
		return
	}
	evaluationDuration.WithLabelValues("report").Observe(report.Duration.Seconds())
	for _, res := range report.Steps {
		stepVerdictTotal.WithLabelValues(string(res.Step), string(res.Verdict)).Inc()
	}

	w.Header().Set("Cache-Control", "no-store")
	serializer.Respond(w, r, http.StatusOK, report)
}

// HandleFirstStep returns the step the wizard should open on.
func (h *Handler) HandleFirstStep(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var in FirstStepInput
	if !decodeBody(w, r, &in) {
		return
	}
	if in.StaticIP != nil && in.StaticIP.View != "" &&
		in.StaticIP.View != StaticIPViewYAML && in.StaticIP.View != StaticIPViewForm {
		server.WriteError(w, r, http.StatusBadRequest, wgerrors.ErrCodeInvalidRequest,
			"Invalid static IP view", false, map[string]interface{}{
				"view":  in.StaticIP.View,
				"valid": []StaticIPView{StaticIPViewYAML, StaticIPViewForm},
			})
		return
	}

	step := h.gate.FirstStep(in)
	serializer.RespondJSON(w, http.StatusOK, FirstStepResponse{
		Step:  step,
		Title: h.gate.Map().Title(step),
	})
}

// HandleRoute finds the step where a failing validation is fixed.
//
// Example:
//
//	GET /v1/route?validationId=has-min-memory&minimumStep=host-discovery
//
// Without minimumStep the search starts at the first step and the optional
// hostGroup and clusterGroup parameters are honored.
func (h *Handler) HandleRoute(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	id := validation.ID(q.Get("validationId"))
	if id == "" {
		server.WriteError(w, r, http.StatusBadRequest, wgerrors.ErrCodeInvalidRequest,
			"Missing required query parameter", false, map[string]interface{}{
				"parameter": "validationId",
			})
		return
	}

	resp := RouteResponse{ValidationID: id, MinimumStep: stepmap.StepID(q.Get("minimumStep"))}
	if resp.MinimumStep != "" {
		step, ok, err := h.gate.FindStepForFailingValidation(id, resp.MinimumStep)
		if err != nil {
			server.WriteErrorFromErr(w, r, err, "Failed to route validation", nil)
			return
		}
		resp.Step, resp.Found = step, ok
	} else {
		resp.Step, resp.Found = h.gate.FindValidationFixStep(ValidationRef{
			ID:           id,
			HostGroup:    validation.Group(q.Get("hostGroup")),
			ClusterGroup: validation.Group(q.Get("clusterGroup")),
		})
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	serializer.RespondJSON(w, http.StatusOK, resp)
}

// HandleSteps returns the effective Step Validation Map.
func (h *Handler) HandleSteps(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	serializer.Respond(w, r, http.StatusOK, h.gate.Map().Document())
}

// Routes returns the handlers keyed by path.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/status":     h.HandleStatus,
		"/v1/report":     h.HandleReport,
		"/v1/first-step": h.HandleFirstStep,
		"/v1/route":      h.HandleRoute,
		"/v1/steps":      h.HandleSteps,
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	server.WriteError(w, r, http.StatusMethodNotAllowed, wgerrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]interface{}{
			"method": r.Method,
		})
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, defaults.MaxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, wgerrors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]interface{}{
				"error": err.Error(),
			})
		return false
	}
	return true
}
