package gate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshift-assisted/wizard-gate/pkg/server"
	"github.com/openshift-assisted/wizard-gate/pkg/stepmap"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	g := defaultGate(t)
	memo, err := NewMemo(g, 16)
	require.NoError(t, err)
	return NewHandler(g, memo)
}

func serve(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) server.ErrorResponse {
	t.Helper()
	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

const insufficientBody = `{
  "id": "c1",
  "status": "insufficient",
  "validationsInfo": "{\"configuration\":[{\"id\":\"pull-secret-set\",\"status\":\"success\"}]}",
  "hosts": [
    {
      "id": "h1",
      "status": "insufficient",
      "validationsInfo": {"hardware": [{"id": "hostname-valid", "status": "pending"}]}
    }
  ]
}`

func TestHandleStatus(t *testing.T) {
	h := newTestHandler(t)

	w := serve(h.HandleStatus, http.MethodPost, "/v1/status?step=cluster-details", insufficientBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var res StepResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, stepmap.StepID("cluster-details"), res.Step)
	assert.Equal(t, VerdictNotReady, res.Verdict, "dns-domain-defined is missing")

	w = serve(h.HandleStatus, http.MethodPost, "/v1/status?step=host-discovery&hostsOnly=true", insufficientBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var hostsOnly StepResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hostsOnly))
	assert.Equal(t, VerdictNotReady, hostsOnly.Verdict)
	assert.Empty(t, hostsOnly.ClusterVerdict)
	require.Len(t, hostsOnly.Hosts, 1)
	assert.Equal(t, "h1", hostsOnly.Hosts[0].ID)
}

func TestHandleStatus_Errors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   string
	}{
		{"wrong method", http.MethodGet, "/v1/status?step=review", "", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"missing step", http.MethodPost, "/v1/status", insufficientBody, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad hostsOnly", http.MethodPost, "/v1/status?step=review&hostsOnly=maybe", insufficientBody, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad body", http.MethodPost, "/v1/status?step=review", "{", http.StatusBadRequest, "INVALID_REQUEST"},
		{"unknown step", http.MethodPost, "/v1/status?step=revew", insufficientBody, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h.HandleStatus, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}

	w := serve(h.HandleStatus, http.MethodGet, "/v1/status?step=review", "")
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
}

func TestHandleReport(t *testing.T) {
	h := newTestHandler(t)

	w := serve(h.HandleReport, http.MethodPost, "/v1/report", insufficientBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var r Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.Equal(t, "c1", r.ClusterID)
	assert.Equal(t, len(h.gate.Map().Order()), r.Summary.Total)
	assert.Equal(t, stepmap.StepID("host-discovery"), r.FirstStep)

	req := httptest.NewRequest(http.MethodPost, "/v1/report", strings.NewReader(insufficientBody))
	req.Header.Set("Accept", "application/yaml")
	rec := httptest.NewRecorder()
	h.HandleReport(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "firstStep: host-discovery")
}

func TestHandleFirstStep(t *testing.T) {
	h := newTestHandler(t)

	w := serve(h.HandleFirstStep, http.MethodPost, "/v1/first-step",
		`{"staticIp": {"view": "yaml", "isDataComplete": false}, "clusterStatus": "ready"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp FirstStepResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, stepmap.StepID("static-ip-yaml-view"), resp.Step)
	assert.Equal(t, "Static network configurations", resp.Title)

	w = serve(h.HandleFirstStep, http.MethodPost, "/v1/first-step", `{"clusterStatus": "ready"}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, stepmap.StepID("review"), resp.Step)
	assert.Equal(t, "Review", resp.Title)

	w = serve(h.HandleFirstStep, http.MethodPost, "/v1/first-step", `{"staticIp": {"view": "table"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeError(t, w).Code)
}

func TestHandleRoute(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name   string
		target string
		status int
		step   stepmap.StepID
		found  bool
	}{
		{"with minimum", "/v1/route?validationId=sufficient-masters-count&minimumStep=storage", http.StatusOK, "storage", true},
		{"without minimum", "/v1/route?validationId=pull-secret-set", http.StatusOK, "cluster-details", true},
		{"group hint", "/v1/route?validationId=brand-new-check&hostGroup=network", http.StatusOK, "networking", true},
		{"unclaimed", "/v1/route?validationId=brand-new-check", http.StatusOK, "", false},
		{"unknown minimum", "/v1/route?validationId=pull-secret-set&minimumStep=nope", http.StatusNotFound, "", false},
		{"missing id", "/v1/route", http.StatusBadRequest, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h.HandleRoute, http.MethodGet, tt.target, "")
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status != http.StatusOK {
				return
			}
			var resp RouteResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.found, resp.Found)
			assert.Equal(t, tt.step, resp.Step)
		})
	}

	w := serve(h.HandleRoute, http.MethodPost, "/v1/route?validationId=x", "{}")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleSteps(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/steps", nil)
	req.Header.Set("Accept", "application/yaml")
	w := httptest.NewRecorder()
	h.HandleSteps(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	m, err := stepmap.Load(w.Body.Bytes())
	require.NoError(t, err, "served map loads back")
	assert.Equal(t, h.gate.Map().Order(), m.Order())

	w = serve(h.HandleSteps, http.MethodGet, "/v1/steps", "")
	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "ocm-cluster-wizard", doc["name"])
}

func TestRoutes(t *testing.T) {
	h := newTestHandler(t)
	routes := h.Routes()
	for _, path := range []string{"/v1/status", "/v1/report", "/v1/first-step", "/v1/route", "/v1/steps"} {
		assert.Contains(t, routes, path)
	}
}
