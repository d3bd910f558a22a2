package serializer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gopkg.in/yaml.v3"
)

type stepPayload struct {
	Step    string `json:"step" yaml:"step"`
	Verdict string `json:"verdict" yaml:"verdict"`
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusCreated, stepPayload{Step: "networking", Verdict: "ready"})

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var got stepPayload
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if got.Step != "networking" || got.Verdict != "ready" {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestRespondJSON_EncodingErrorIsClean500(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, make(chan int))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if w.Body.Len() == 0 {
		t.Error("expected error message in body")
	}
}

func TestRespondJSON_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, nil)

	if body := w.Body.String(); body != "null\n" {
		t.Errorf("expected 'null\\n', got %q", body)
	}
}

func TestRespond_Negotiation(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"no accept", "", "application/json"},
		{"json", "application/json", "application/json"},
		{"yaml", "application/yaml", "application/yaml"},
		{"text yaml", "text/yaml; charset=utf-8", "application/yaml"},
		{"json first", "application/json, application/yaml", "application/json"},
		{"yaml first", "application/yaml, application/json;q=0.9", "application/yaml"},
		{"vendor json", "application/vnd.openshift.wizgate.v1+json", "application/json"},
		{"wildcard", "*/*", "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/steps", nil)
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()
			Respond(w, r, http.StatusOK, stepPayload{Step: "review", Verdict: "pending"})

			if ct := w.Header().Get("Content-Type"); ct != tt.want {
				t.Fatalf("expected Content-Type %s, got %s", tt.want, ct)
			}

			var got stepPayload
			var err error
			if tt.want == "application/yaml" {
				err = yaml.Unmarshal(w.Body.Bytes(), &got)
			} else {
				err = json.Unmarshal(w.Body.Bytes(), &got)
			}
			if err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if got.Step != "review" || got.Verdict != "pending" {
				t.Errorf("unexpected payload %+v", got)
			}
		})
	}
}
