package header

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	h := New(WithKind(KindStepReport), WithMetadata("cluster", "abc"))

	if h.Kind != KindStepReport {
		t.Fatalf("expected kind %q, got %q", KindStepReport, h.Kind)
	}
	if h.APIVersion != "wizardstepreport.wizgate.openshift.io/v1" {
		t.Fatalf("unexpected apiVersion %q", h.APIVersion)
	}
	if h.Metadata["cluster"] != "abc" {
		t.Fatalf("expected metadata cluster=abc, got %#v", h.Metadata)
	}
}

func TestSet(t *testing.T) {
	var h Header
	h.Set(KindStepResult)

	if h.APIVersion != APIVersionFor(KindStepResult) {
		t.Fatalf("unexpected apiVersion %q", h.APIVersion)
	}
	if _, err := time.Parse(time.RFC3339, h.Metadata[GeneratedAtKey]); err != nil {
		t.Fatalf("expected RFC3339 %s, got %q: %v", GeneratedAtKey, h.Metadata[GeneratedAtKey], err)
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		h       Header
		wantErr bool
	}{
		{"empty accepted", Header{}, false},
		{"matching kind", Header{Kind: KindStepsValidationMap}, false},
		{"matching kind and version", Header{Kind: KindStepsValidationMap, APIVersion: APIVersionFor(KindStepsValidationMap)}, false},
		{"wrong kind", Header{Kind: KindStepReport}, true},
		{"wrong version", Header{Kind: KindStepsValidationMap, APIVersion: "v2"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.h.Check(KindStepsValidationMap)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
