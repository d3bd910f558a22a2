package header

import (
	"fmt"
	"strings"
	"time"
)

var (
	ApiVersionDomain = "wizgate.openshift.io"
	ApiVersionV1     = "v1"
)

// Kinds of documents produced or consumed by wizgate.
const (
	KindStepsValidationMap = "WizardStepsValidationMap"
	KindStepResult         = "WizardStepResult"
	KindStepReport         = "WizardStepReport"
)

// GeneratedAtKey is the metadata key holding the document creation time.
const GeneratedAtKey = "generated-at"

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind and the matching APIVersion.
func WithKind(kind string) Option {
	return func(h *Header) {
		h.Kind = kind
		h.APIVersion = APIVersionFor(kind)
	}
}

// New creates a new Header with the provided functional options.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header carries the Kubernetes-style type information of a wizgate document.
type Header struct {
	// Kind is the type of the document.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the schema version of the document.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains free-form key-value pairs.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// APIVersionFor returns "<kind>.wizgate.openshift.io/v1" for kind.
func APIVersionFor(kind string) string {
	return fmt.Sprintf("%s.%s/%s", strings.ToLower(kind), ApiVersionDomain, ApiVersionV1)
}

// Set initializes the Header for kind and stamps the generation time.
func (h *Header) Set(kind string) {
	h.Kind = kind
	h.APIVersion = APIVersionFor(kind)
	h.Metadata = map[string]string{
		GeneratedAtKey: time.Now().UTC().Format(time.RFC3339),
	}
}

// Check verifies that a decoded document declares the expected kind.
// Documents without type information are accepted.
func (h *Header) Check(kind string) error {
	if h.Kind != "" && h.Kind != kind {
		return fmt.Errorf("unexpected kind %q, want %q", h.Kind, kind)
	}
	if h.APIVersion != "" && h.APIVersion != APIVersionFor(kind) {
		return fmt.Errorf("unsupported apiVersion %q for kind %s, want %q", h.APIVersion, kind, APIVersionFor(kind))
	}
	return nil
}
