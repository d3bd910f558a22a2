package stepmap

import (
	"bytes"
	_ "embed"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	wgerrors "github.com/openshift-assisted/wizard-gate/pkg/errors"
)

var (
	//go:embed data/ocm-wizard.yaml
	defaultData []byte

	defaultOnce sync.Once
	defaultMap  *Map
	defaultErr  error
)

// Default returns the step validation map of the OCM cluster installation
// wizard. The embedded document is parsed once and reused.
func Default() (*Map, error) {
	defaultOnce.Do(func() {
		defaultMap, defaultErr = Load(defaultData)
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	if defaultMap == nil {
		return nil, wgerrors.New(wgerrors.ErrCodeInternal, "default step validation map not initialized")
	}
	return defaultMap, nil
}

// Load parses a YAML document into a Map. Unknown fields are rejected so a
// misspelled key cannot silently drop a gating rule.
func Load(data []byte) (*Map, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, wgerrors.New(wgerrors.ErrCodeInvalidConfig, "step validation map is empty")
		}
		return nil, wgerrors.Wrap(wgerrors.ErrCodeInvalidConfig, "failed to parse step validation map", err)
	}

	m, err := New(doc)
	if err != nil {
		return nil, err
	}

	slog.Debug("step validation map loaded",
		"name", m.Name(),
		"steps", len(m.doc.Order),
		"softValidations", len(m.soft))

	return m, nil
}

// LoadFile reads and parses the YAML document at path.
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := wgerrors.ErrCodeInvalidConfig
		if errors.Is(err, os.ErrNotExist) {
			code = wgerrors.ErrCodeNotFound
		}
		return nil, wgerrors.WrapWithContext(code, "failed to read step validation map", err,
			map[string]any{"path": path})
	}
	return Load(data)
}

// DefaultData returns a copy of the embedded default document.
func DefaultData() []byte {
	return bytes.Clone(defaultData)
}
