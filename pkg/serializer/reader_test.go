package serializer

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/openshift-assisted/wizard-gate/pkg/defaults"
)

const stepYAML = `name: host-discovery
findings: 4
`

func TestFromFile_FileFormats(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "step.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(stepYAML), 0o600))
	jsonPath := filepath.Join(dir, "step.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`  {"name":"review","findings":1}`), 0o600))

	got, err := FromFile[testStep](yamlPath)
	require.NoError(t, err)
	assert.Equal(t, testStep{Name: "host-discovery", Findings: 4}, *got)

	got, err = FromFile[testStep](jsonPath)
	require.NoError(t, err)
	assert.Equal(t, testStep{Name: "review", Findings: 1}, *got)
}

func TestFromFile_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"name":`), 0o600))

	tests := []struct {
		name string
		path string
		want string
	}{
		{"no path", "", "input path is required"},
		{"missing file", filepath.Join(dir, "missing.yaml"), "failed to read"},
		{"empty document", empty, "empty document"},
		{"malformed json", broken, "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromFile[testStep](tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFromFile_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/step" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(stepYAML))
	}))
	defer srv.Close()

	got, err := FromFile[testStep](srv.URL + "/step")
	require.NoError(t, err)
	assert.Equal(t, "host-discovery", got.Name)

	_, err = FromFile[testStep](srv.URL + "/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestFromFile_URLTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte{' '}, defaults.HTTPMaxResponseBytes+1))
	}))
	defer srv.Close()

	_, err := FromFile[testStep](srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestReadLimited(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"under limit", "abc", false},
		{"at limit", "abcd", false},
		{"over limit", "abcde", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := readLimited(strings.NewReader(tt.input), 4, "stdin")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "input from stdin exceeds 4 bytes")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, string(data))
		})
	}
}

func TestFromFileWithKubeconfig_ConfigMap(t *testing.T) {
	useFakeClient(t, &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "snapshot", Namespace: "assisted"},
		Data:       map[string]string{"wizgate.json": `{"name":"networking","findings":2}`},
	})

	got, err := FromFileWithKubeconfig[testStep]("cm://assisted/snapshot", "")
	require.NoError(t, err)
	assert.Equal(t, testStep{Name: "networking", Findings: 2}, *got)
}
