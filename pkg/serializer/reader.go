package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openshift-assisted/wizard-gate/pkg/defaults"
)

// FromFile loads a T from path. See FromFileWithKubeconfig.
func FromFile[T any](path string) (*T, error) {
	return FromFileWithKubeconfig[T](path, "")
}

// FromFileWithKubeconfig loads a T from a file path, "-" for stdin, an
// http(s) URL, or a cm://namespace/name ConfigMap reached with kubeconfig.
// JSON and YAML content are both accepted.
func FromFileWithKubeconfig[T any](path, kubeconfig string) (*T, error) {
	data, err := readSource(context.Background(), path, kubeconfig)
	if err != nil {
		return nil, err
	}

	var v T
	if err := Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &v, nil
}

// Unmarshal decodes JSON or YAML content into v. Content starting with '{' or
// '[' is decoded as JSON.
func Unmarshal(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty document")
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return json.Unmarshal(trimmed, v)
	}
	return yaml.Unmarshal(trimmed, v)
}

func readSource(ctx context.Context, path, kubeconfig string) ([]byte, error) {
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return nil, fmt.Errorf("input path is required")
	case path == StdoutURI:
		return readLimited(os.Stdin, defaults.MaxRequestBodyBytes, "stdin")
	case strings.HasPrefix(path, ConfigMapURIScheme):
		return readConfigMap(ctx, path, kubeconfig)
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return readURL(ctx, path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return data, nil
	}
}

func readURL(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.HTTPClientTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", url, resp.Status)
	}
	return readLimited(resp.Body, defaults.HTTPMaxResponseBytes, url)
}

// readLimited reads r fully and fails when it holds more than limit bytes.
func readLimited(r io.Reader, limit int64, source string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("input from %s exceeds %d bytes", source, limit)
	}
	return data, nil
}
