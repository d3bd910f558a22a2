package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wgerrors "github.com/openshift-assisted/wizard-gate/pkg/errors"
	"github.com/openshift-assisted/wizard-gate/pkg/server"
	"github.com/openshift-assisted/wizard-gate/pkg/stepmap"
)

func TestRoutes_EmbeddedMap(t *testing.T) {
	routes, err := Routes("")
	require.NoError(t, err)

	for _, path := range []string{"/v1/status", "/v1/report", "/v1/first-step", "/v1/route", "/v1/steps"} {
		assert.Contains(t, routes, path)
	}
}

func TestRoutes_StepMapFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wizard.yaml")
	require.NoError(t, os.WriteFile(path, stepmap.DefaultData(), 0o600))

	routes, err := Routes(path)
	require.NoError(t, err)
	assert.Len(t, routes, 5)

	_, err = Routes(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, wgerrors.IsCode(err, wgerrors.ErrCodeNotFound))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("stepz: []\n"), 0o600))
	_, err = Routes(bad)
	require.Error(t, err)
	assert.True(t, wgerrors.IsCode(err, wgerrors.ErrCodeInvalidConfig))
}

func TestServerIntegration(t *testing.T) {
	routes, err := Routes("")
	require.NoError(t, err)

	ts := httptest.NewServer(server.New(server.WithHandler(routes)).Handler())
	defer ts.Close()

	body := `{"id": "c1", "status": "ready"}`
	resp, err := http.Post(ts.URL+"/v1/status?step=review", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	steps, err := http.Get(ts.URL + "/v1/steps")
	require.NoError(t, err)
	defer steps.Body.Close()
	assert.Equal(t, http.StatusOK, steps.StatusCode)

	missing, err := http.Get(ts.URL + "/v1/recipes")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wizgate.env")
	require.NoError(t, os.WriteFile(path, []byte("WIZGATE_TEST_FROM_FILE=file\nWIZGATE_TEST_PRESET=file\n"), 0o600))

	t.Setenv("WIZGATE_TEST_PRESET", "env")
	t.Setenv("WIZGATE_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("WIZGATE_TEST_FROM_FILE"))

	loadEnvFile(path)
	assert.Equal(t, "file", os.Getenv("WIZGATE_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("WIZGATE_TEST_PRESET"), "existing variables win")

	// A missing file is ignored.
	loadEnvFile(filepath.Join(dir, "missing.env"))
}

func TestStepMapSource(t *testing.T) {
	assert.Equal(t, "embedded", stepMapSource(""))
	assert.Equal(t, "/etc/wizgate/map.yaml", stepMapSource("/etc/wizgate/map.yaml"))
}

func TestStepMapCheck(t *testing.T) {
	assert.Nil(t, stepMapCheck(""), "embedded map needs no check")

	path := filepath.Join(t.TempDir(), "wizard.yaml")
	require.NoError(t, os.WriteFile(path, stepmap.DefaultData(), 0o600))

	check := stepMapCheck(path)
	require.NotNil(t, check)
	ctx := context.Background()
	require.NoError(t, check(ctx))

	require.NoError(t, os.WriteFile(path, append(stepmap.DefaultData(), "\n# edited\n"...), 0o600))
	err := check(ctx)
	require.Error(t, err)
	assert.True(t, wgerrors.IsCode(err, wgerrors.ErrCodeUnavailable))
	assert.Contains(t, err.Error(), "changed on disk")

	require.NoError(t, os.Remove(path))
	err = check(ctx)
	require.Error(t, err)
	assert.True(t, wgerrors.IsCode(err, wgerrors.ErrCodeUnavailable))
}

func TestStepMapCheck_ServerReadiness(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wizard.yaml")
	require.NoError(t, os.WriteFile(path, stepmap.DefaultData(), 0o600))

	s := server.New(server.WithReadinessCheck("step-map", stepMapCheck(path)))
	s.SetReady(true)
	h := s.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, os.WriteFile(path, []byte("name: other\n"), 0o600))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "step-map")
}
