package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wgerrors "github.com/openshift-assisted/wizard-gate/pkg/errors"
)

func TestErrorCodeMapping(t *testing.T) {
	tests := []struct {
		code      wgerrors.ErrorCode
		status    int
		retryable bool
	}{
		{wgerrors.ErrCodeInvalidRequest, http.StatusBadRequest, false},
		{wgerrors.ErrCodeInvalidConfig, http.StatusBadRequest, false},
		{wgerrors.ErrCodeUnauthorized, http.StatusUnauthorized, false},
		{wgerrors.ErrCodeNotFound, http.StatusNotFound, false},
		{wgerrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed, false},
		{wgerrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests, true},
		{wgerrors.ErrCodeUnavailable, http.StatusServiceUnavailable, true},
		{wgerrors.ErrCodeTimeout, http.StatusGatewayTimeout, true},
		{wgerrors.ErrCodeInternal, http.StatusInternalServerError, true},
		{"SOMETHING_ELSE", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatusFromCode(tt.code))
			assert.Equal(t, tt.retryable, retryableFromCode(tt.code))
		})
	}
}

func TestMergeDetails(t *testing.T) {
	assert.Nil(t, mergeDetails(nil, nil))
	assert.Nil(t, mergeDetails(map[string]any{}, map[string]any{}))

	a := map[string]any{"step": "storage", "shared": "a"}
	b := map[string]any{"hostId": "h1", "shared": "b"}
	assert.Equal(t, map[string]any{"step": "storage", "hostId": "h1", "shared": "b"}, mergeDetails(a, b))
	assert.Equal(t, "a", a["shared"], "inputs are not modified")
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/status", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusBadRequest, wgerrors.ErrCodeInvalidRequest,
		"Missing required query parameter", false, map[string]any{"parameter": "step"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeErrorResponse(t, w)
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
	assert.Equal(t, "Missing required query parameter", resp.Message)
	assert.Equal(t, "req-123", resp.RequestID)
	assert.False(t, resp.Retryable)
	assert.Equal(t, "step", resp.Details["parameter"])
	assert.False(t, resp.Timestamp.IsZero())

	// Outside the middleware chain a request ID is generated.
	w = httptest.NewRecorder()
	WriteError(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound,
		wgerrors.ErrCodeNotFound, "Route not found", false, nil)
	assert.NotEmpty(t, decodeErrorResponse(t, w).RequestID)
}

func TestWriteErrorFromErr(t *testing.T) {
	unknownStep := wgerrors.NewWithContext(wgerrors.ErrCodeNotFound,
		`step "storag" has no entry in the step validation map`, map[string]any{"suggestion": "storage"})
	unreadable := wgerrors.WrapWithContext(wgerrors.ErrCodeUnavailable, "step map unavailable",
		errors.New("permission denied"), map[string]any{"path": "/etc/wizgate/steps.yaml"})

	tests := []struct {
		name      string
		err       error
		status    int
		code      string
		message   string
		retryable bool
		details   map[string]any
	}{
		{
			name:    "structured error keeps code and context",
			err:     unknownStep,
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: `step "storag" has no entry in the step validation map`,
			details: map[string]any{"suggestion": "storage", "extra": "yes"},
		},
		{
			name:      "cause is reported",
			err:       unreadable,
			status:    http.StatusServiceUnavailable,
			code:      "SERVICE_UNAVAILABLE",
			message:   "step map unavailable",
			retryable: true,
			details:   map[string]any{"path": "/etc/wizgate/steps.yaml", "error": "permission denied", "extra": "yes"},
		},
		{
			name:    "wrapped structured error",
			err:     fmt.Errorf("evaluating: %w", unknownStep),
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: `step "storag" has no entry in the step validation map`,
			details: map[string]any{"suggestion": "storage", "extra": "yes"},
		},
		{
			name:      "plain error falls back to internal",
			err:       errors.New("boom"),
			status:    http.StatusInternalServerError,
			code:      "INTERNAL_ERROR",
			message:   "fallback",
			retryable: true,
			details:   map[string]any{"error": "boom", "extra": "yes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteErrorFromErr(w, httptest.NewRequest(http.MethodPost, "/v1/status", nil), tt.err,
				"fallback", map[string]any{"extra": "yes"})

			require.Equal(t, tt.status, w.Code)
			resp := decodeErrorResponse(t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, tt.retryable, resp.Retryable)
			assert.Equal(t, tt.details, resp.Details)
		})
	}
}
