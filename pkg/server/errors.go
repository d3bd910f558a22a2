package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	wgerrors "github.com/openshift-assisted/wizard-gate/pkg/errors"
	"github.com/openshift-assisted/wizard-gate/pkg/serializer"
)

// ErrorResponse is the body of every error returned by the API.
type ErrorResponse struct {
	Code      string                 `json:"code" yaml:"code"`
	Message   string                 `json:"message" yaml:"message"`
	Details   map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string                 `json:"requestId" yaml:"requestId"`
	Timestamp time.Time              `json:"timestamp" yaml:"timestamp"`
	Retryable bool                   `json:"retryable" yaml:"retryable"`
}

// WriteError writes an ErrorResponse with the request ID of r.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code wgerrors.ErrorCode, message string, retryable bool, details map[string]interface{}) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr maps err to an ErrorResponse. Structured errors keep their
// code, message and context; anything else is reported as an internal error
// with fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, extraDetails map[string]interface{}) {

	var se *wgerrors.StructuredError
	if errors.As(err, &se) {
		details := mergeDetails(se.Context, extraDetails)
		if se.Cause != nil {
			if details == nil {
				details = map[string]any{}
			}
			details["error"] = se.Cause.Error()
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message,
			retryableFromCode(se.Code), details)
		return
	}

	details := mergeDetails(extraDetails, nil)
	if details == nil {
		details = map[string]any{}
	}
	details["error"] = err.Error()
	WriteError(w, r, http.StatusInternalServerError, wgerrors.ErrCodeInternal, fallbackMessage,
		retryableFromCode(wgerrors.ErrCodeInternal), details)
}

// HTTPStatusFromCode maps an error code to an HTTP status code.
func HTTPStatusFromCode(code wgerrors.ErrorCode) int {
	switch code {
	case wgerrors.ErrCodeInvalidRequest, wgerrors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case wgerrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case wgerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case wgerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case wgerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case wgerrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case wgerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code wgerrors.ErrorCode) bool {
	switch code {
	case wgerrors.ErrCodeTimeout, wgerrors.ErrCodeUnavailable,
		wgerrors.ErrCodeRateLimitExceeded, wgerrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map holding a then b; b wins on conflicts.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
