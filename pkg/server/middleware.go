package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/google/uuid"

	wgerrors "github.com/openshift-assisted/wizard-gate/pkg/errors"
)

type contextKey string

const (
	contextKeyRequestID  contextKey = "requestID"
	contextKeyAPIVersion contextKey = "apiVersion"

	headerRequestID  = "X-Request-Id"
	headerAPIVersion = "X-API-Version"
)

// RequestID returns the request ID assigned by the server middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// APIVersion returns the negotiated API version of the request.
func APIVersion(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyAPIVersion).(string); ok {
		return v
	}
	return DefaultAPIVersion
}

// withMiddleware wraps an API handler with the standard middleware chain:
// recovery, request ID, API version, rate limiting, metrics and timeout.
func (s *Server) withMiddleware(path string, h http.HandlerFunc) http.HandlerFunc {
	return s.recoverMiddleware(
		s.requestIDMiddleware(
			s.versionMiddleware(
				s.rateLimitMiddleware(
					s.metricsMiddleware(path,
						s.timeoutMiddleware(h))))))
}

// timeoutBody is written by http.TimeoutHandler, which sends it as text/plain.
const timeoutBody = `{"code":"TIMEOUT","message":"Request timed out","retryable":true}`

func (s *Server) timeoutMiddleware(next http.HandlerFunc) http.HandlerFunc {
	if s.config.HandlerTimeout <= 0 {
		return next
	}
	return http.TimeoutHandler(next, s.config.HandlerTimeout, timeoutBody).ServeHTTP
}

func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		w.Header().Set(headerRequestID, requestID)

		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)
		next(w, r.WithContext(ctx))
	}
}

func (s *Server) versionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := negotiateAPIVersion(r)
		w.Header().Set(headerAPIVersion, version)

		ctx := context.WithValue(r.Context(), contextKeyAPIVersion, version)
		next(w, r.WithContext(ctx))
	}
}

func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			rateLimitRejectsTotal.Inc()
			w.Header().Set("Retry-After", "1")
			WriteError(w, r, http.StatusTooManyRequests, wgerrors.ErrCodeRateLimitExceeded,
				"Rate limit exceeded", true, map[string]interface{}{
					"limit": float64(s.config.RateLimit),
					"burst": s.config.RateLimitBurst,
				})
			return
		}
		next(w, r)
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (s *Server) metricsMiddleware(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		duration := time.Since(start)
		httpRequestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(path, r.Method).Observe(duration.Seconds())

		slog.Debug("request handled",
			"path", r.URL.Path,
			"method", r.Method,
			"status", rec.status,
			"duration", duration,
			"requestId", RequestID(r.Context()),
		)
	}
}

func (s *Server) recoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic while handling request",
					"path", r.URL.Path,
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()),
				)
				WriteError(w, r, http.StatusInternalServerError, wgerrors.ErrCodeInternal,
					"Internal server error", true, nil)
			}
		}()
		next(w, r)
	}
}
