package defaults

import "time"

// Handler limits.
const (
	// HandlerTimeout bounds the processing of a single API request.
	HandlerTimeout = 10 * time.Second

	// MaxRequestBodyBytes caps cluster payloads posted to the API.
	MaxRequestBodyBytes = 8 << 20
)

// Server timeouts.
const (
	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Kubernetes timeouts.
const (
	// KubernetesTimeout bounds a single ConfigMap read or write.
	KubernetesTimeout = 30 * time.Second
)

// HTTP client timeouts.
const (
	// HTTPClientTimeout bounds fetching a cluster payload over HTTP.
	HTTPClientTimeout = 30 * time.Second

	// HTTPMaxResponseBytes caps cluster payloads fetched over HTTP.
	HTTPMaxResponseBytes = MaxRequestBodyBytes
)

// Memoization.
const (
	// MemoSize is the number of step results the server keeps.
	MemoSize = 4096
)
