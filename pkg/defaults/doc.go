// Package defaults provides centralized configuration constants for wizgate.
//
// Timeouts and limits are grouped by the component that uses them:
//
//   - Handler limits: request body size and per-request timeout
//   - Server timeouts: HTTP server configuration and graceful shutdown
//   - Kubernetes timeouts: ConfigMap reads and writes
//   - HTTP client timeouts: fetching cluster payloads from a URL
//
// Import and use constants directly:
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.KubernetesTimeout)
//	defer cancel()
package defaults
