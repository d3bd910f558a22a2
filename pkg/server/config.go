package server

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/openshift-assisted/wizard-gate/pkg/defaults"
)

// Config holds the server configuration.
type Config struct {
	Address string
	Port    int

	// RateLimit is in requests per second across all API routes.
	RateLimit      rate.Limit
	RateLimitBurst int

	// HandlerTimeout bounds a single API request.
	HandlerTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	LogLevel string
}

// DefaultConfig returns the defaults overridden by PORT, LOG_LEVEL,
// RATE_LIMIT, RATE_LIMIT_BURST and HANDLER_TIMEOUT.
func DefaultConfig() *Config {
	cfg := &Config{
		Address:         "",
		Port:            8080,
		RateLimit:       100, // 100 req/s
		RateLimitBurst:  200, // burst of 200
		HandlerTimeout:  defaults.HandlerTimeout,
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
		LogLevel:        slog.LevelInfo.String(),
	}

	// Override with environment variables if set
	if portStr := os.Getenv("PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}

	if logLevelStr := os.Getenv("LOG_LEVEL"); logLevelStr != "" {
		cfg.LogLevel = logLevelStr
	}

	if limitStr := os.Getenv("RATE_LIMIT"); limitStr != "" {
		if limit, err := strconv.ParseFloat(limitStr, 64); err == nil && limit > 0 {
			cfg.RateLimit = rate.Limit(limit)
		} else {
			slog.Warn("ignoring invalid RATE_LIMIT", "value", limitStr)
		}
	}

	if burstStr := os.Getenv("RATE_LIMIT_BURST"); burstStr != "" {
		if burst, err := strconv.Atoi(burstStr); err == nil && burst > 0 {
			cfg.RateLimitBurst = burst
		} else {
			slog.Warn("ignoring invalid RATE_LIMIT_BURST", "value", burstStr)
		}
	}

	if timeoutStr := os.Getenv("HANDLER_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil && timeout > 0 {
			cfg.HandlerTimeout = timeout
		} else {
			slog.Warn("ignoring invalid HANDLER_TIMEOUT", "value", timeoutStr)
		}
	}

	return cfg
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}
