// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-shop-edge service. It aggregates all sub-configurations and is
// populated by merging values from a .env file, environment variables,
// command-line flags, and an optional JSON or TOML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the service name,
	// version and log level.
	App App `envPrefix:"APP_"`

	// Server holds network address, timeout and rate limiting settings for
	// the HTTP, gRPC and metrics listeners.
	Server Server `envPrefix:"SERVER_"`

	// Telemetry holds tracing settings.
	Telemetry Telemetry `envPrefix:"TELEMETRY_"`

	// FilePath is the optional path to a JSON or TOML configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Name identifies the service in logs and traces.
	// Env: APP_NAME
	Name string `env:"NAME"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the minimal zerolog level that is emitted
	// ("debug", "info", "warn", "error").
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "127.0.0.1:3000").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health listener.
	// Empty disables the listener.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// MetricsAddress is the TCP address serving Prometheus metrics at
	// /metrics. Empty disables the listener.
	// Env: SERVER_METRICS_ADDRESS
	MetricsAddress string `env:"METRICS_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server answers 408 (e.g. "10s"). Unset means
	// DefaultRequestTimeout; a negative value turns the timeout off.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds the graceful shutdown of all listeners.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// RateLimit is the sustained number of requests per second allowed
	// for a single client IP. Zero disables rate limiting.
	// Env: SERVER_RATE_LIMIT
	RateLimit float64 `env:"RATE_LIMIT"`

	// RateBurst is the number of requests a client IP may burst above
	// RateLimit.
	// Env: SERVER_RATE_BURST
	RateBurst int `env:"RATE_BURST"`

	// TrustProxy makes the server take the client IP from X-Forwarded-For,
	// X-Real-IP or True-Client-IP. Enable it only behind a proxy that
	// overwrites those headers.
	// Env: SERVER_TRUST_PROXY
	TrustProxy bool `env:"TRUST_PROXY"`
}

// Telemetry holds tracing configuration.
type Telemetry struct {
	// TraceExporter selects where finished spans go: "none" or "stdout".
	// Env: TELEMETRY_TRACE_EXPORTER
	TraceExporter string `env:"TRACE_EXPORTER"`

	// ServiceName is reported as the tracer name. Defaults to App.Name.
	// Env: TELEMETRY_SERVICE_NAME
	ServiceName string `env:"SERVICE_NAME"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. .env file in the working directory
//  2. Environment variables
//  3. Command-line flags
//  4. JSON or TOML file (path resolved from sources 1-3)
//
// Defaults are applied to whatever is still unset after merging.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(dotEnvFile).
		withEnv().
		withFlags().
		withFile().
		build()
}
