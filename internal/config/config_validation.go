// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultAppName is used for logs and traces when APP_NAME is unset.
	DefaultAppName = "go-shop-edge"

	// DefaultHTTPAddress keeps the service on the loopback interface.
	DefaultHTTPAddress = "127.0.0.1:3000"

	// DefaultRequestTimeout bounds every inbound request.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultShutdownTimeout bounds graceful shutdown of all listeners.
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultRateBurst is used when rate limiting is on and no burst is set.
	DefaultRateBurst = 20

	// DefaultLogLevel is the zerolog level used when APP_LOG_LEVEL is unset.
	DefaultLogLevel = "debug"

	// TraceExporterNone disables span export.
	TraceExporterNone = "none"

	// TraceExporterStdout writes finished spans as JSON to stdout.
	TraceExporterStdout = "stdout"
)

// applyDefaults fills every setting that is still zero after all sources
// were merged.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.Name == "" {
		cfg.App.Name = DefaultAppName
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.RateBurst == 0 {
		cfg.Server.RateBurst = DefaultRateBurst
	}

	if cfg.Telemetry.TraceExporter == "" {
		cfg.Telemetry.TraceExporter = TraceExporterNone
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	if err := validateAddress(cfg.Server.HTTPAddress, true); err != nil {
		return fmt.Errorf("%w: http address: %w", ErrInvalidServerConfigs, err)
	}
	if err := validateAddress(cfg.Server.GRPCAddress, false); err != nil {
		return fmt.Errorf("%w: grpc address: %w", ErrInvalidServerConfigs, err)
	}
	if err := validateAddress(cfg.Server.MetricsAddress, false); err != nil {
		return fmt.Errorf("%w: metrics address: %w", ErrInvalidServerConfigs, err)
	}

	// a negative RequestTimeout is the explicit way to disable it
	if cfg.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", ErrInvalidServerConfigs)
	}
	if cfg.Server.RateLimit < 0 || cfg.Server.RateBurst < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidServerConfigs)
	}

	switch cfg.Telemetry.TraceExporter {
	case TraceExporterNone, TraceExporterStdout:
	default:
		return fmt.Errorf("%w: unknown trace exporter %q", ErrInvalidTelemetryConfigs, cfg.Telemetry.TraceExporter)
	}

	return nil
}

func validateAddress(address string, required bool) error {
	if address == "" {
		if required {
			return ErrEmptyAddress
		}
		return nil
	}

	_, _, err := net.SplitHostPort(address)
	return err
}
