package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an unknown log level).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid listener settings
	// (for example, a malformed address or a negative timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidTelemetryConfigs indicates invalid tracing settings.
	ErrInvalidTelemetryConfigs = errors.New("invalid telemetry configuration")
	// ErrEmptyAddress is returned when a required listener address is empty.
	ErrEmptyAddress = errors.New("address is empty")
	// ErrUnsupportedConfigFile is returned for config files that are
	// neither .json nor .toml.
	ErrUnsupportedConfigFile = errors.New("unsupported config file extension")
)
