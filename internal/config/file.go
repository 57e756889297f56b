package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// StructuredFileConfig mirrors [StructuredConfig] in the layout used by
// JSON and TOML config files.
type StructuredFileConfig struct {
	App struct {
		Name     string `json:"name" toml:"name"`
		Version  string `json:"version" toml:"version"`
		LogLevel string `json:"log_level" toml:"log_level"`
	} `json:"app,omitempty" toml:"app"`

	Server struct {
		HTTPAddress     string   `json:"http_address" toml:"http_address"`
		GRPCAddress     string   `json:"grpc_address" toml:"grpc_address"`
		MetricsAddress  string   `json:"metrics_address" toml:"metrics_address"`
		RequestTimeout  Duration `json:"request_timeout" toml:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout" toml:"shutdown_timeout"`
		RateLimit       float64  `json:"rate_limit" toml:"rate_limit"`
		RateBurst       int      `json:"rate_burst" toml:"rate_burst"`
		TrustProxy      bool     `json:"trust_proxy" toml:"trust_proxy"`
	} `json:"server,omitempty" toml:"server"`

	Telemetry struct {
		TraceExporter string `json:"trace_exporter" toml:"trace_exporter"`
		ServiceName   string `json:"service_name" toml:"service_name"`
	} `json:"telemetry,omitempty" toml:"telemetry"`
}

// parseFile decodes the config file at path. The format is picked from the
// file extension: ".json" or ".toml".
func parseFile(path string) (*StructuredConfig, error) {
	var decode func(io.Reader, *StructuredFileConfig) error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		decode = func(r io.Reader, v *StructuredFileConfig) error {
			return json.NewDecoder(r).Decode(v)
		}
	case ".toml":
		decode = func(r io.Reader, v *StructuredFileConfig) error {
			return toml.NewDecoder(r).Decode(v)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFile, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}
	defer file.Close()

	var fileCfg StructuredFileConfig
	if err := decode(file, &fileCfg); err != nil {
		return nil, fmt.Errorf("error decoding file configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:     fileCfg.App.Name,
			Version:  fileCfg.App.Version,
			LogLevel: fileCfg.App.LogLevel,
		},
		Server: Server{
			HTTPAddress:     fileCfg.Server.HTTPAddress,
			GRPCAddress:     fileCfg.Server.GRPCAddress,
			MetricsAddress:  fileCfg.Server.MetricsAddress,
			RequestTimeout:  time.Duration(fileCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(fileCfg.Server.ShutdownTimeout),
			RateLimit:       fileCfg.Server.RateLimit,
			RateBurst:       fileCfg.Server.RateBurst,
			TrustProxy:      fileCfg.Server.TrustProxy,
		},
		Telemetry: Telemetry{
			TraceExporter: fileCfg.Telemetry.TraceExporter,
			ServiceName:   fileCfg.Telemetry.ServiceName,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h", "30s" in both JSON and TOML files.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d *Duration) UnmarshalText(text []byte) error {
	tmp, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
