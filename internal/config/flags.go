package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from the process command line.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc health server address in format [host]:[port]
//	-metrics-address metrics server address in format [host]:[port]
//	-c/-config json or toml file path with configs
//	-request-timeout request timeout (e.g., "10s", "1m")
//	-shutdown-timeout graceful shutdown timeout (e.g., "10s")
//	-rate-limit requests per second per client IP, 0 disables
//	-rate-burst burst size per client IP
//	-trust-proxy take the client IP from forwarding headers
//	-trace-exporter span exporter ("none", "stdout")
//	-log-level log level ("debug", "info", ...)
func ParseFlags() *StructuredConfig {
	return parseFlagSet(flag.CommandLine, os.Args[1:])
}

func parseFlagSet(fs *flag.FlagSet, args []string) *StructuredConfig {
	var serverAddress, grpcServerAddress, metricsAddress NetAddress
	var configPath string
	var requestTimeout, shutdownTimeout time.Duration
	var rateLimit float64
	var rateBurst int
	var trustProxy bool
	var traceExporter string
	var logLevel string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc health server address host:port")
	fs.Var(&metricsAddress, "metrics-address", "Net metrics server address host:port")
	fs.StringVar(&configPath, "c", "", "JSON or TOML config file path")
	fs.StringVar(&configPath, "config", "", "JSON or TOML config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s, 1m)")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout (e.g., 10s)")
	fs.Float64Var(&rateLimit, "rate-limit", 0, "Requests per second per client IP (0 disables)")
	fs.IntVar(&rateBurst, "rate-burst", 0, "Burst size per client IP")
	fs.BoolVar(&trustProxy, "trust-proxy", false, "Take the client IP from X-Forwarded-For / X-Real-IP")
	fs.StringVar(&traceExporter, "trace-exporter", "", "Span exporter: none, stdout")
	fs.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	// with flag.ExitOnError (the CommandLine default) a bad flag exits here
	_ = fs.Parse(args)

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Server: Server{
			HTTPAddress:     serverAddress.String(),
			GRPCAddress:     grpcServerAddress.String(),
			MetricsAddress:  metricsAddress.String(),
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: shutdownTimeout,
			RateLimit:       rateLimit,
			RateBurst:       rateBurst,
			TrustProxy:      trustProxy,
		},
		Telemetry: Telemetry{
			TraceExporter: traceExporter,
		},
		FilePath: configPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number is a positive integer up to 65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
