// Package telemetry wires OpenTelemetry tracing and the Prometheus registry
// used by the HTTP transport.
//
// A Telemetry is built once in main from [config.Telemetry]. Spans are
// always created so that W3C trace context flows through the service;
// whether they leave the process depends on the configured exporter
// ("none" or "stdout"). Shutdown flushes the exporter and must be called
// before the process exits.
package telemetry
