// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-shop-edge/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/MKhiriev/go-shop-edge"

// Telemetry bundles the tracer provider, the context propagator and the
// Prometheus registry shared by the transport layer.
type Telemetry struct {
	tracerProvider trace.TracerProvider
	propagator     propagation.TextMapPropagator
	registry       *prometheus.Registry

	shutdownFuncs []func(context.Context) error
}

// Option customises a Telemetry built by New.
type Option func(*options)

type options struct {
	writer     io.Writer
	processors []sdktrace.SpanProcessor
}

// WithWriter sets where the stdout exporter writes spans. Defaults to os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithSpanProcessor registers an additional span processor on the tracer
// provider, e.g. a tracetest.SpanRecorder.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(o *options) {
		o.processors = append(o.processors, sp)
	}
}

// New builds a Telemetry from cfg. Spans are always created so trace context
// is propagated; they are exported only when cfg.TraceExporter is "stdout".
func New(ctx context.Context, cfg config.Telemetry, opts ...Option) (*Telemetry, error) {
	o := &options{writer: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	t := &Telemetry{
		propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
		registry: newRegistry(),
	}

	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	}

	switch cfg.TraceExporter {
	case config.TraceExporterStdout:
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(o.writer))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExporterSetup, err)
		}
		providerOpts = append(providerOpts, sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(0)))
	case config.TraceExporterNone, "":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, cfg.TraceExporter)
	}

	for _, sp := range o.processors {
		providerOpts = append(providerOpts, sdktrace.WithSpanProcessor(sp))
	}

	tracerProvider := sdktrace.NewTracerProvider(providerOpts...)
	t.tracerProvider = tracerProvider
	t.shutdownFuncs = append(t.shutdownFuncs, tracerProvider.Shutdown)

	return t, nil
}

// Nop returns a Telemetry whose tracer records nothing and whose registry
// is private to the caller. It is intended for tests.
func Nop() *Telemetry {
	return &Telemetry{
		tracerProvider: noop.NewTracerProvider(),
		propagator:     propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}),
		registry:       prometheus.NewRegistry(),
	}
}

// Install makes the tracer provider and propagator the process-wide otel
// defaults.
func (t *Telemetry) Install() {
	otel.SetTracerProvider(t.tracerProvider)
	otel.SetTextMapPropagator(t.propagator)
}

// Tracer returns the tracer used for inbound request spans.
func (t *Telemetry) Tracer() trace.Tracer {
	return t.tracerProvider.Tracer(instrumentationName)
}

// Propagator returns the W3C trace context propagator.
func (t *Telemetry) Propagator() propagation.TextMapPropagator {
	return t.propagator
}

// Registry returns the Prometheus registry request metrics are registered in.
func (t *Telemetry) Registry() *prometheus.Registry {
	return t.registry
}

// Shutdown flushes pending spans and releases exporters. It is safe to call
// more than once.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var err error
	for _, fn := range t.shutdownFuncs {
		err = errors.Join(err, fn(ctx))
	}
	t.shutdownFuncs = nil

	return err
}

func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}
