package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-shop-edge/internal/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// withTracing wraps the request in a server span named "METHOD route" and
// propagates W3C trace context in both directions.
func (h *Handler) withTracing(next http.Handler) http.Handler {
	tracer := h.telemetry.Tracer()
	propagator := h.telemetry.Propagator()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := h.routeLabel(r)
		ctx, span := tracer.Start(ctx, fmt.Sprintf("%s %s", r.Method, route),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.host", r.Host),
				attribute.String("http.user_agent", r.UserAgent()),
				attribute.String("http.remote_addr", r.RemoteAddr),
			),
		)
		defer span.End()

		if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
			span.SetAttributes(attribute.String("request.trace_id", traceID))
		}

		propagator.Inject(ctx, propagation.HeaderCarrier(w.Header()))

		start := time.Now()
		rw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r.WithContext(ctx))

		status := rw.statusCode()
		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.Int("http.response_size", rw.size),
			attribute.Int64("http.latency_ms", time.Since(start).Milliseconds()),
		)

		switch {
		case ctx.Err() != nil:
			cause := context.Cause(ctx)
			span.RecordError(cause)
			span.SetStatus(codes.Error, cause.Error())
		case status >= http.StatusBadRequest:
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
		}
	})
}
