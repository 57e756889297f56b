package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-shop-edge/internal/logger"
)

// withLogging writes one access log line per request using the request
// scoped logger, so the line carries the trace_id set by withTraceID.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()
		route := h.routeLabel(r)

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		status := lw.statusCode()
		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Warn()
		}

		event.
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Str("route", route).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Msg("request served")
	})
}
