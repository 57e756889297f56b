package server

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-shop-edge/internal/config"
	"github.com/MKhiriev/go-shop-edge/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second

	// writeTimeoutGrace lets a 408 produced at RequestTimeout still reach
	// the client before the connection write deadline.
	writeTimeoutGrace = 5 * time.Second

	metricsPath = "/metrics"
)

type httpServer struct {
	role     string
	server   *http.Server
	listener net.Listener

	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	var writeTimeout time.Duration
	if cfg.RequestTimeout > 0 {
		writeTimeout = cfg.RequestTimeout + writeTimeoutGrace
	}

	return &httpServer{
		role: "http",
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			ErrorLog:          stdlog.New(logger, "", 0),
		},
		logger: logger,
	}
}

// newMetricsServer serves the Prometheus text format for registry at
// /metrics. Nothing else is routed on this listener.
func newMetricsServer(registry *prometheus.Registry, cfg config.Server, logger *logger.Logger) *httpServer {
	errorLog := stdlog.New(logger, "", 0)

	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: errorLog,
		Registry: registry,
	}))

	return &httpServer{
		role: "metrics",
		server: &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
			ErrorLog:          errorLog,
		},
		logger: logger,
	}
}

func (h *httpServer) name() string {
	return h.role
}

func (h *httpServer) addr() string {
	if h.listener != nil {
		return h.listener.Addr().String()
	}
	return h.server.Addr
}

func (h *httpServer) listen() error {
	l, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", errListen, h.role, h.server.Addr, err)
	}
	h.listener = l
	return nil
}

func (h *httpServer) serve() error {
	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *httpServer) shutdown(ctx context.Context) error {
	h.logger.Info().Str("server", h.role).Msg("shutting down")
	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s server shutdown: %w", h.role, err)
	}
	return nil
}
