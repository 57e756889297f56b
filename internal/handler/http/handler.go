package http

import (
	"fmt"

	"github.com/MKhiriev/go-shop-edge/internal/config"
	"github.com/MKhiriev/go-shop-edge/internal/logger"
	"github.com/MKhiriev/go-shop-edge/internal/telemetry"
	"github.com/MKhiriev/go-shop-edge/internal/utils"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

type Handler struct {
	cfg       config.Server
	telemetry *telemetry.Telemetry
	metrics   *metrics
	visitors  *visitors
	traceIDs  *utils.UUIDGenerator

	// router is set by Init and used to resolve route patterns for spans
	// and metric labels.
	router *chi.Mux

	logger *logger.Logger
}

func NewHandler(cfg config.Server, tel *telemetry.Telemetry, logger *logger.Logger) (*Handler, error) {
	m, err := newMetrics(tel.Registry())
	if err != nil {
		return nil, fmt.Errorf("error registering http metrics: %w", err)
	}

	h := &Handler{
		cfg:       cfg,
		telemetry: tel,
		metrics:   m,
		traceIDs:  utils.NewUUIDGenerator(),
		logger:    logger,
	}

	if cfg.RateLimit > 0 {
		h.visitors = newVisitors(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	logger.Info().
		Dur("request_timeout", cfg.RequestTimeout).
		Float64("rate_limit", cfg.RateLimit).
		Msg("http handler created")
	return h, nil
}
