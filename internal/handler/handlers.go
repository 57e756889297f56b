package handler

import (
	"fmt"

	"github.com/MKhiriev/go-shop-edge/internal/config"
	"github.com/MKhiriev/go-shop-edge/internal/handler/grpc"
	"github.com/MKhiriev/go-shop-edge/internal/handler/http"
	"github.com/MKhiriev/go-shop-edge/internal/logger"
	"github.com/MKhiriev/go-shop-edge/internal/telemetry"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(cfg config.Server, tel *telemetry.Telemetry, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		h, err := http.NewHandler(cfg, tel, logger)
		if err != nil {
			return nil, fmt.Errorf("error creating HTTP handler: %w", err)
		}
		handlers.HTTP = h
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
