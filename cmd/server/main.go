package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shop-edge/internal/config"
	"github.com/MKhiriev/go-shop-edge/internal/handler"
	"github.com/MKhiriev/go-shop-edge/internal/logger"
	"github.com/MKhiriev/go-shop-edge/internal/server"
	"github.com/MKhiriev/go-shop-edge/internal/telemetry"
	"github.com/MKhiriev/go-shop-edge/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("go-shop-edge")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	log.Debug().Any("config", cfg).Str("version", buildInfo.BuildVersion()).Msg("received configs")

	if err = run(context.Background(), log, cfg); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
}

// run wires telemetry, handlers and the server and blocks until the server
// stops. Telemetry is flushed on every return path.
func run(ctx context.Context, log *logger.Logger, cfg *config.StructuredConfig, opts ...telemetry.Option) error {
	tel, err := telemetry.New(ctx, cfg.Telemetry, opts...)
	if err != nil {
		return fmt.Errorf("error creating telemetry: %w", err)
	}
	tel.Install()
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("error flushing telemetry")
		}
	}()

	handlers, err := handler.NewHandlers(cfg.Server, tel, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, tel, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	return srv.RunServer(ctx)
}
