package server

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-shop-edge/internal/config"
	"github.com/MKhiriev/go-shop-edge/internal/handler"
	"github.com/MKhiriev/go-shop-edge/internal/logger"
	"github.com/MKhiriev/go-shop-edge/internal/telemetry"
)

type server struct {
	httpServer    *httpServer
	gRPCServer    *grpcServer
	metricsServer *httpServer

	shutdownTimeout time.Duration
	logger          *logger.Logger
}

// NewServer builds a listener for every enabled transport. The HTTP route
// table is validated here, so a duplicate route fails before anything binds.
func NewServer(handlers *handler.Handlers, tel *telemetry.Telemetry, cfg config.Server, logger *logger.Logger) (Server, error) {
	return newServer(handlers, tel, cfg, logger)
}

func newServer(handlers *handler.Handlers, tel *telemetry.Telemetry, cfg config.Server, logger *logger.Logger) (*server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
	if servers.shutdownTimeout <= 0 {
		servers.shutdownTimeout = config.DefaultShutdownTimeout
	}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		router, err := handlers.HTTP.Init()
		if err != nil {
			return nil, fmt.Errorf("error initializing HTTP routes: %w", err)
		}
		servers.httpServer = newHTTPServer(router, cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}
	if cfg.MetricsAddress != "" {
		servers.metricsServer = newMetricsServer(tel.Registry(), cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// components lists the enabled listeners in shutdown order: health goes
// NOT_SERVING first, metrics stay scrapeable until last.
func (s *server) components() []component {
	var cs []component
	if s.gRPCServer != nil {
		cs = append(cs, s.gRPCServer)
	}
	if s.httpServer != nil {
		cs = append(cs, s.httpServer)
	}
	if s.metricsServer != nil {
		cs = append(cs, s.metricsServer)
	}
	return cs
}

func (s *server) RunServer(ctx context.Context) error {
	if err := s.listen(); err != nil {
		return err
	}
	return s.serve(ctx)
}

func (s *server) Shutdown(ctx context.Context) error {
	var err error
	for _, c := range s.components() {
		err = errors.Join(err, c.shutdown(ctx))
	}
	return err
}

// listen binds every listener, releasing the ones already bound if any
// fails.
func (s *server) listen() error {
	cs := s.components()
	for i, c := range cs {
		if err := c.listen(); err != nil {
			ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
			defer cancel()
			for _, bound := range cs[:i] {
				_ = bound.shutdown(ctx)
			}
			return err
		}
	}
	return nil
}

func (s *server) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	cs := s.components()
	errCh := make(chan error, len(cs))

	// launch all created servers
	for _, c := range cs {
		s.logger.Info().Str("server", c.name()).Str("address", c.addr()).Msg("launching server")
		go func() {
			if err := c.serve(); err != nil {
				errCh <- fmt.Errorf("%s server: %w", c.name(), err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop requested, shutting down")
	case runErr = <-errCh:
		s.logger.Error().Err(runErr).Msg("server failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, err)
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return runErr
}
