package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/MKhiriev/go-shop-edge/internal/config"
	myGRPC "github.com/MKhiriev/go-shop-edge/internal/handler/grpc"
	"github.com/MKhiriev/go-shop-edge/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

type grpcServer struct {
	handler *myGRPC.Handler

	address         string
	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(unaryLogging(logger)))
	handler.Register(server)

	return &grpcServer{
		handler: handler,
		address: cfg.GRPCAddress,
		server:  server,
		logger:  logger,
	}
}

func (g *grpcServer) name() string {
	return "grpc"
}

func (g *grpcServer) addr() string {
	if g.gRPCNetListener != nil {
		return g.gRPCNetListener.Addr().String()
	}
	return g.address
}

func (g *grpcServer) listen() error {
	l, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("%w: grpc %s: %w", errListen, g.address, err)
	}
	g.gRPCNetListener = l
	return nil
}

func (g *grpcServer) serve() error {
	if err := g.server.Serve(g.gRPCNetListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// shutdown marks the health service NOT_SERVING and drains in-flight RPCs.
// If ctx ends first, remaining connections are closed forcibly.
func (g *grpcServer) shutdown(ctx context.Context) error {
	g.logger.Info().Str("server", g.name()).Msg("shutting down")
	g.handler.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		return fmt.Errorf("grpc server shutdown: %w", ctx.Err())
	}
}

// unaryLogging logs every unary call with its status code and duration.
func unaryLogging(logger *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		logger.Debug().
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("duration", time.Since(start)).
			Msg("grpc call")

		return resp, err
	}
}
