package grpc

import (
	"github.com/MKhiriev/go-shop-edge/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name the edge service reports under in the health
// service. The empty name reports the status of the whole process.
const ServiceName = "shop.edge.v1.Edge"

// Handler is the root gRPC transport handler.
//
// It exposes grpc.health.v1.Health so that load balancers and orchestrators
// can probe the process on a port separate from the public HTTP routes.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] whose health service reports SERVING for
// both the process and [ServiceName].
func NewHandler(logger *logger.Logger) *Handler {
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		health: hs,
		logger: logger,
	}
}

// Register attaches the handler's services to s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Shutdown flips every status to NOT_SERVING. Watchers are notified, and
// later status changes are ignored.
func (h *Handler) Shutdown() {
	h.logger.Info().Msg("health service reports NOT_SERVING")
	h.health.Shutdown()
}
