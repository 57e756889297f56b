package handler

import (
	"testing"

	"github.com/MKhiriev/go-shop-edge/internal/config"
	"github.com/MKhiriev/go-shop-edge/internal/logger"
	"github.com/MKhiriev/go-shop-edge/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLogger returns a no-op logger suitable for use in tests.
func newTestLogger() *logger.Logger {
	return logger.Nop()
}

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Server
		wantHTTP bool
		wantGRPC bool
	}{
		{
			name:     "both addresses",
			cfg:      config.Server{HTTPAddress: "127.0.0.1:3000", GRPCAddress: "127.0.0.1:9090"},
			wantHTTP: true,
			wantGRPC: true,
		},
		{
			name:     "only HTTP",
			cfg:      config.Server{HTTPAddress: "127.0.0.1:3000"},
			wantHTTP: true,
		},
		{
			name:     "only gRPC",
			cfg:      config.Server{GRPCAddress: "127.0.0.1:9090"},
			wantGRPC: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(tt.cfg, telemetry.Nop(), newTestLogger())

			require.NoError(t, err)
			require.NotNil(t, h)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}

// TestNewHandlers_NoAddresses verifies that when neither HTTPAddress nor
// GRPCAddress is configured, NewHandlers returns errNoHandlersAreCreated and
// a nil *Handlers.
func TestNewHandlers_NoAddresses(t *testing.T) {
	h, err := NewHandlers(config.Server{}, telemetry.Nop(), newTestLogger())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

// TestNewHandlers_MetricsConflict verifies that a failure to build the HTTP
// handler is reported instead of silently dropping the transport.
func TestNewHandlers_MetricsConflict(t *testing.T) {
	tel := telemetry.Nop()
	tel.Registry().MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_total",
		Help: "conflicting collector",
	}))

	h, err := NewHandlers(config.Server{HTTPAddress: "127.0.0.1:3000"}, tel, newTestLogger())

	require.Error(t, err)
	assert.Nil(t, h)
}

// TestNewHandlers_IndependentInstances verifies that two calls to NewHandlers
// produce independent *Handlers instances.
func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:3000", GRPCAddress: "127.0.0.1:9090"}

	h1, err1 := NewHandlers(cfg, telemetry.Nop(), newTestLogger())
	h2, err2 := NewHandlers(cfg, telemetry.Nop(), newTestLogger())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
	assert.NotSame(t, h1.GRPC, h2.GRPC)
}
