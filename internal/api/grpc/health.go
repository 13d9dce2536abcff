package grpc

import (
	"context"
	"time"

	"builderclub-backend/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Check probes one dependency. A nil error means serving.
type Check func(ctx context.Context) error

// HealthReporter runs named checks and publishes the result through the
// standard gRPC health service. The overall ("") status is serving only
// when every check passes.
type HealthReporter struct {
	server  *health.Server
	checks  map[string]Check
	timeout time.Duration
}

func NewHealthReporter(checks map[string]Check, timeout time.Duration) *HealthReporter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HealthReporter{server: health.NewServer(), checks: checks, timeout: timeout}
}

// Probe runs every check once and updates the published statuses.
func (h *HealthReporter) Probe(ctx context.Context) bool {
	healthy := true
	for name, check := range h.checks {
		cctx, cancel := context.WithTimeout(ctx, h.timeout)
		err := check(cctx)
		cancel()

		status := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			healthy = false
			status = healthpb.HealthCheckResponse_NOT_SERVING
			logger.Warn("Health check failed", "check", name, "error", err)
		}
		h.server.SetServingStatus(name, status)
	}

	overall := healthpb.HealthCheckResponse_SERVING
	if !healthy {
		overall = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus("", overall)
	return healthy
}

// Run probes on every tick until ctx is done, then marks everything as not
// serving.
func (h *HealthReporter) Run(ctx context.Context, interval time.Duration) {
	h.Probe(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
			h.Probe(ctx)
		}
	}
}

// NewServer builds the side-port gRPC server with the health service and
// reflection for grpcurl.
func NewServer(reporter *HealthReporter, opts ...grpc.ServerOption) *grpc.Server {
	s := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(s, reporter.server)
	reflection.Register(s)
	return s
}
