package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestHealthReporter_Probe(t *testing.T) {
	ctx := context.Background()
	storeUp := true
	reporter := NewHealthReporter(map[string]Check{
		"store": func(ctx context.Context) error {
			if storeUp {
				return nil
			}
			return errors.New("connection refused")
		},
	}, time.Second)

	t.Run("Serving", func(t *testing.T) {
		assert.True(t, reporter.Probe(ctx))
		resp, err := reporter.server.Check(ctx, &healthpb.HealthCheckRequest{Service: ""})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
	})

	t.Run("Store down", func(t *testing.T) {
		storeUp = false
		assert.False(t, reporter.Probe(ctx))
		resp, err := reporter.server.Check(ctx, &healthpb.HealthCheckRequest{Service: "store"})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
		resp, err = reporter.server.Check(ctx, &healthpb.HealthCheckRequest{Service: ""})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
	})
}
