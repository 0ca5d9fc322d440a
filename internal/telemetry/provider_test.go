package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDisabledReturnsNoop(t *testing.T) {
	tests := []struct {
		name     string
		enabled  string
		endpoint string
	}{
		{"no endpoint", "", ""},
		{"explicitly disabled", "false", "http://localhost:4318"},
		{"disabled any case", "FALSE", "http://localhost:4318"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("CHURN_OTEL_ENABLED", tc.enabled)
			t.Setenv("CHURN_OTEL_ENDPOINT", tc.endpoint)

			shutdown, err := Setup(context.Background(), "churn")
			require.NoError(t, err)
			require.NotNil(t, shutdown)
			assert.NoError(t, shutdown(context.Background()))
		})
	}
}

func TestSetupWithEndpoint(t *testing.T) {
	t.Setenv("CHURN_OTEL_ENABLED", "")
	t.Setenv("CHURN_OTEL_ENDPOINT", "http://127.0.0.1:1/v1/traces")

	shutdown, err := Setup(context.Background(), "churn-test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Nothing was recorded, so shutdown has nothing to flush.
	_ = shutdown(ctx)
}
