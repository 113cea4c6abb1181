package telemetry

import (
	"context"
	"testing"

	"github.com/hydra-janus/batch-service/internal/config"
	"github.com/stretchr/testify/require"
)

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), config.TracingConfig{Enabled: false}, "test")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestInitTracingNoneExporter(t *testing.T) {
	ctx := context.Background()
	shutdown, err := InitTracing(ctx, config.TracingConfig{
		Enabled:     true,
		Exporter:    "none",
		SampleRate:  1.0,
		ServiceName: "batch-service-test",
	}, "test")
	require.NoError(t, err)
	defer func() { require.NoError(t, shutdown(ctx)) }()

	_, span := Tracer("test").Start(ctx, "op")
	require.True(t, span.SpanContext().IsValid())
	span.End()
}

func TestInitTracingRejectsBadConfig(t *testing.T) {
	ctx := context.Background()

	_, err := InitTracing(ctx, config.TracingConfig{Enabled: true, Exporter: "none", SampleRate: 2}, "test")
	require.Error(t, err)

	_, err = InitTracing(ctx, config.TracingConfig{Enabled: true, Exporter: "jaeger", SampleRate: 1}, "test")
	require.Error(t, err)
	require.Contains(t, err.Error(), "jaeger")
}
