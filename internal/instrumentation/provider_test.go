package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false

	p, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	require.NotNil(t, p.Metrics())

	// No-op recorder must not panic.
	p.Metrics().RecordMessagesFetched(context.Background(), 3)
	p.Metrics().RecordRedactions(context.Background(), "ssn", 2)
	p.Metrics().RecordCitationsResolved(context.Background(), 1)
	p.Metrics().RecordLLMRequest(context.Background(), time.Second, StatusSuccess)
	p.Metrics().RecordStage(context.Background(), "fetch", time.Second, StatusSuccess)

	assert.NotNil(t, p.Tracer("test"))
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProviderEnabledNoneExporters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.MetricsExporter = ExporterNone
	cfg.TracingExporter = ExporterNone

	p, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, p.Enabled())
	require.NotNil(t, p.Metrics())

	ctx := context.Background()
	p.Metrics().RecordMessagesFetched(ctx, 5)
	p.Metrics().RecordRedactions(ctx, "email", 1)
	p.Metrics().RecordStage(ctx, "summarize", 2*time.Second, StatusSuccess)

	spanCtx, span := StartStageSpan(ctx, "fetch")
	assert.NotNil(t, spanCtx)
	SetSpanSuccess(span)
	span.End()

	require.NoError(t, p.Shutdown(ctx))
}

func TestNewProviderInvalidExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.MetricsExporter = "graphite"

	_, err := NewProvider(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported metrics exporter")
}

func TestNewProviderOTLPWithoutEndpoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.MetricsExporter = ExporterOTLP

	_, err := NewProvider(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTLP endpoint is required")
}
