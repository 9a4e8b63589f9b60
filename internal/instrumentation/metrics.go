package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrStage  = "stage"
	attrStatus = "status"
	attrRule   = "rule"
)

// Metrics provides methods for recording pipeline metrics. The zero
// value is a no-op recorder.
type Metrics struct {
	messagesFetched    metric.Int64Counter
	redactionsTotal    metric.Int64Counter
	citationsResolved  metric.Int64Counter
	llmRequestDuration metric.Float64Histogram
	stageDuration      metric.Float64Histogram
}

// NewMetrics creates a Metrics instance with all instruments registered.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.messagesFetched, err = meter.Int64Counter(
		"messages_fetched_total",
		metric.WithDescription("Total number of messages fetched from Gmail"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create messages_fetched_total counter: %w", err)
	}

	m.redactionsTotal, err = meter.Int64Counter(
		"redactions_total",
		metric.WithDescription("Total number of redacted spans, by rule"),
		metric.WithUnit("{span}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create redactions_total counter: %w", err)
	}

	m.citationsResolved, err = meter.Int64Counter(
		"citations_resolved_total",
		metric.WithDescription("Total number of citation markers resolved to references"),
		metric.WithUnit("{citation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create citations_resolved_total counter: %w", err)
	}

	m.llmRequestDuration, err = meter.Float64Histogram(
		"llm_request_duration_seconds",
		metric.WithDescription("LLM chat completion duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0, 120.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm_request_duration_seconds histogram: %w", err)
	}

	m.stageDuration, err = meter.Float64Histogram(
		"pipeline_stage_duration_seconds",
		metric.WithDescription("Duration of each pipeline stage in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0, 600.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline_stage_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordMessagesFetched records the number of messages a fetch returned.
func (m *Metrics) RecordMessagesFetched(ctx context.Context, count int) {
	if m.messagesFetched == nil {
		return
	}
	m.messagesFetched.Add(ctx, int64(count))
}

// RecordRedactions records redacted span counts for one rule.
func (m *Metrics) RecordRedactions(ctx context.Context, rule string, count int) {
	if m.redactionsTotal == nil || count == 0 {
		return
	}
	m.redactionsTotal.Add(ctx, int64(count),
		metric.WithAttributes(attribute.String(attrRule, rule)))
}

// RecordCitationsResolved records how many markers were resolved.
func (m *Metrics) RecordCitationsResolved(ctx context.Context, count int) {
	if m.citationsResolved == nil {
		return
	}
	m.citationsResolved.Add(ctx, int64(count))
}

// RecordLLMRequest records the duration and status of one LLM call.
func (m *Metrics) RecordLLMRequest(ctx context.Context, duration time.Duration, status string) {
	if m.llmRequestDuration == nil {
		return
	}
	m.llmRequestDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(attribute.String(attrStatus, status)))
}

// RecordStage records the duration and status of one pipeline stage.
func (m *Metrics) RecordStage(ctx context.Context, stage string, duration time.Duration, status string) {
	if m.stageDuration == nil {
		return
	}
	m.stageDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String(attrStage, stage),
			attribute.String(attrStatus, status),
		))
}
