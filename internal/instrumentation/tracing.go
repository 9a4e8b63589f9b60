package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for this module.
const TracerName = "github.com/jasonrhunter/FrequentEmailSummarizer"

// Span attribute keys for pipeline operations.
const (
	// SpanAttrStage is the pipeline stage name attribute.
	SpanAttrStage = "pipeline.stage"

	// SpanAttrMessageID is the Gmail message identifier attribute.
	SpanAttrMessageID = "gmail.message_id"

	// SpanAttrMessageCount is the number of messages a stage handled.
	SpanAttrMessageCount = "pipeline.message_count"

	// SpanAttrModel is the LLM model name attribute.
	SpanAttrModel = "llm.model"
)

// StartSpan starts a new span with the given name and attributes.
// The caller is responsible for ending the span with defer span.End().
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartStageSpan starts a span for one pipeline stage.
func StartStageSpan(ctx context.Context, stage string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+1)
	allAttrs = append(allAttrs, attribute.String(SpanAttrStage, stage))
	allAttrs = append(allAttrs, attrs...)

	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, "pipeline."+stage,
		trace.WithAttributes(allAttrs...),
	)
}

// SetSpanError records an error on the span and sets the status to error.
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}
