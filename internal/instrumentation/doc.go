// Package instrumentation provides OpenTelemetry metrics and tracing
// for the summarization pipeline. Instrumentation is disabled by
// default and enabled with INSTRUMENTATION_ENABLED=true; exporters are
// selected via METRICS_EXPORTER and TRACING_EXPORTER (otlp, stdout or
// none).
package instrumentation
