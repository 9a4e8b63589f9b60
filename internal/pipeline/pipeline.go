package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/citation"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/format"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/gmail"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/instrumentation"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/logging"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/redact"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/summarize"
)

// redactWorkers bounds concurrent redaction goroutines.
const redactWorkers = 4

// Fetcher fetches messages from a mailbox.
type Fetcher interface {
	FetchMessages(ctx context.Context, senders []string, start, end time.Time) ([]*gmail.Message, error)
}

// Options configures one pipeline run.
type Options struct {
	// Senders are the email addresses to fetch from. At least one is required.
	Senders []string

	// Start and End bound the fetch, inclusive.
	Start time.Time
	End   time.Time

	// RangeLabel is the human-readable date range shown in the output.
	RangeLabel string

	// IncludeUncited controls whether messages without a citation appear
	// in the appendix.
	IncludeUncited bool

	// Progress, if set, is called before each message is summarized.
	Progress summarize.ProgressFunc

	// Metrics, if set, receives pipeline counters and durations.
	Metrics *instrumentation.Metrics
}

// Result is the outcome of a pipeline run. When no messages matched the
// senders and date range, Messages is empty and Document and HTML are
// zero; that is a successful run, not an error.
type Result struct {
	Document *citation.Document
	HTML     string
	Messages []*gmail.Message
}

// Run executes the full pipeline: fetch, redact, summarize, assemble
// and format. Message bodies are redacted before anything leaves the
// process; the appendix keeps the raw bodies for the report itself.
func Run(ctx context.Context, fetcher Fetcher, llm summarize.Completer, opts Options) (*Result, error) {
	metrics := opts.Metrics
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}

	msgs, err := runFetch(ctx, fetcher, metrics, opts)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		slog.Info("no messages matched",
			logging.Operation("fetch"),
			logging.Count(0))
		return &Result{}, nil
	}

	if err := runRedact(ctx, msgs, metrics); err != nil {
		return nil, err
	}

	narrative, err := runSummarize(ctx, llm, msgs, metrics, opts.Progress)
	if err != nil {
		return nil, err
	}

	doc, err := runAssemble(ctx, narrative, msgs, metrics, opts.IncludeUncited)
	if err != nil {
		return nil, err
	}

	html := format.HTML(doc, opts.RangeLabel)

	return &Result{
		Document: doc,
		HTML:     html,
		Messages: msgs,
	}, nil
}

func runFetch(ctx context.Context, fetcher Fetcher, metrics *instrumentation.Metrics, opts Options) ([]*gmail.Message, error) {
	ctx, span := instrumentation.StartStageSpan(ctx, "fetch")
	defer span.End()
	started := time.Now()

	msgs, err := fetcher.FetchMessages(ctx, opts.Senders, opts.Start, opts.End)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		metrics.RecordStage(ctx, "fetch", time.Since(started), instrumentation.StatusError)
		return nil, fmt.Errorf("fetch: %w", err)
	}

	span.SetAttributes(attribute.Int(instrumentation.SpanAttrMessageCount, len(msgs)))
	instrumentation.SetSpanSuccess(span)
	metrics.RecordMessagesFetched(ctx, len(msgs))
	metrics.RecordStage(ctx, "fetch", time.Since(started), instrumentation.StatusSuccess)
	return msgs, nil
}

// runRedact fills in the Redacted and SubjectRedacted fields of every
// message. The raw Body and Subject stay untouched for the appendix.
func runRedact(ctx context.Context, msgs []*gmail.Message, metrics *instrumentation.Metrics) error {
	ctx, span := instrumentation.StartStageSpan(ctx, "redact",
		attribute.Int(instrumentation.SpanAttrMessageCount, len(msgs)))
	defer span.End()
	started := time.Now()

	redactor, err := redact.NewDefault()
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return fmt.Errorf("redact: %w", err)
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, redactWorkers)
	for _, msg := range msgs {
		wg.Add(1)
		sem <- struct{}{}
		go func(m *gmail.Message) {
			defer wg.Done()
			defer func() { <-sem }()
			m.Redacted = redactor.Redact(m.Body, m.Sender)
			m.SubjectRedacted = redactor.Redact(m.Subject, m.Sender)
		}(msg)
	}
	wg.Wait()

	for _, rule := range redactor.Rules() {
		total := 0
		for _, m := range msgs {
			total += strings.Count(m.Redacted, rule.Placeholder)
		}
		metrics.RecordRedactions(ctx, rule.Name, total)
	}

	slog.Info("redacted message bodies",
		logging.Operation("redact"),
		logging.Count(len(msgs)))

	instrumentation.SetSpanSuccess(span)
	metrics.RecordStage(ctx, "redact", time.Since(started), instrumentation.StatusSuccess)
	return nil
}

func runSummarize(ctx context.Context, llm summarize.Completer, msgs []*gmail.Message, metrics *instrumentation.Metrics, progress summarize.ProgressFunc) (string, error) {
	ctx, span := instrumentation.StartStageSpan(ctx, "summarize",
		attribute.Int(instrumentation.SpanAttrMessageCount, len(msgs)))
	defer span.End()
	started := time.Now()

	narrative, err := summarize.New(timedCompleter{llm: llm, metrics: metrics}, progress).Summarize(ctx, msgs)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		metrics.RecordStage(ctx, "summarize", time.Since(started), instrumentation.StatusError)
		return "", err
	}

	instrumentation.SetSpanSuccess(span)
	metrics.RecordStage(ctx, "summarize", time.Since(started), instrumentation.StatusSuccess)
	return narrative, nil
}

func runAssemble(ctx context.Context, narrative string, msgs []*gmail.Message, metrics *instrumentation.Metrics, includeUncited bool) (*citation.Document, error) {
	ctx, span := instrumentation.StartStageSpan(ctx, "assemble",
		attribute.Int(instrumentation.SpanAttrMessageCount, len(msgs)))
	defer span.End()
	started := time.Now()

	doc, err := citation.Assemble(narrative, msgs, citation.Policy{IncludeUncited: includeUncited})
	if err != nil {
		instrumentation.SetSpanError(span, err)
		metrics.RecordStage(ctx, "assemble", time.Since(started), instrumentation.StatusError)
		return nil, fmt.Errorf("assemble: %w", err)
	}

	metrics.RecordCitationsResolved(ctx, doc.Citations.Len())
	instrumentation.SetSpanSuccess(span)
	metrics.RecordStage(ctx, "assemble", time.Since(started), instrumentation.StatusSuccess)
	return doc, nil
}

// timedCompleter wraps a Completer and records per-request durations.
type timedCompleter struct {
	llm     summarize.Completer
	metrics *instrumentation.Metrics
}

func (t timedCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	started := time.Now()
	out, err := t.llm.Complete(ctx, system, user)
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	t.metrics.RecordLLMRequest(ctx, time.Since(started), status)
	return out, err
}
