package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/citation"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/gmail"
)

type fakeFetcher struct {
	msgs []*gmail.Message
	err  error
}

func (f *fakeFetcher) FetchMessages(_ context.Context, _ []string, _, _ time.Time) ([]*gmail.Message, error) {
	return f.msgs, f.err
}

// markerLLM replies with a fixed summary; the marker is appended by the
// summarizer itself.
type markerLLM struct {
	reply func(user string) string
	err   error
}

func (m *markerLLM) Complete(_ context.Context, _, user string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.reply != nil {
		return m.reply(user), nil
	}
	return "A short summary.", nil
}

func testOpts() Options {
	return Options{
		Senders:        []string{"alice@example.com"},
		Start:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:            time.Date(2025, 3, 7, 23, 59, 59, 0, time.UTC),
		RangeLabel:     "last week",
		IncludeUncited: true,
	}
}

func testMessages() []*gmail.Message {
	return []*gmail.Message{
		{
			ID:         "m1",
			Sender:     "alice@example.com",
			SenderName: "Alice",
			Subject:    "Planning",
			Date:       time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
			Body:       "Call me at 555-123-4567 about the plan.",
		},
		{
			ID:         "m2",
			Sender:     "alice@example.com",
			SenderName: "Alice",
			Subject:    "Follow up",
			Date:       time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC),
			Body:       "Reaching out again from alice@example.com.",
		},
	}
}

func TestRunEndToEnd(t *testing.T) {
	fetcher := &fakeFetcher{msgs: testMessages()}
	res, err := Run(context.Background(), fetcher, &markerLLM{}, testOpts())
	require.NoError(t, err)

	// Both messages cited, numbered in narrative order.
	assert.Equal(t, 2, res.Document.Citations.Len())
	assert.Contains(t, res.Document.Summary, "[1]")
	assert.Contains(t, res.Document.Summary, "[2]")
	assert.NotContains(t, res.Document.Summary, "<cite:")

	// Redaction happened before the LLM saw anything.
	assert.Contains(t, res.Messages[0].Redacted, "[REDACTED-PHONE]")
	// Sender's own address survives redaction.
	assert.Contains(t, res.Messages[1].Redacted, "alice@example.com")
	// Raw body stays untouched for the appendix.
	assert.Contains(t, res.Messages[0].Body, "555-123-4567")

	assert.Contains(t, res.HTML, "<!DOCTYPE html>")
	assert.Contains(t, res.HTML, "last week")
}

func TestRunNoMessages(t *testing.T) {
	// An empty mailbox window is a successful run with an empty result,
	// not an error.
	fetcher := &fakeFetcher{}
	res, err := Run(context.Background(), fetcher, &markerLLM{}, testOpts())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Messages)
	assert.Empty(t, res.HTML)
	assert.Nil(t, res.Document)
}

func TestRunFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("quota exceeded")}
	_, err := Run(context.Background(), fetcher, &markerLLM{}, testOpts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestRunLLMError(t *testing.T) {
	fetcher := &fakeFetcher{msgs: testMessages()}
	_, err := Run(context.Background(), fetcher, &markerLLM{err: fmt.Errorf("model not loaded")}, testOpts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestRunUnresolvedCitationAborts(t *testing.T) {
	fetcher := &fakeFetcher{msgs: testMessages()}
	llm := &markerLLM{reply: func(string) string {
		// The model leaks a marker for a message that was never fetched.
		return "See " + citation.Marker("ghost") + " for details."
	}}

	_, err := Run(context.Background(), fetcher, llm, testOpts())
	require.Error(t, err)

	var unresolved *citation.UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	// The summarizer appends real markers, so the ghost marker is the
	// failure regardless of the valid ones around it.
	assert.Equal(t, "ghost", unresolved.Identity)
}

func TestRunExcludeUncited(t *testing.T) {
	msgs := testMessages()
	fetcher := &fakeFetcher{msgs: msgs}

	// Reply without appending anything useful; the summarizer still adds
	// markers for every message, so instead simulate an uncited message by
	// checking the include path first.
	opts := testOpts()
	opts.IncludeUncited = false

	res, err := Run(context.Background(), fetcher, &markerLLM{}, opts)
	require.NoError(t, err)

	// Every message was cited, so the appendix is unchanged by the policy.
	total := 0
	for _, g := range res.Document.Appendix {
		total += len(g.Entries)
	}
	assert.Equal(t, len(msgs), total)
}

func TestRunRedactsSubjects(t *testing.T) {
	msgs := []*gmail.Message{{
		ID:         "m1",
		Sender:     "alice@example.com",
		SenderName: "Alice",
		Subject:    "Your SSN 123-45-6789 was found",
		Date:       time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
		Body:       "see subject",
	}}
	fetcher := &fakeFetcher{msgs: msgs}

	res, err := Run(context.Background(), fetcher, &markerLLM{}, testOpts())
	require.NoError(t, err)

	// The redacted subject is a separate field; the raw subject stays
	// intact for the appendix.
	assert.Contains(t, res.Messages[0].SubjectRedacted, "[REDACTED-SSN]")
	assert.Equal(t, "Your SSN 123-45-6789 was found", res.Messages[0].Subject)
	assert.Contains(t, res.HTML, "Your SSN 123-45-6789 was found")
	assert.NotContains(t, res.HTML, "[REDACTED-SSN]")
}
