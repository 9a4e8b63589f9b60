package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/citation"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/gmail"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/logging"
)

// maxEmailBodyChars bounds how much of a body goes into the prompt.
// Roughly 4 chars per token, leaving room for the prompt and response.
const maxEmailBodyChars = 8000

const truncationNotice = "\n\n[... email truncated for length ...]"

const systemPrompt = `You are an email summarizer. Summarize the key points of this email in 2-4 concise sentences.
Focus on: main topic, any requests/action items, deadlines, highlights, and important decisions.
Include the subject and date in your summary but NOT the sender name.
Be concise but capture the essential information and highlights.
Note: Some personally identifying information has been redacted for privacy.`

// Completer is the LLM surface the summarizer needs.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ProgressFunc is called before each email is summarized with the
// 1-based position and the total count.
type ProgressFunc func(current, total int)

// Summarizer turns a batch of redacted messages into a markdown
// narrative grouped by sender, with a citation marker after each
// message summary.
type Summarizer struct {
	llm      Completer
	progress ProgressFunc
}

// New creates a Summarizer. progress may be nil.
func New(llm Completer, progress ProgressFunc) *Summarizer {
	return &Summarizer{llm: llm, progress: progress}
}

// Summarize summarizes each message individually and groups the results
// by sender display name, sorted alphabetically. Each message's summary
// ends with a citation marker carrying the message ID, to be resolved
// into a numbered reference later. Message bodies and subjects must
// already be redacted.
func (s *Summarizer) Summarize(ctx context.Context, msgs []*gmail.Message) (string, error) {
	if len(msgs) == 0 {
		return "No emails to summarize.", nil
	}

	type summarized struct {
		msg  *gmail.Message
		text string
	}

	results := make([]summarized, 0, len(msgs))
	for i, msg := range msgs {
		if s.progress != nil {
			s.progress(i+1, len(msgs))
		}

		text, err := s.summarizeOne(ctx, msg)
		if err != nil {
			return "", fmt.Errorf("summarize message %s: %w", msg.ID, err)
		}
		results = append(results, summarized{msg: msg, text: text})

		slog.Debug("summarized message",
			logging.Operation("summarize"),
			logging.MessageID(msg.ID),
			logging.Sender(msg.Sender))
	}

	bySender := make(map[string][]summarized)
	for _, r := range results {
		name := r.msg.DisplayName()
		bySender[name] = append(bySender[name], r)
	}

	names := make([]string, 0, len(bySender))
	for name := range bySender {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString("### ")
		b.WriteString(name)
		b.WriteString("\n\n")
		for _, r := range bySender[name] {
			b.WriteString(r.text)
			b.WriteString(" ")
			b.WriteString(citation.Marker(r.msg.ID))
			b.WriteString("\n\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

func (s *Summarizer) summarizeOne(ctx context.Context, msg *gmail.Message) (string, error) {
	body := truncateBody(msg.Redacted)

	user := fmt.Sprintf(`Summarize the key content of this email in 2-4 sentences (do not include sender)

and output with the format:

Subject: <put the email subject here>
Date: <put the email date here>
Summary: <put the summary here>

Subject: %s
Date: %s

%s
`, msg.SubjectRedacted, msg.Date.Format("2006-01-02 15:04"), body)

	return s.llm.Complete(ctx, systemPrompt, user)
}

// truncateBody caps the body at maxEmailBodyChars, backing up to a rune
// boundary so a multi-byte character is never cut in half.
func truncateBody(body string) string {
	if len(body) <= maxEmailBodyChars {
		return body
	}
	cut := maxEmailBodyChars
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + truncationNotice
}
