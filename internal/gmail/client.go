package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"sort"
	"strings"
	"time"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/google"
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/logging"
)

// Client wraps the Gmail Users service.
type Client struct {
	svc *gmail.UsersService
}

// HasToken checks if a cached OAuth token exists.
func HasToken() bool {
	return google.HasToken()
}

// NewClient creates a new Gmail client with OAuth2 authentication.
// It requires a cached token; run the auth command first.
func NewClient(ctx context.Context) (*Client, error) {
	client, err := google.GetHTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found: %w", err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{svc: svc.Users}, nil
}

// maxFetch bounds how many message IDs a single fetch will list.
const maxFetch = 500

// BuildQuery renders the Gmail search query for the given senders and
// date range. Gmail's before: operator is exclusive, so the day after the
// end date is used.
func BuildQuery(senders []string, start, end time.Time) string {
	queries := make([]string, 0, len(senders))
	for _, s := range senders {
		queries = append(queries, "from:"+s)
	}
	after := start.Format("2006/01/02")
	before := end.AddDate(0, 0, 1).Format("2006/01/02")
	return fmt.Sprintf("(%s) after:%s before:%s", strings.Join(queries, " OR "), after, before)
}

// FetchMessages fetches all messages from the given senders within the
// date range, sorted by date ascending. The returned order is the fetch
// order downstream grouping relies on.
func (c *Client) FetchMessages(ctx context.Context, senders []string, start, end time.Time) ([]*Message, error) {
	if len(senders) == 0 {
		return nil, fmt.Errorf("at least one sender is required")
	}

	q := BuildQuery(senders, start, end)
	slog.Debug("fetching messages", logging.Operation("fetch"), "query_dates",
		start.Format("2006-01-02")+".."+end.Format("2006-01-02"))

	var ids []string
	pageToken := ""
	for {
		req := c.svc.Messages.List("me").Q(q).MaxResults(100).Context(ctx)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}
		res, err := req.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}
		for _, m := range res.Messages {
			ids = append(ids, m.Id)
		}
		if res.NextPageToken == "" || len(ids) >= maxFetch {
			break
		}
		pageToken = res.NextPageToken
	}
	if len(ids) > maxFetch {
		ids = ids[:maxFetch]
	}

	msgs := make([]*Message, 0, len(ids))
	for _, id := range ids {
		msg, err := c.getMessage(ctx, id)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Date.Before(msgs[j].Date)
	})

	slog.Info("fetched messages", logging.Operation("fetch"), logging.Count(len(msgs)))
	return msgs, nil
}

// getMessage retrieves one full message and maps it to the domain type.
func (c *Client) getMessage(ctx context.Context, id string) (*Message, error) {
	msg, err := c.svc.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}

	sender, senderName := ParseSender(headerValue(msg, "From"))
	date := parseDate(headerValue(msg, "Date"))

	return &Message{
		ID:         id,
		Sender:     sender,
		SenderName: senderName,
		Subject:    headerValue(msg, "Subject"),
		Date:       date,
		Body:       ExtractBody(msg.Payload),
	}, nil
}

// headerValue extracts a header value from a Gmail message.
func headerValue(m *gmail.Message, header string) string {
	if m.Payload == nil {
		return ""
	}
	for _, h := range m.Payload.Headers {
		if strings.EqualFold(h.Name, header) {
			return h.Value
		}
	}
	return ""
}

// SendSummary sends the finished HTML summary document as an email.
// It returns the sent message ID.
func (c *Client) SendSummary(to []string, subject, htmlBody string) (string, error) {
	if len(to) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	if htmlBody == "" {
		return "", fmt.Errorf("body is required")
	}

	// Build the email message in RFC 2822 format
	var b strings.Builder
	b.WriteString("To: ")
	b.WriteString(strings.Join(to, ", "))
	b.WriteString("\r\n")
	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(subject))
	b.WriteString("\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)

	raw := base64.URLEncoding.EncodeToString([]byte(b.String()))
	sent, err := c.svc.Messages.Send("me", &gmail.Message{Raw: raw}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send summary: %w", err)
	}

	return sent.Id, nil
}

// encodeRFC2047 encodes a string for use in email headers according to
// RFC 2047. This is necessary for non-ASCII characters in subjects.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}
