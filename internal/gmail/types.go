package gmail

import (
	"time"
)

// Message represents one fetched email message. The identity (ID), raw
// Body and Subject are immutable once constructed; the redacted fields
// are derived exactly once by the redaction pass and are the only forms
// that ever leave the machine.
type Message struct {
	ID              string // provider message ID, the stable citation identity
	Sender          string // sender address, e.g. "alice@example.com"
	SenderName      string // display name from the From header, may be empty
	Subject         string // raw subject; rendered as-is in the appendix
	Date            time.Time
	Body            string // raw body; never sent to the narrative generator
	Redacted        string // redacted body; empty until redaction has run
	SubjectRedacted string // redacted subject; empty until redaction has run
}

// DisplayName returns the sender's display name, falling back to the
// address when the From header carried none.
func (m *Message) DisplayName() string {
	if m.SenderName != "" {
		return m.SenderName
	}
	return m.Sender
}
