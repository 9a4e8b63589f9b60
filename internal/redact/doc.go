// Package redact strips personally identifying information from message
// bodies before they are sent to an external summarization service.
//
// Redaction is driven by an ordered list of rules, each pairing a
// detection pattern with a typed placeholder such as [REDACTED-PHONE].
// The order is a fixed priority: when two rules' matches overlap, the
// earlier rule wins the span, so structured identifiers (credit cards,
// SSNs, bank accounts) are claimed before the generic phone rule can
// take part of them.
//
// The sender's own address is exempt from email redaction. The exemption
// is a per-call input derived from the message's sender field, never
// process-wide state, which keeps Redact a pure function:
//
//	r, err := redact.NewDefault()
//	if err != nil {
//	    // invalid rule set; do not start
//	}
//	safe := r.Redact(msg.Body, msg.Sender)
//
// Redaction is total over a valid rule set: it never fails per message,
// preserves line and paragraph structure, and is idempotent (placeholders
// match no rule).
package redact
