package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"strings"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyRule      = "rule"
	KeyMessageID = "message_id"
	KeySender    = "sender_hash"
	KeyCount     = "count"
	KeyStatus    = "status"
	KeyError     = "error"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Setup installs a text handler on os.Stderr at the given level as the
// default logger. Level strings: debug, info, warn, error; anything else
// means info.
func Setup(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
}

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Rule returns a slog attribute for a redaction rule name.
func Rule(rule string) slog.Attr {
	return slog.String(KeyRule, rule)
}

// MessageID returns a slog attribute for a message identity.
func MessageID(id string) slog.Attr {
	return slog.String(KeyMessageID, id)
}

// Count returns a slog attribute for a result count.
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted
// from output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeEmail returns a hashed representation of an email for logging
// purposes. This allows correlation of log entries without exposing PII:
// this codebase exists to keep addresses off the wire, so its own logs
// must not leak them either.
func AnonymizeEmail(email string) string {
	if email == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(strings.ToLower(email)))
	return "user:" + hex.EncodeToString(hash[:8])
}

// Sender returns a slog attribute with the anonymized sender address.
func Sender(email string) slog.Attr {
	return slog.String(KeySender, AnonymizeEmail(email))
}

// ExtractDomain extracts the domain part from an email address. Useful
// for lower-cardinality logging where the full address would both leak
// PII and create too many unique values.
func ExtractDomain(email string) string {
	if email == "" {
		return ""
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// Domain returns a slog attribute for the sender's domain.
func Domain(email string) slog.Attr {
	return slog.String("sender_domain", ExtractDomain(email))
}
