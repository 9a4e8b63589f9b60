// Package logging provides structured logging helpers built on log/slog.
//
// It defines the attribute keys used across the codebase and constructors
// that keep PII out of log output: sender addresses are only ever logged
// as truncated SHA-256 hashes (AnonymizeEmail) or reduced to their
// domain (ExtractDomain).
package logging
