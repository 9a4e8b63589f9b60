package redact

import (
	"sort"
	"strings"
)

// emailRuleName identifies the rule whose matches are checked against the
// sender exemption.
const emailRuleName = "email"

// Redactor replaces PII spans in message bodies with typed placeholders.
// It is immutable after construction and safe for concurrent use across
// messages.
type Redactor struct {
	rules []Rule
}

// New compiles the given rule specs into a Redactor. Compilation failures
// are configuration errors (*RuleConfigError) and should be treated as
// fatal at startup.
func New(specs []RuleSpec) (*Redactor, error) {
	rules, err := CompileRules(specs)
	if err != nil {
		return nil, err
	}
	return &Redactor{rules: rules}, nil
}

// NewDefault builds a Redactor from the built-in rule set.
func NewDefault() (*Redactor, error) {
	return New(DefaultRuleSpecs())
}

// Rules returns the compiled rule set in priority order.
func (r *Redactor) Rules() []Rule {
	return r.rules
}

// span is one accepted match, tied to the rule that claimed it.
type span struct {
	start, end int
	rule       *Rule
}

// Redact returns body with every PII match replaced by its rule's
// placeholder. senderAddr is exempt from email redaction (case-insensitive
// exact match) so a summarizer can still reason about who sent the
// message. Only matched spans are replaced in place; all other bytes,
// including line and paragraph breaks, are preserved.
//
// Redact is total: it never fails, and an empty body redacts to an empty
// body. The raw input is not mutated.
func (r *Redactor) Redact(body, senderAddr string) string {
	if body == "" {
		return ""
	}

	var accepted []span
	for i := range r.rules {
		rule := &r.rules[i]
		for _, loc := range rule.Pattern.FindAllStringIndex(body, -1) {
			s := span{start: loc[0], end: loc[1], rule: rule}
			if !boundaryOK(body, s.start, s.end, rule.Guard) {
				continue
			}
			if rule.Name == emailRuleName && senderAddr != "" &&
				strings.EqualFold(body[s.start:s.end], senderAddr) {
				continue
			}
			// Earlier rules have priority: a span overlapping one that an
			// earlier (or same) rule already claimed is dropped.
			if overlapsAny(accepted, s) {
				continue
			}
			accepted = append(accepted, s)
		}
	}

	if len(accepted) == 0 {
		return body
	}

	// Replace back-to-front so earlier offsets stay valid.
	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].start > accepted[j].start
	})

	out := body
	for _, s := range accepted {
		out = out[:s.start] + s.rule.Placeholder + out[s.end:]
	}
	return out
}

// boundaryOK applies the rule's guard against the bytes immediately
// adjacent to the match.
func boundaryOK(text string, start, end int, g Guard) bool {
	if g == GuardNone {
		return true
	}
	if start > 0 && guardedByte(text[start-1], g) {
		return false
	}
	if end < len(text) && guardedByte(text[end], g) {
		return false
	}
	return true
}

func guardedByte(b byte, g Guard) bool {
	if b >= '0' && b <= '9' {
		return true
	}
	return g == GuardDigitDash && b == '-'
}

func overlapsAny(spans []span, s span) bool {
	for _, a := range spans {
		if s.start < a.end && a.start < s.end {
			return true
		}
	}
	return false
}
