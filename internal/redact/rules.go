package redact

import (
	"fmt"
	"regexp"
)

// Guard restricts which characters may sit immediately next to a match.
// Go's RE2 engine has no lookahead/lookbehind, so the boundary conditions
// the patterns need (e.g. "not preceded by a digit") are checked in code
// after matching.
type Guard int

const (
	// GuardNone accepts every match as-is.
	GuardNone Guard = iota
	// GuardDigit rejects a match when the byte before or after it is a digit.
	GuardDigit
	// GuardDigitDash rejects a match when the byte before or after it is a
	// digit or a dash (used for ZIP codes so ZIP+4 and phone fragments
	// don't match partially).
	GuardDigitDash
)

// RuleSpec describes one PII category to redact: a name, an uncompiled
// detection pattern, and the placeholder that replaces each match.
type RuleSpec struct {
	Name        string
	Pattern     string
	Placeholder string
	Guard       Guard
}

// Rule is a compiled, immutable redaction rule. Rules carry no per-message
// state and are safe for concurrent use.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Placeholder string
	Guard       Guard
}

// RuleConfigError indicates a malformed rule set. It is returned during
// rule compilation at startup; the process must not run with a partially
// valid rule set.
type RuleConfigError struct {
	Rule  string
	Cause error
}

func (e *RuleConfigError) Error() string {
	return fmt.Sprintf("redact: invalid rule %q: %v", e.Rule, e.Cause)
}

func (e *RuleConfigError) Unwrap() error { return e.Cause }

// DefaultRuleSpecs returns the built-in PII rule set in its fixed priority
// order. Order matters for overlapping matches: structured numeric
// identifiers (credit card, SSN, bank account, routing number) are checked
// before the generic phone rule so a card number is never half-claimed as
// a phone number. The email rule precedes phone so the digits in an
// address-local part stay part of the address span.
func DefaultRuleSpecs() []RuleSpec {
	return []RuleSpec{
		{
			Name:        "credit_card",
			Pattern:     `\b\d{4}[-.\s]?\d{4}[-.\s]?\d{4}[-.\s]?\d{4}\b`,
			Placeholder: "[REDACTED-CARD]",
			Guard:       GuardDigit,
		},
		{
			Name:        "ssn",
			Pattern:     `\b\d{3}[-.\s]\d{2}[-.\s]\d{4}\b`,
			Placeholder: "[REDACTED-SSN]",
			Guard:       GuardDigit,
		},
		{
			Name:        "bank_account",
			Pattern:     `(?i)\b(?:account|acct)\.?\s*#?\s*\d{8,17}\b`,
			Placeholder: "[REDACTED-ACCOUNT]",
			Guard:       GuardDigit,
		},
		{
			Name:        "routing_number",
			Pattern:     `(?i)\b(?:routing|ABA)\.?\s*#?\s*\d{9}\b`,
			Placeholder: "[REDACTED-ROUTING]",
			Guard:       GuardDigit,
		},
		{
			Name:        "email",
			Pattern:     `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
			Placeholder: "[REDACTED-EMAIL]",
		},
		{
			Name:        "phone",
			Pattern:     `(?:\+?1[-.\s])?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}(?:\s*(?:ext|x|extension)\.?\s*\d+)?`,
			Placeholder: "[REDACTED-PHONE]",
			Guard:       GuardDigit,
		},
		{
			Name:        "ip_address",
			Pattern:     `\b(?:\d{1,3}\.){3}\d{1,3}\b`,
			Placeholder: "[REDACTED-IP]",
			Guard:       GuardDigit,
		},
		{
			Name:        "street_address",
			Pattern:     `(?i)\b\d+[ \t]+[A-Za-z0-9 \t,]+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Drive|Dr|Lane|Ln|Way|Court|Ct|Circle|Cir|Place|Pl)\.?(?:[ \t]*(?:#|Suite|Apt\.?)[ \t]*\d+)?\b`,
			Placeholder: "[REDACTED-ADDRESS]",
		},
		{
			Name:        "zip_code",
			Pattern:     `\b\d{5}(?:-\d{4})?\b`,
			Placeholder: "[REDACTED-ZIP]",
			Guard:       GuardDigitDash,
		},
		{
			Name:        "dob",
			Pattern:     `(?i)\b(?:DOB|Date of Birth|Birthday|Born)[:\s]+\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`,
			Placeholder: "[REDACTED-DOB]",
		},
		{
			Name:        "drivers_license",
			Pattern:     `(?i)\b(?:DL|Driver'?s?\s*License|License\s*#?)\.?\s*#?\s*[A-Z0-9]{6,15}\b`,
			Placeholder: "[REDACTED-LICENSE]",
		},
		{
			Name:        "passport",
			Pattern:     `(?i)\b(?:Passport)\.?\s*#?\s*[A-Z0-9]{6,12}\b`,
			Placeholder: "[REDACTED-PASSPORT]",
		},
	}
}

// CompileRules compiles a rule spec list into the ordered rule set used by
// the Redactor. The first invalid spec aborts compilation with a
// *RuleConfigError; a partially valid rule set is never returned.
func CompileRules(specs []RuleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, &RuleConfigError{Rule: spec.Name, Cause: fmt.Errorf("rule name is required")}
		}
		if spec.Placeholder == "" {
			return nil, &RuleConfigError{Rule: spec.Name, Cause: fmt.Errorf("placeholder is required")}
		}
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, &RuleConfigError{Rule: spec.Name, Cause: err}
		}
		rules = append(rules, Rule{
			Name:        spec.Name,
			Pattern:     re,
			Placeholder: spec.Placeholder,
			Guard:       spec.Guard,
		})
	}
	return rules, nil
}
