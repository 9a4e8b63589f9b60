package gmail

import (
	"net/mail"
	"strings"
	"time"
)

// ParseSender splits a From header into address and display name. The
// address is lowercased. Malformed headers fall back to the raw value as
// the address with an empty name.
func ParseSender(from string) (addr, name string) {
	parsed, err := mail.ParseAddress(from)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(from)), ""
	}
	return strings.ToLower(parsed.Address), parsed.Name
}

// dateLayouts are tried in order when the Date header does not parse as
// RFC 1123 with a numeric zone. Some senders omit the weekday or append
// a zone name in parentheses.
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 -0700 (MST)",
}

func parseDate(value string) time.Time {
	if t, err := mail.ParseDate(value); err == nil {
		return t
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
