package gmail

import (
	"encoding/base64"
	"html"
	"regexp"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// ExtractBody walks a message payload and returns the plain text body.
// text/plain parts are preferred; when only HTML is present the tags are
// stripped. Multipart containers are searched recursively.
func ExtractBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}
	if plain := findPart(payload, "text/plain"); plain != "" {
		return plain
	}
	if htmlBody := findPart(payload, "text/html"); htmlBody != "" {
		return htmlToText(htmlBody)
	}
	return ""
}

// findPart returns the decoded body of the first part matching mimeType,
// depth first.
func findPart(part *gmail.MessagePart, mimeType string) string {
	if strings.HasPrefix(part.MimeType, mimeType) {
		return decodeBody(part)
	}
	for _, p := range part.Parts {
		if body := findPart(p, mimeType); body != "" {
			return body
		}
	}
	return ""
}

func decodeBody(part *gmail.MessagePart) string {
	if part.Body == nil || part.Body.Data == "" {
		return ""
	}
	data, err := base64.URLEncoding.DecodeString(part.Body.Data)
	if err != nil {
		// Some servers emit unpadded base64url
		data, err = base64.RawURLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			return ""
		}
	}
	return string(data)
}

var (
	scriptStyleRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	blockTagRe    = regexp.MustCompile(`(?i)</?(p|div|br|tr|li|h[1-6])[^>]*>`)
	anyTagRe      = regexp.MustCompile(`<[^>]+>`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
)

// htmlToText strips markup from an HTML body, keeping block boundaries
// as newlines so the text stays readable.
func htmlToText(s string) string {
	s = scriptStyleRe.ReplaceAllString(s, "")
	s = blockTagRe.ReplaceAllString(s, "\n")
	s = anyTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
