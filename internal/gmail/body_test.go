package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	gmail "google.golang.org/api/gmail/v1"
)

func part(mimeType, body string, children ...*gmail.MessagePart) *gmail.MessagePart {
	p := &gmail.MessagePart{MimeType: mimeType, Parts: children}
	if body != "" {
		p.Body = &gmail.MessagePartBody{Data: base64.URLEncoding.EncodeToString([]byte(body))}
	}
	return p
}

func TestExtractBody(t *testing.T) {
	tests := []struct {
		name    string
		payload *gmail.MessagePart
		want    string
	}{
		{
			name:    "plain text at top level",
			payload: part("text/plain", "hello world"),
			want:    "hello world",
		},
		{
			name: "plain preferred over html",
			payload: part("multipart/alternative", "",
				part("text/plain", "plain body"),
				part("text/html", "<p>html body</p>"),
			),
			want: "plain body",
		},
		{
			name: "html fallback is stripped",
			payload: part("multipart/alternative", "",
				part("text/html", "<p>First line</p><p>Second &amp; last</p>"),
			),
			want: "First line\nSecond & last",
		},
		{
			name: "nested multipart",
			payload: part("multipart/mixed", "",
				part("multipart/alternative", "",
					part("text/plain", "deep body"),
				),
			),
			want: "deep body",
		},
		{
			name:    "nil payload",
			payload: nil,
			want:    "",
		},
		{
			name:    "no text parts",
			payload: part("image/png", ""),
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBody(tt.payload))
		})
	}
}

func TestExtractBodyUnpaddedBase64(t *testing.T) {
	raw := base64.RawURLEncoding.EncodeToString([]byte("unpadded"))
	p := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     &gmail.MessagePartBody{Data: raw},
	}
	assert.Equal(t, "unpadded", ExtractBody(p))
}

func TestHTMLToText(t *testing.T) {
	in := `<html><head><style>p { color: red }</style></head>
<body><h1>Title</h1><div>One</div><div>Two &lt;3</div>
<script>alert("x")</script></body></html>`

	got := htmlToText(in)
	assert.Contains(t, got, "Title")
	assert.Contains(t, got, "One\nTwo <3")
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "color: red")
}
