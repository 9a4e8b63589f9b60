package format

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/citation"
)

const pageStyle = `
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
            color: #333;
        }
        h1 {
            color: #2c3e50;
            border-bottom: 2px solid #3498db;
            padding-bottom: 10px;
        }
        h2 {
            color: #2980b9;
            margin-top: 30px;
        }
        h3 {
            color: #27ae60;
            margin-top: 25px;
        }
        .summary {
            background-color: #f8f9fa;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
        }
        .summary p {
            margin: 0.5em 0;
        }
        .email-item {
            border: 1px solid #e0e0e0;
            border-radius: 8px;
            padding: 15px;
            margin-bottom: 15px;
            background-color: #fff;
        }
        .email-header {
            background-color: #f0f0f0;
            padding: 10px;
            border-radius: 4px;
            margin-bottom: 10px;
        }
        .email-meta {
            font-size: 0.9em;
            color: #666;
        }
        .email-subject {
            font-weight: bold;
            color: #2c3e50;
        }
        .email-body {
            white-space: pre-wrap;
            font-family: inherit;
            background-color: #fafafa;
            padding: 10px;
            border-radius: 4px;
            overflow-x: auto;
        }
        .ref-link {
            color: #3498db;
            text-decoration: none;
            font-weight: bold;
        }
        .ref-link:hover {
            text-decoration: underline;
        }
        .date-range {
            color: #666;
            font-style: italic;
            margin-bottom: 20px;
        }
        .sender-group {
            margin-bottom: 30px;
        }
        .sender-email {
            color: #666;
            font-size: 0.9em;
        }
        .back-to-top {
            font-size: 0.8em;
            color: #666;
        }
`

var refRe = regexp.MustCompile(`\[(\d+)\]`)

// HTML renders a finished document as a standalone HTML page. The
// summary section links each numbered reference to its appendix entry;
// appendix bodies are the raw message bodies, escaped.
func HTML(doc *citation.Document, dateRange string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n    <meta charset=\"utf-8\">\n    <style>")
	b.WriteString(pageStyle)
	b.WriteString("    </style>\n</head>\n<body>\n")
	b.WriteString("    <h1>Email Summary</h1>\n")
	fmt.Fprintf(&b, "    <p class=\"date-range\">Date range: %s</p>\n\n", html.EscapeString(dateRange))

	b.WriteString("    <div class=\"summary\">\n")
	b.WriteString(renderSummary(doc.Summary))
	b.WriteString("\n    </div>\n\n")

	b.WriteString("    <h2>Appendix: Original Emails</h2>\n")
	for _, group := range doc.Appendix {
		writeGroup(&b, group)
	}

	b.WriteString("\n    <p class=\"back-to-top\"><a href=\"#top\">Back to top</a></p>\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// renderSummary converts the markdown narrative to HTML. Only the
// subset the summarizer emits is handled: ### headings and paragraphs
// separated by blank lines. Numbered references become anchor links.
func renderSummary(summary string) string {
	escaped := html.EscapeString(summary)

	var out []string
	for _, block := range strings.Split(escaped, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if strings.HasPrefix(block, "### ") {
			out = append(out, "<h3>"+strings.TrimPrefix(block, "### ")+"</h3>")
			continue
		}
		out = append(out, "<p>"+strings.ReplaceAll(block, "\n", "<br>")+"</p>")
	}

	joined := strings.Join(out, "\n")
	return refRe.ReplaceAllString(joined, `<a href="#email-$1" class="ref-link">[$1]</a>`)
}

func writeGroup(b *strings.Builder, group citation.Group) {
	name := group.SenderName
	if name == "" {
		name = group.Sender
	}
	b.WriteString("    <div class=\"sender-group\">\n")
	fmt.Fprintf(b, "        <h3>%s <span class=\"sender-email\">&lt;%s&gt;</span></h3>\n",
		html.EscapeString(name), html.EscapeString(group.Sender))

	for _, entry := range group.Entries {
		writeEntry(b, entry)
	}
	b.WriteString("    </div>\n")
}

func writeEntry(b *strings.Builder, entry citation.Entry) {
	msg := entry.Message
	if entry.Cited() {
		fmt.Fprintf(b, "        <div class=\"email-item\" id=\"email-%d\">\n", entry.Ref)
		b.WriteString("            <div class=\"email-header\">\n")
		fmt.Fprintf(b, "                <span class=\"ref-link\">[%d]</span>\n", entry.Ref)
	} else {
		b.WriteString("        <div class=\"email-item\">\n")
		b.WriteString("            <div class=\"email-header\">\n")
	}
	fmt.Fprintf(b, "                <span class=\"email-subject\">%s</span>\n", html.EscapeString(msg.Subject))
	b.WriteString("            </div>\n")
	fmt.Fprintf(b, "            <div class=\"email-meta\">Date: %s</div>\n",
		msg.Date.Format("Mon, Jan 02 2006 at 03:04 PM"))
	fmt.Fprintf(b, "            <div class=\"email-body\">%s</div>\n", html.EscapeString(msg.Body))
	b.WriteString("        </div>\n")
}
