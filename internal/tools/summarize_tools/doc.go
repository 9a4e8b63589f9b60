// Package summarize_tools provides MCP tools for the email
// summarization pipeline: summarize_emails runs the full pipeline,
// redact_text exposes the PII redactor on its own, and
// parse_date_range resolves natural language date ranges.
package summarize_tools
