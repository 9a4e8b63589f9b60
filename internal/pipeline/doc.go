// Package pipeline wires the stages of a summary run together: fetch
// messages, redact their bodies, summarize them through the LLM,
// resolve citations and render the final HTML document. Both the CLI
// and the MCP server drive it.
package pipeline
