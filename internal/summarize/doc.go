// Package summarize generates per-email summaries through a local
// OpenAI-compatible LLM endpoint and assembles them into a markdown
// narrative grouped by sender. Each summary carries a citation marker
// so the final document can number its references.
package summarize
