// Package daterange parses natural language date ranges ("last 7 days",
// "from monday to friday", "yesterday") into concrete start and end
// times for the Gmail search query. Parsing is deterministic for a given
// reference time, which the caller passes in explicitly.
package daterange
