// Package cmd implements the command-line interface for mailbrief.
//
// This package provides the following commands:
//   - summarize: Fetch, redact and summarize emails into a cited HTML digest
//   - auth: Run the Google OAuth flow and cache the Gmail token
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The summarize command is the default command when no subcommand is specified.
package cmd
