// Package format renders the assembled summary document as a
// standalone HTML page suitable for sending by email.
package format
