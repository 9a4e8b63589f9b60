// Package gmail provides a thin client over the Gmail API for fetching
// messages from selected senders within a date range and for sending the
// finished summary email.
//
// Fetched messages are returned sorted by date ascending; that order is
// preserved through the rest of the pipeline.
package gmail
