// Package citation binds a generated narrative's citation markers to a
// stable numbering scheme and builds the final two-section document:
// the rewritten summary and an appendix of original messages grouped by
// sender.
//
// The narrative generator emits identity-keyed markers (<cite:MESSAGE_ID>)
// defined by MarkerPattern. Assemble scans the narrative left to right,
// assigning dense integer IDs starting at 1 in first-citation order,
// rewrites each marker to its bracketed ID, and partitions the original
// (unredacted) messages into sender groups carrying those IDs as anchors.
//
// A marker that names a message not present in the batch is a
// data-integrity error (*UnresolvedError): the whole build aborts rather
// than emitting a summary with dangling citations.
package citation
