package citation

import "fmt"

// UnresolvedError reports a citation marker naming a message identity that
// is not present in the fetched batch. It indicates a contract violation
// by the narrative generator or a mismatched message set; assembly aborts
// rather than emitting a document with dangling citations.
type UnresolvedError struct {
	Identity string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("citation: marker references unknown message %q", e.Identity)
}
