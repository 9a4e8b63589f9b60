package citation

import (
	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/gmail"
)

// CitationMap assigns stable positive integer IDs to message identities in
// first-citation order. IDs form a dense sequence starting at 1. The map
// preserves insertion order explicitly; output never depends on Go map
// iteration order.
type CitationMap struct {
	ids   map[string]int
	order []string
}

// NewCitationMap returns an empty CitationMap.
func NewCitationMap() *CitationMap {
	return &CitationMap{ids: make(map[string]int)}
}

// Assign returns the ID for identity, allocating the next integer on first
// encounter.
func (m *CitationMap) Assign(identity string) int {
	if id, ok := m.ids[identity]; ok {
		return id
	}
	id := len(m.order) + 1
	m.ids[identity] = id
	m.order = append(m.order, identity)
	return id
}

// ID returns the assigned ID for identity, or false if it was never cited.
func (m *CitationMap) ID(identity string) (int, bool) {
	id, ok := m.ids[identity]
	return id, ok
}

// Len returns the number of distinct cited identities.
func (m *CitationMap) Len() int { return len(m.order) }

// Identities returns the cited identities in first-citation order.
func (m *CitationMap) Identities() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Policy controls how messages that received no citation are treated when
// the appendix is built. The default (IncludeUncited true) lists every
// fetched message under its sender; uncited messages simply render without
// a citation number.
type Policy struct {
	IncludeUncited bool
}

// DefaultPolicy returns the reference behavior: uncited messages are
// included, unnumbered.
func DefaultPolicy() Policy {
	return Policy{IncludeUncited: true}
}

// Entry is one message rendered into the appendix. Ref is the assigned
// citation ID, or 0 for a message that was never cited.
type Entry struct {
	Message *gmail.Message
	Ref     int
}

// Cited reports whether the entry carries a citation number.
func (e Entry) Cited() bool { return e.Ref > 0 }

// Group holds one sender's messages in original fetch order.
type Group struct {
	Sender     string // sender address
	SenderName string // display name from the first message in the group
	Entries    []Entry
}

// Document is the assembled result: the rewritten summary, the citation
// map it was numbered from, and the sender-grouped appendix. Serialization
// to any concrete markup is left to a downstream formatter.
type Document struct {
	Summary   string
	Citations *CitationMap
	Appendix  []Group
}
