package citation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jasonrhunter/FrequentEmailSummarizer/internal/gmail"
)

// MarkerPattern is the textual contract the narrative generator must
// follow: each citation is an identity-keyed token of the form
// <cite:MESSAGE_ID>, later rewritten to the bracketed integer [n].
var MarkerPattern = regexp.MustCompile(`<cite:([^>\s]+)>`)

// Marker renders the citation marker for a message identity. The
// summarizer uses this so both sides of the contract share one
// definition.
func Marker(identity string) string {
	return fmt.Sprintf("<cite:%s>", identity)
}

// Assemble binds the narrative's citation markers to a stable numbering
// and builds the final two-section document.
//
// IDs are assigned in a single left-to-right scan of the narrative: the
// first marker for an identity gets the next integer starting at 1, and
// repeats reuse it. A marker naming an identity absent from msgs aborts
// assembly with *UnresolvedError; no partial document is returned.
//
// The appendix groups messages by sender address (fetch order within a
// group). Cited senders are ordered by their first-cited message ID;
// senders with no cited messages follow, alphabetically. Assembly is
// deterministic: the same (narrative, msgs) pair always yields an
// identical document.
func Assemble(narrative string, msgs []*gmail.Message, policy Policy) (*Document, error) {
	known := make(map[string]bool, len(msgs))
	for _, m := range msgs {
		known[m.ID] = true
	}

	// Pass 1: assign IDs in first-occurrence order, validating every
	// marker before any rewriting happens.
	cm := NewCitationMap()
	for _, loc := range MarkerPattern.FindAllStringSubmatchIndex(narrative, -1) {
		identity := narrative[loc[2]:loc[3]]
		if !known[identity] {
			return nil, &UnresolvedError{Identity: identity}
		}
		cm.Assign(identity)
	}

	// Pass 2: rewrite markers in place. Every identity resolved above, so
	// the lookup cannot miss.
	summary := MarkerPattern.ReplaceAllStringFunc(narrative, func(marker string) string {
		identity := MarkerPattern.FindStringSubmatch(marker)[1]
		id, _ := cm.ID(identity)
		return fmt.Sprintf("[%d]", id)
	})

	// Pass 3: partition messages into sender groups, preserving fetch
	// order within each group.
	groupIdx := make(map[string]int)
	var groups []Group
	for _, m := range msgs {
		key := strings.ToLower(m.Sender)
		i, ok := groupIdx[key]
		if !ok {
			i = len(groups)
			groupIdx[key] = i
			groups = append(groups, Group{
				Sender:     m.Sender,
				SenderName: m.DisplayName(),
			})
		}
		ref, _ := cm.ID(m.ID)
		groups[i].Entries = append(groups[i].Entries, Entry{Message: m, Ref: ref})
	}

	if !policy.IncludeUncited {
		groups = dropUncited(groups)
	}

	sortGroups(groups)

	return &Document{
		Summary:   summary,
		Citations: cm,
		Appendix:  groups,
	}, nil
}

// dropUncited removes unnumbered entries, and any group left empty.
func dropUncited(groups []Group) []Group {
	out := groups[:0]
	for _, g := range groups {
		kept := make([]Entry, 0, len(g.Entries))
		for _, e := range g.Entries {
			if e.Cited() {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			continue
		}
		g.Entries = kept
		out = append(out, g)
	}
	return out
}

// sortGroups orders cited senders by their lowest citation ID; senders
// whose messages are all uncited sort after them, alphabetically by
// address for a stable secondary order.
func sortGroups(groups []Group) {
	firstRef := func(g Group) int {
		min := 0
		for _, e := range g.Entries {
			if !e.Cited() {
				continue
			}
			if min == 0 || e.Ref < min {
				min = e.Ref
			}
		}
		return min
	}
	sort.SliceStable(groups, func(i, j int) bool {
		ri, rj := firstRef(groups[i]), firstRef(groups[j])
		switch {
		case ri > 0 && rj > 0:
			return ri < rj
		case ri > 0:
			return true
		case rj > 0:
			return false
		default:
			return strings.ToLower(groups[i].Sender) < strings.ToLower(groups[j].Sender)
		}
	})
}
