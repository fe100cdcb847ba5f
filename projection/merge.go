// Package projection builds conversation views from independently stored
// message streams. It handles interleaving, ordering and pagination, and
// never touches storage itself.
package projection

import (
	"chat-backend/domain"
)

// Order declares the timestamp direction of a view. A view is either
// fully ascending or fully descending, never mixed.
type Order int

const (
	Ascending Order = iota
	Descending
)

// Merge interleaves N streams into a single sequence preserving global
// timestamp order. Every input stream must already be sorted in the
// requested order. Ties are broken by (kind, source message ID) ascending
// so repeated runs produce identical output.
//
// The merge is a k-way pointer merge: one pass, no re-sort. Inputs are
// bounded by the page limit at the call sites, so the cursor scan over
// the stream heads stays cheap.
func Merge(order Order, streams ...[]domain.ConversationEntry) []domain.ConversationEntry {
	total := 0
	for _, s := range streams {
		total += len(s)
	}

	merged := make([]domain.ConversationEntry, 0, total)
	cursors := make([]int, len(streams))

	for len(merged) < total {
		best := -1
		for i, s := range streams {
			if cursors[i] >= len(s) {
				continue
			}
			if best == -1 || precedes(order, s[cursors[i]], streams[best][cursors[best]]) {
				best = i
			}
		}
		merged = append(merged, streams[best][cursors[best]])
		cursors[best]++
	}
	return merged
}

// precedes reports whether a must appear before b in the given order.
func precedes(order Order, a, b domain.ConversationEntry) bool {
	if !a.At.Equal(b.At) {
		if order == Ascending {
			return a.At.Before(b.At)
		}
		return a.At.After(b.At)
	}
	return a.TieBefore(b)
}
