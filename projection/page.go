package projection

import "chat-backend/domain"

// Page is one window of a merged conversation plus the metadata a client
// needs to page further. TotalCount always reflects the true total across
// all sources, never the size of a fetched page.
type Page struct {
	Entries    []domain.ConversationEntry
	TotalCount int
	HasMore    bool
}

// Slice returns the entries in [offset, offset+limit) of the merged order.
// Sources must have been fetched from position zero and merged first:
// offsetting each source independently misaligns two unrelated streams
// and produces duplicated or missing entries at page boundaries.
func Slice(entries []domain.ConversationEntry, offset, limit int) []domain.ConversationEntry {
	if offset < 0 || limit <= 0 || offset >= len(entries) {
		return nil
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end]
}

// Paginate slices the merged sequence and derives the has-more flag from
// the independent per-source total.
func Paginate(merged []domain.ConversationEntry, totalCount, offset, limit int) Page {
	return Page{
		Entries:    Slice(merged, offset, limit),
		TotalCount: totalCount,
		HasMore:    offset+limit < totalCount,
	}
}
