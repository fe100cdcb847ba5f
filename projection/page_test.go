package projection

import (
	"testing"
	"time"

	"chat-backend/domain"

	"github.com/stretchr/testify/require"
)

func entries(n int) []domain.ConversationEntry {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	out := make([]domain.ConversationEntry, n)
	for i := range out {
		out[i] = privateEntry(byte(i+1), base.Add(time.Duration(i)*time.Minute))
	}
	return out
}

func Test_Slice_Window(t *testing.T) {
	req := require.New(t)
	all := entries(5)

	req.Equal(all[:2], Slice(all, 0, 2))
	req.Equal(all[2:4], Slice(all, 2, 2))
	req.Equal(all[4:], Slice(all, 4, 2), "partial last page")
	req.Empty(Slice(all, 5, 2), "offset past the end")
	req.Empty(Slice(all, -1, 2))
	req.Empty(Slice(all, 0, 0))
}

func Test_Paginate_HasMore_Table(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name       string
		offset     int
		limit      int
		totalCount int
		hasMore    bool
	}{
		{"first page of many", 0, 10, 25, true},
		{"middle page", 10, 10, 25, true},
		{"exact last page", 20, 5, 25, false},
		{"page past the end", 30, 10, 25, false},
		{"limit covers everything", 0, 25, 25, false},
		{"empty total", 0, 10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(entries(tt.totalCount), tt.totalCount, tt.offset, tt.limit)
			req.Equal(tt.hasMore, page.HasMore)
			req.Equal(tt.totalCount, page.TotalCount)
		})
	}
}

func Test_Paginate_TotalCount_Is_Independent_Of_Window(t *testing.T) {
	req := require.New(t)
	all := entries(7)

	for offset := 0; offset < 9; offset++ {
		page := Paginate(all, 7, offset, 3)
		req.Equal(7, page.TotalCount)
		req.Equal(offset+3 < 7, page.HasMore)
	}
}
