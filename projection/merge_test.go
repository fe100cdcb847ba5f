package projection

import (
	"testing"
	"time"

	"chat-backend/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func roomEntry(id byte, room string, at time.Time) domain.ConversationEntry {
	return domain.ConversationEntry{
		Kind: domain.KindRoom,
		ID:   uuid.UUID{id},
		At:   at,
		Room: room,
	}
}

func privateEntry(id byte, at time.Time) domain.ConversationEntry {
	return domain.ConversationEntry{
		Kind: domain.KindPrivate,
		ID:   uuid.UUID{id},
		At:   at,
	}
}

func Test_Merge_Ascending_Preserves_Timestamp_Order(t *testing.T) {
	req := require.New(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	rooms := []domain.ConversationEntry{
		roomEntry(1, "general", base),
		roomEntry(2, "general", base.Add(3*time.Minute)),
		roomEntry(3, "general", base.Add(5*time.Minute)),
	}
	privates := []domain.ConversationEntry{
		privateEntry(4, base.Add(1*time.Minute)),
		privateEntry(5, base.Add(4*time.Minute)),
	}

	merged := Merge(Ascending, rooms, privates)

	req.Len(merged, 5)
	for i := 1; i < len(merged); i++ {
		req.False(merged[i].At.Before(merged[i-1].At),
			"entry %d is older than entry %d", i, i-1)
	}
}

func Test_Merge_Descending_Preserves_Timestamp_Order(t *testing.T) {
	req := require.New(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	rooms := []domain.ConversationEntry{
		roomEntry(1, "general", base.Add(5*time.Minute)),
		roomEntry(2, "general", base.Add(2*time.Minute)),
	}
	privates := []domain.ConversationEntry{
		privateEntry(3, base.Add(4*time.Minute)),
		privateEntry(4, base),
	}

	merged := Merge(Descending, rooms, privates)

	req.Len(merged, 4)
	for i := 1; i < len(merged); i++ {
		req.False(merged[i].At.After(merged[i-1].At),
			"entry %d is newer than entry %d", i, i-1)
	}
}

func Test_Merge_Tie_Break_Is_Deterministic(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	rooms := []domain.ConversationEntry{roomEntry(1, "general", at)}
	privates := []domain.ConversationEntry{privateEntry(2, at)}

	// Private wins the tie regardless of argument order, on every run.
	for range 10 {
		merged := Merge(Ascending, rooms, privates)
		req.Equal(domain.KindPrivate, merged[0].Kind)
		req.Equal(domain.KindRoom, merged[1].Kind)

		merged = Merge(Ascending, privates, rooms)
		req.Equal(domain.KindPrivate, merged[0].Kind)
	}
}

func Test_Merge_Tie_Break_Same_Kind_Orders_By_ID(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	a := []domain.ConversationEntry{privateEntry(9, at)}
	b := []domain.ConversationEntry{privateEntry(3, at)}

	merged := Merge(Ascending, a, b)
	req.Equal(uuid.UUID{3}, merged[0].ID)
	req.Equal(uuid.UUID{9}, merged[1].ID)
}

func Test_Merge_Handles_Empty_And_Single_Streams(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	req.Empty(Merge(Ascending))
	req.Empty(Merge(Ascending, nil, nil))

	single := []domain.ConversationEntry{privateEntry(1, at)}
	merged := Merge(Descending, nil, single)
	req.Len(merged, 1)
	req.Equal(single[0], merged[0])
}

func Test_Merge_Is_NAry(t *testing.T) {
	req := require.New(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	s1 := []domain.ConversationEntry{privateEntry(1, base.Add(2 * time.Minute))}
	s2 := []domain.ConversationEntry{roomEntry(2, "a", base)}
	s3 := []domain.ConversationEntry{roomEntry(3, "b", base.Add(time.Minute))}

	merged := Merge(Ascending, s1, s2, s3)
	req.Equal([]byte{2, 3, 1}, []byte{merged[0].ID[0], merged[1].ID[0], merged[2].ID[0]})
}
