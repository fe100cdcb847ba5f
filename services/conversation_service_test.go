package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chat-backend/domain"
	"chat-backend/errors"
	"chat-backend/mocks"
	"chat-backend/projection"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func baseTime() time.Time {
	return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

func roomMsg(room, author, content string, at time.Time) domain.RoomMessage {
	return domain.RoomMessage{ID: uuid.New(), Room: room, Author: author, Content: content, At: at}
}

func privateMsg(sender, receiver, content string, at time.Time) domain.PrivateMessage {
	return domain.PrivateMessage{ID: uuid.New(), Sender: sender, Receiver: receiver, Content: content, At: at}
}

func newConversationFixture(t *testing.T) (*mocks.MockIRoomMessageRepository, *mocks.MockIPrivateMessageRepository, *ConversationService) {
	ctrl := gomock.NewController(t)
	roomRepo := mocks.NewMockIRoomMessageRepository(ctrl)
	privateRepo := mocks.NewMockIPrivateMessageRepository(ctrl)
	svc := NewConversationService(roomRepo, privateRepo, slog.Default())
	return roomRepo, privateRepo, svc
}

func TestConversationService_CommonRooms(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the sorted intersection of both authors' rooms", func(t *testing.T) {
		req := require.New(t)
		roomRepo, _, svc := newConversationFixture(t)

		roomRepo.EXPECT().RoomsForAuthor(ctx, "alice").
			Return([]string{"random", "general", "dev"}, nil)
		roomRepo.EXPECT().RoomsForAuthor(ctx, "bob").
			Return([]string{"general", "ops", "random"}, nil)

		common, err := svc.CommonRooms(ctx, "alice", "bob")

		req.NoError(err)
		req.Equal([]string{"general", "random"}, common)
	})

	t.Run("should return empty when the users share no room", func(t *testing.T) {
		req := require.New(t)
		roomRepo, _, svc := newConversationFixture(t)

		roomRepo.EXPECT().RoomsForAuthor(ctx, "alice").Return([]string{"dev"}, nil)
		roomRepo.EXPECT().RoomsForAuthor(ctx, "bob").Return([]string{"ops"}, nil)

		common, err := svc.CommonRooms(ctx, "alice", "bob")

		req.NoError(err)
		req.Empty(common)
	})

	t.Run("should fail the whole view when one index read fails", func(t *testing.T) {
		req := require.New(t)
		roomRepo, _, svc := newConversationFixture(t)

		roomRepo.EXPECT().RoomsForAuthor(ctx, "alice").Return(nil, errors.ErrStorage)

		_, err := svc.CommonRooms(ctx, "alice", "bob")

		req.ErrorIs(err, errors.ErrStorage)
	})
}

func TestConversationService_UnifiedFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("should merge authored room messages with private traffic newest first", func(t *testing.T) {
		req := require.New(t)
		roomRepo, privateRepo, svc := newConversationFixture(t)

		t0 := baseTime()
		roomMessages := []domain.RoomMessage{
			roomMsg("general", "alice", "in room", t0.Add(3*time.Minute)),
			roomMsg("general", "alice", "earlier in room", t0.Add(1*time.Minute)),
		}
		privateMessages := []domain.PrivateMessage{
			privateMsg("bob", "alice", "received dm", t0.Add(2*time.Minute)),
			privateMsg("alice", "carol", "sent dm", t0),
		}

		roomRepo.EXPECT().RoomsForAuthor(ctx, "alice").Return([]string{"general"}, nil)
		roomRepo.EXPECT().
			Fetch(ctx, []string{"general"}, []string{"alice"}, projection.Descending, 0, 10).
			Return(roomMessages, nil)
		privateRepo.EXPECT().
			FetchForUser(ctx, "alice", projection.Descending, 0, 10).
			Return(privateMessages, nil)

		feed, err := svc.UnifiedFeed(ctx, "alice", 10)

		req.NoError(err)
		req.Equal("alice", feed.UserID)
		req.Len(feed.Entries, 4)
		for i := 1; i < len(feed.Entries); i++ {
			req.False(feed.Entries[i].At.After(feed.Entries[i-1].At))
		}
		req.Equal("in room", feed.Entries[0].Content)
		req.Equal("sent dm", feed.Entries[3].Content)
	})

	t.Run("should skip the room fetch entirely when the user authored nothing", func(t *testing.T) {
		req := require.New(t)
		roomRepo, privateRepo, svc := newConversationFixture(t)

		roomRepo.EXPECT().RoomsForAuthor(ctx, "ghost").Return(nil, nil)
		privateRepo.EXPECT().
			FetchForUser(ctx, "ghost", projection.Descending, 0, 5).
			Return(nil, nil)

		feed, err := svc.UnifiedFeed(ctx, "ghost", 5)

		req.NoError(err)
		req.Empty(feed.Entries)
	})

	t.Run("should truncate the merged feed to the limit", func(t *testing.T) {
		req := require.New(t)
		roomRepo, privateRepo, svc := newConversationFixture(t)

		t0 := baseTime()
		roomRepo.EXPECT().RoomsForAuthor(ctx, "alice").Return([]string{"general"}, nil)
		roomRepo.EXPECT().
			Fetch(ctx, []string{"general"}, []string{"alice"}, projection.Descending, 0, 2).
			Return([]domain.RoomMessage{
				roomMsg("general", "alice", "r1", t0.Add(4*time.Minute)),
				roomMsg("general", "alice", "r2", t0.Add(3*time.Minute)),
			}, nil)
		privateRepo.EXPECT().
			FetchForUser(ctx, "alice", projection.Descending, 0, 2).
			Return([]domain.PrivateMessage{
				privateMsg("alice", "bob", "p1", t0.Add(2*time.Minute)),
				privateMsg("alice", "bob", "p2", t0.Add(1*time.Minute)),
			}, nil)

		feed, err := svc.UnifiedFeed(ctx, "alice", 2)

		req.NoError(err)
		req.Len(feed.Entries, 2)
		req.Equal("r1", feed.Entries[0].Content)
		req.Equal("r2", feed.Entries[1].Content)
	})

	t.Run("should reject a non-positive limit", func(t *testing.T) {
		req := require.New(t)
		_, _, svc := newConversationFixture(t)

		_, err := svc.UnifiedFeed(ctx, "alice", 0)

		req.ErrorIs(err, errors.ErrInvalidArgument)
	})
}

func TestConversationService_Pairwise(t *testing.T) {
	ctx := context.Background()

	t.Run("should interleave private and shared-room messages ascending", func(t *testing.T) {
		req := require.New(t)
		roomRepo, privateRepo, svc := newConversationFixture(t)

		t0 := baseTime()
		roomRepo.EXPECT().RoomsForAuthor(ctx, "alice").Return([]string{"general"}, nil)
		roomRepo.EXPECT().RoomsForAuthor(ctx, "bob").Return([]string{"general"}, nil)
		privateRepo.EXPECT().
			FetchBetween(ctx, "alice", "bob", projection.Ascending, 0, 10).
			Return([]domain.PrivateMessage{
				privateMsg("alice", "bob", "dm early", t0),
				privateMsg("bob", "alice", "dm late", t0.Add(3*time.Minute)),
			}, nil)
		roomRepo.EXPECT().
			Fetch(ctx, []string{"general"}, []string{"alice", "bob"}, projection.Ascending, 0, 10).
			Return([]domain.RoomMessage{
				roomMsg("general", "bob", "room middle", t0.Add(1*time.Minute)),
			}, nil)

		conversation, err := svc.Pairwise(ctx, "alice", "bob", 10)

		req.NoError(err)
		req.Equal([2]string{"alice", "bob"}, conversation.Participants)
		req.Len(conversation.Entries, 3)
		req.Equal("dm early", conversation.Entries[0].Content)
		req.Equal("room middle", conversation.Entries[1].Content)
		req.Equal("dm late", conversation.Entries[2].Content)
	})

	t.Run("should return only private messages when no room is shared", func(t *testing.T) {
		req := require.New(t)
		roomRepo, privateRepo, svc := newConversationFixture(t)

		t0 := baseTime()
		roomRepo.EXPECT().RoomsForAuthor(ctx, "alice").Return([]string{"dev"}, nil)
		roomRepo.EXPECT().RoomsForAuthor(ctx, "bob").Return([]string{"ops"}, nil)
		privateRepo.EXPECT().
			FetchBetween(ctx, "alice", "bob", projection.Ascending, 0, 10).
			Return([]domain.PrivateMessage{privateMsg("alice", "bob", "dm", t0)}, nil)

		conversation, err := svc.Pairwise(ctx, "alice", "bob", 10)

		req.NoError(err)
		req.Len(conversation.Entries, 1)
		req.Equal(domain.KindPrivate, conversation.Entries[0].Kind)
	})

	t.Run("should reject identical participants", func(t *testing.T) {
		req := require.New(t)
		_, _, svc := newConversationFixture(t)

		_, err := svc.Pairwise(ctx, "alice", "alice", 10)

		req.ErrorIs(err, errors.ErrInvalidArgument)
	})
}

func TestConversationService_Thread(t *testing.T) {
	ctx := context.Background()

	t.Run("should annotate direction relative to the current user", func(t *testing.T) {
		req := require.New(t)
		roomRepo, privateRepo, svc := newConversationFixture(t)

		t0 := baseTime()
		roomRepo.EXPECT().RoomsForAuthor(ctx, "alice").Return(nil, nil)
		roomRepo.EXPECT().RoomsForAuthor(ctx, "bob").Return(nil, nil)
		privateRepo.EXPECT().
			FetchBetween(ctx, "alice", "bob", projection.Ascending, 0, 10).
			Return([]domain.PrivateMessage{
				privateMsg("alice", "bob", "from alice", t0),
				privateMsg("bob", "alice", "from bob", t0.Add(time.Minute)),
			}, nil)
		privateRepo.EXPECT().CountBetween(ctx, "alice", "bob").Return(2, nil)

		thread, err := svc.Thread(ctx, "alice", "bob", 10, 0)

		req.NoError(err)
		req.Len(thread.Page.Entries, 2)
		req.Equal(domain.DirectionSent, thread.Page.Entries[0].Direction)
		req.Equal(domain.DirectionReceived, thread.Page.Entries[1].Direction)
	})

	t.Run("should flip every direction when viewed by the other participant", func(t *testing.T) {
		req := require.New(t)
		roomRepo, privateRepo, svc := newConversationFixture(t)

		t0 := baseTime()
		roomRepo.EXPECT().RoomsForAuthor(ctx, "bob").Return(nil, nil)
		roomRepo.EXPECT().RoomsForAuthor(ctx, "alice").Return(nil, nil)
		privateRepo.EXPECT().
			FetchBetween(ctx, "bob", "alice", projection.Ascending, 0, 10).
			Return([]domain.PrivateMessage{
				privateMsg("alice", "bob", "from alice", t0),
				privateMsg("bob", "alice", "from bob", t0.Add(time.Minute)),
			}, nil)
		privateRepo.EXPECT().CountBetween(ctx, "bob", "alice").Return(2, nil)

		thread, err := svc.Thread(ctx, "bob", "alice", 10, 0)

		req.NoError(err)
		req.Equal(domain.DirectionReceived, thread.Page.Entries[0].Direction)
		req.Equal(domain.DirectionSent, thread.Page.Entries[1].Direction)
	})

	t.Run("should compute totalCount as the sum of per-source counts", func(t *testing.T) {
		req := require.New(t)
		roomRepo, privateRepo, svc := newConversationFixture(t)

		t0 := baseTime()
		roomRepo.EXPECT().RoomsForAuthor(ctx, "alice").Return([]string{"general"}, nil)
		roomRepo.EXPECT().RoomsForAuthor(ctx, "bob").Return([]string{"general"}, nil)
		privateRepo.EXPECT().
			FetchBetween(ctx, "alice", "bob", projection.Ascending, 0, 2).
			Return([]domain.PrivateMessage{
				privateMsg("alice", "bob", "p1", t0),
				privateMsg("bob", "alice", "p2", t0.Add(time.Minute)),
			}, nil)
		roomRepo.EXPECT().
			Fetch(ctx, []string{"general"}, []string{"alice", "bob"}, projection.Ascending, 0, 2).
			Return([]domain.RoomMessage{
				roomMsg("general", "alice", "r1", t0.Add(2*time.Minute)),
				roomMsg("general", "bob", "r2", t0.Add(3*time.Minute)),
			}, nil)
		privateRepo.EXPECT().CountBetween(ctx, "alice", "bob").Return(7, nil)
		roomRepo.EXPECT().Count(ctx, []string{"general"}, []string{"alice", "bob"}).Return(5, nil)

		thread, err := svc.Thread(ctx, "alice", "bob", 2, 0)

		req.NoError(err)
		req.Equal(12, thread.Page.TotalCount)
		req.True(thread.Page.HasMore)
		req.Len(thread.Page.Entries, 2)
	})

	t.Run("should slice the merged stream after the merge not per source", func(t *testing.T) {
		req := require.New(t)
		roomRepo, privateRepo, svc := newConversationFixture(t)

		// Page two with limit 2: sources are fetched from zero with
		// perSource = offset+limit = 4, then the window [2,4) is cut
		// from the merged stream.
		t0 := baseTime()
		roomRepo.EXPECT().RoomsForAuthor(ctx, "alice").Return([]string{"general"}, nil)
		roomRepo.EXPECT().RoomsForAuthor(ctx, "bob").Return([]string{"general"}, nil)
		privateRepo.EXPECT().
			FetchBetween(ctx, "alice", "bob", projection.Ascending, 0, 4).
			Return([]domain.PrivateMessage{
				privateMsg("alice", "bob", "p1", t0),
				privateMsg("bob", "alice", "p2", t0.Add(2*time.Minute)),
			}, nil)
		roomRepo.EXPECT().
			Fetch(ctx, []string{"general"}, []string{"alice", "bob"}, projection.Ascending, 0, 4).
			Return([]domain.RoomMessage{
				roomMsg("general", "alice", "r1", t0.Add(1*time.Minute)),
				roomMsg("general", "bob", "r2", t0.Add(3*time.Minute)),
			}, nil)
		privateRepo.EXPECT().CountBetween(ctx, "alice", "bob").Return(2, nil)
		roomRepo.EXPECT().Count(ctx, []string{"general"}, []string{"alice", "bob"}).Return(2, nil)

		thread, err := svc.Thread(ctx, "alice", "bob", 2, 2)

		req.NoError(err)
		// Merged order: p1, r1, p2, r2. The second page is p2, r2.
		req.Len(thread.Page.Entries, 2)
		req.Equal("p2", thread.Page.Entries[0].Content)
		req.Equal("r2", thread.Page.Entries[1].Content)
		req.Equal(4, thread.Page.TotalCount)
		req.False(thread.Page.HasMore)
	})

	t.Run("should return an empty page with zero total for strangers", func(t *testing.T) {
		req := require.New(t)
		roomRepo, privateRepo, svc := newConversationFixture(t)

		roomRepo.EXPECT().RoomsForAuthor(ctx, "alice").Return(nil, nil)
		roomRepo.EXPECT().RoomsForAuthor(ctx, "dave").Return(nil, nil)
		privateRepo.EXPECT().
			FetchBetween(ctx, "alice", "dave", projection.Ascending, 0, 10).
			Return(nil, nil)
		privateRepo.EXPECT().CountBetween(ctx, "alice", "dave").Return(0, nil)

		thread, err := svc.Thread(ctx, "alice", "dave", 10, 0)

		req.NoError(err)
		req.Empty(thread.Page.Entries)
		req.Zero(thread.Page.TotalCount)
		req.False(thread.Page.HasMore)
	})

	t.Run("should reject invalid paging parameters", func(t *testing.T) {
		req := require.New(t)
		_, _, svc := newConversationFixture(t)

		_, err := svc.Thread(ctx, "alice", "bob", 0, 0)
		req.ErrorIs(err, errors.ErrInvalidArgument)

		_, err = svc.Thread(ctx, "alice", "bob", 10, -1)
		req.ErrorIs(err, errors.ErrInvalidArgument)
	})

	t.Run("should propagate a storage failure instead of a partial merge", func(t *testing.T) {
		req := require.New(t)
		roomRepo, privateRepo, svc := newConversationFixture(t)

		roomRepo.EXPECT().RoomsForAuthor(ctx, "alice").Return([]string{"general"}, nil)
		roomRepo.EXPECT().RoomsForAuthor(ctx, "bob").Return([]string{"general"}, nil)
		privateRepo.EXPECT().
			FetchBetween(ctx, "alice", "bob", projection.Ascending, 0, 10).
			Return(nil, errors.ErrStorage)

		_, err := svc.Thread(ctx, "alice", "bob", 10, 0)

		req.ErrorIs(err, errors.ErrStorage)
	})
}
