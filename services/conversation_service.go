package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"chat-backend/domain"
	apperrors "chat-backend/errors"
	"chat-backend/projection"
	"chat-backend/repositories"

	"github.com/samber/lo"
)

// IConversationService serves the three derived conversation views. All
// operations are read-only and stateless: unknown users simply yield
// empty results, identity validation happened at the transport boundary.
type IConversationService interface {
	CommonRooms(ctx context.Context, a, b string) ([]string, error)
	UnifiedFeed(ctx context.Context, user string, limit int) (UnifiedFeed, error)
	Pairwise(ctx context.Context, a, b string, limit int) (PairwiseConversation, error)
	Thread(ctx context.Context, a, b string, limit, offset int) (Thread, error)
}

// UnifiedFeed is all of one user's activity, newest first.
type UnifiedFeed struct {
	UserID  string
	Entries []domain.ConversationEntry
}

// PairwiseConversation interleaves private messages and shared-room
// messages between two users, oldest first.
type PairwiseConversation struct {
	Participants [2]string
	Entries      []domain.ConversationEntry
}

// Thread is a paginated pairwise conversation with per-entry direction
// relative to the current user.
type Thread struct {
	CurrentUser string
	OtherUser   string
	Limit       int
	Offset      int
	Page        projection.Page
}

type ConversationService struct {
	rooms    repositories.IRoomMessageRepository
	privates repositories.IPrivateMessageRepository
	log      *slog.Logger
}

func NewConversationService(
	rooms repositories.IRoomMessageRepository,
	privates repositories.IPrivateMessageRepository,
	log *slog.Logger,
) *ConversationService {
	return &ConversationService{rooms: rooms, privates: privates, log: log}
}

// CommonRooms returns the rooms in which both users have authored at
// least one message. Computed from the author index alone: only
// (room, distinct author) pairs are read, never message bodies.
func (s *ConversationService) CommonRooms(ctx context.Context, a, b string) ([]string, error) {
	roomsA, err := s.rooms.RoomsForAuthor(ctx, a)
	if err != nil {
		return nil, err
	}
	roomsB, err := s.rooms.RoomsForAuthor(ctx, b)
	if err != nil {
		return nil, err
	}

	common := lo.Intersect(roomsA, roomsB)
	sort.Strings(common)
	return common, nil
}

// UnifiedFeed merges the user's own room messages with every private
// message the user sent or received, newest first. Only messages the
// user authored count as room activity; messages by others in rooms the
// user frequents are deliberately excluded.
func (s *ConversationService) UnifiedFeed(ctx context.Context, user string, limit int) (UnifiedFeed, error) {
	if err := validatePaging(limit, 0); err != nil {
		return UnifiedFeed{}, err
	}

	ownRooms, err := s.rooms.RoomsForAuthor(ctx, user)
	if err != nil {
		return UnifiedFeed{}, err
	}

	var roomMessages []domain.RoomMessage
	if len(ownRooms) > 0 {
		roomMessages, err = s.rooms.Fetch(ctx, ownRooms, []string{user}, projection.Descending, 0, limit)
		if err != nil {
			return UnifiedFeed{}, err
		}
	}

	privateMessages, err := s.privates.FetchForUser(ctx, user, projection.Descending, 0, limit)
	if err != nil {
		return UnifiedFeed{}, err
	}

	merged := projection.Merge(projection.Descending,
		roomEntries(roomMessages), privateEntries(privateMessages))

	return UnifiedFeed{
		UserID:  user,
		Entries: projection.Slice(merged, 0, limit),
	}, nil
}

// Pairwise returns the full exchange between two users, oldest first:
// their private messages plus room messages they authored in rooms they
// share.
func (s *ConversationService) Pairwise(ctx context.Context, a, b string, limit int) (PairwiseConversation, error) {
	if err := validateParticipants(a, b); err != nil {
		return PairwiseConversation{}, err
	}
	if err := validatePaging(limit, 0); err != nil {
		return PairwiseConversation{}, err
	}

	common, err := s.CommonRooms(ctx, a, b)
	if err != nil {
		return PairwiseConversation{}, err
	}
	merged, err := s.fetchPair(ctx, a, b, common, limit)
	if err != nil {
		return PairwiseConversation{}, err
	}

	return PairwiseConversation{
		Participants: [2]string{a, b},
		Entries:      projection.Slice(merged, 0, limit),
	}, nil
}

// Thread is the paginated chat-window view: same sources as Pairwise,
// annotated with direction relative to the current user.
func (s *ConversationService) Thread(ctx context.Context, currentUser, otherUser string, limit, offset int) (Thread, error) {
	if err := validateParticipants(currentUser, otherUser); err != nil {
		return Thread{}, err
	}
	if err := validatePaging(limit, offset); err != nil {
		return Thread{}, err
	}

	common, err := s.CommonRooms(ctx, currentUser, otherUser)
	if err != nil {
		return Thread{}, err
	}

	// Strategy: fetch offset+limit from position zero in each source and
	// slice after the merge. Offsetting each source independently would
	// misalign two unrelated streams at page boundaries.
	merged, err := s.fetchPair(ctx, currentUser, otherUser, common, offset+limit)
	if err != nil {
		return Thread{}, err
	}

	totalCount, err := s.countPair(ctx, currentUser, otherUser, common)
	if err != nil {
		return Thread{}, err
	}

	page := projection.Paginate(merged, totalCount, offset, limit)
	page.Entries = lo.Map(page.Entries, func(e domain.ConversationEntry, _ int) domain.ConversationEntry {
		return e.WithDirection(currentUser)
	})

	return Thread{
		CurrentUser: currentUser,
		OtherUser:   otherUser,
		Limit:       limit,
		Offset:      offset,
		Page:        page,
	}, nil
}

// fetchPair collects both sources of a pairwise conversation, each
// fetched ascending from position zero and bounded by perSource, and
// merges them ascending.
func (s *ConversationService) fetchPair(ctx context.Context, a, b string, common []string, perSource int) ([]domain.ConversationEntry, error) {
	privateMessages, err := s.privates.FetchBetween(ctx, a, b, projection.Ascending, 0, perSource)
	if err != nil {
		return nil, err
	}

	var roomMessages []domain.RoomMessage
	if len(common) > 0 {
		roomMessages, err = s.rooms.Fetch(ctx, common, []string{a, b}, projection.Ascending, 0, perSource)
		if err != nil {
			return nil, err
		}
	}

	return projection.Merge(projection.Ascending,
		privateEntries(privateMessages), roomEntries(roomMessages)), nil
}

// countPair computes the true pairwise total as the sum of independent
// per-source counts, unaffected by pagination.
func (s *ConversationService) countPair(ctx context.Context, a, b string, common []string) (int, error) {
	privateCount, err := s.privates.CountBetween(ctx, a, b)
	if err != nil {
		return 0, err
	}

	roomCount := 0
	if len(common) > 0 {
		roomCount, err = s.rooms.Count(ctx, common, []string{a, b})
		if err != nil {
			return 0, err
		}
	}
	return privateCount + roomCount, nil
}

func roomEntries(messages []domain.RoomMessage) []domain.ConversationEntry {
	return lo.Map(messages, func(m domain.RoomMessage, _ int) domain.ConversationEntry {
		return domain.FromRoomMessage(m)
	})
}

func privateEntries(messages []domain.PrivateMessage) []domain.ConversationEntry {
	return lo.Map(messages, func(m domain.PrivateMessage, _ int) domain.ConversationEntry {
		return domain.FromPrivateMessage(m)
	})
}

func validateParticipants(a, b string) error {
	if a == "" || b == "" {
		return fmt.Errorf("%w: participants must not be empty", apperrors.ErrInvalidArgument)
	}
	if a == b {
		return fmt.Errorf("%w: participants must be distinct", apperrors.ErrInvalidArgument)
	}
	return nil
}

func validatePaging(limit, offset int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: limit must be positive", apperrors.ErrInvalidArgument)
	}
	if offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", apperrors.ErrInvalidArgument)
	}
	return nil
}
