package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chat-backend/domain"
	apperrors "chat-backend/errors"
	"chat-backend/projection"
	"chat-backend/repositories"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// MessageIndexer receives every stored room message for full-text
// indexing. Implemented by the bluge-backed search indexer.
type MessageIndexer interface {
	IndexRoomMessage(message domain.RoomMessage) error
}

// RoomNotifier receives every stored room message for live fan-out.
// Implemented by the websocket hub.
type RoomNotifier interface {
	NotifyRoomMessage(message domain.RoomMessage)
}

// ContentModerator censors forbidden words before a message is stored.
type ContentModerator interface {
	CensorContent(original string) (string, []string)
}

type IChatService interface {
	PostRoomMessage(ctx context.Context, cmd domain.PostRoomMessageCommand) (domain.RoomMessage, error)
	PostPrivateMessage(ctx context.Context, cmd domain.PostPrivateMessageCommand) (domain.PrivateMessage, error)
	// RoomHistory returns the newest messages of a room, oldest first.
	// A room without any message is reported as not found.
	RoomHistory(ctx context.Context, room string, limit int) ([]domain.RoomMessage, error)
	// PrivateHistory returns the newest messages between two users, oldest first.
	PrivateHistory(ctx context.Context, a, b string, limit int) ([]domain.PrivateMessage, error)
	ListRooms(ctx context.Context) ([]string, error)
	RoomExists(ctx context.Context, room string) (bool, error)
}

type ChatService struct {
	rooms     repositories.IRoomMessageRepository
	privates  repositories.IPrivateMessageRepository
	moderator ContentModerator
	indexer   MessageIndexer
	notifier  RoomNotifier
	log       *slog.Logger
}

// NewChatService wires the message write path. moderator, indexer and
// notifier are optional; a nil value disables the corresponding side
// effect.
func NewChatService(
	rooms repositories.IRoomMessageRepository,
	privates repositories.IPrivateMessageRepository,
	moderator ContentModerator,
	indexer MessageIndexer,
	notifier RoomNotifier,
	log *slog.Logger,
) *ChatService {
	return &ChatService{
		rooms:     rooms,
		privates:  privates,
		moderator: moderator,
		indexer:   indexer,
		notifier:  notifier,
		log:       log,
	}
}

// censor runs the content through the moderator when one is installed.
func (s *ChatService) censor(content string) string {
	if s.moderator == nil {
		return content
	}
	censored, words := s.moderator.CensorContent(content)
	if len(words) > 0 {
		s.log.Info("Message content censored", "words", words)
	}
	return censored
}

func (s *ChatService) PostRoomMessage(ctx context.Context, cmd domain.PostRoomMessageCommand) (domain.RoomMessage, error) {
	if cmd.Room == "" {
		return domain.RoomMessage{}, fmt.Errorf("%w: room must not be empty", apperrors.ErrInvalidArgument)
	}
	if cmd.Content == "" {
		return domain.RoomMessage{}, fmt.Errorf("%w: content must not be empty", apperrors.ErrInvalidArgument)
	}

	message := domain.RoomMessage{
		ID:      uuid.New(),
		Room:    cmd.Room,
		Author:  cmd.Author,
		Content: s.censor(cmd.Content),
		At:      time.Now().UTC(),
	}

	if err := s.rooms.Store(ctx, message); err != nil {
		return domain.RoomMessage{}, err
	}

	// The search index lags behind storage on failure rather than
	// failing the send: the message is already durable.
	if s.indexer != nil {
		if err := s.indexer.IndexRoomMessage(message); err != nil {
			s.log.Warn("Failed to index room message", "id", message.ID, "err", err)
		}
	}
	if s.notifier != nil {
		s.notifier.NotifyRoomMessage(message)
	}
	return message, nil
}

func (s *ChatService) PostPrivateMessage(ctx context.Context, cmd domain.PostPrivateMessageCommand) (domain.PrivateMessage, error) {
	if err := validateParticipants(cmd.Sender, cmd.Receiver); err != nil {
		return domain.PrivateMessage{}, err
	}
	if cmd.Content == "" {
		return domain.PrivateMessage{}, fmt.Errorf("%w: content must not be empty", apperrors.ErrInvalidArgument)
	}

	message := domain.PrivateMessage{
		ID:       uuid.New(),
		Sender:   cmd.Sender,
		Receiver: cmd.Receiver,
		Content:  s.censor(cmd.Content),
		At:       time.Now().UTC(),
	}

	if err := s.privates.Store(ctx, message); err != nil {
		return domain.PrivateMessage{}, err
	}
	return message, nil
}

func (s *ChatService) RoomHistory(ctx context.Context, room string, limit int) ([]domain.RoomMessage, error) {
	if err := validatePaging(limit, 0); err != nil {
		return nil, err
	}

	// Newest window first, then flipped so clients render oldest first.
	messages, err := s.rooms.Fetch(ctx, []string{room}, nil, projection.Descending, 0, limit)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("%w: room %q has no messages", apperrors.ErrNotFound, room)
	}
	return lo.Reverse(messages), nil
}

func (s *ChatService) PrivateHistory(ctx context.Context, a, b string, limit int) ([]domain.PrivateMessage, error) {
	if err := validateParticipants(a, b); err != nil {
		return nil, err
	}
	if err := validatePaging(limit, 0); err != nil {
		return nil, err
	}

	messages, err := s.privates.FetchBetween(ctx, a, b, projection.Descending, 0, limit)
	if err != nil {
		return nil, err
	}
	return lo.Reverse(messages), nil
}

func (s *ChatService) ListRooms(ctx context.Context) ([]string, error) {
	return s.rooms.ListRooms(ctx)
}

func (s *ChatService) RoomExists(ctx context.Context, room string) (bool, error) {
	return s.rooms.RoomExists(ctx, room)
}
