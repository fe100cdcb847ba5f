//go:generate go run go.uber.org/mock/mockgen -source=private_message.go -destination=../mocks/mock_private_message_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"chat-backend/domain"
	apperrors "chat-backend/errors"
	"chat-backend/projection"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IPrivateMessageRepository interface {
	Store(ctx context.Context, message domain.PrivateMessage) error
	// FetchBetween returns messages exchanged between a and b in either
	// direction, ordered by timestamp, paged.
	FetchBetween(ctx context.Context, a, b string, order projection.Order, offset, limit int) ([]domain.PrivateMessage, error)
	// FetchForUser returns every message the user sent or received,
	// across all correspondents, ordered by timestamp, paged.
	FetchForUser(ctx context.Context, user string, order projection.Order, offset, limit int) ([]domain.PrivateMessage, error)
	CountBetween(ctx context.Context, a, b string) (int, error)
}

type PrivateMessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewPrivateMessageRepository(db *badger.DB, log *slog.Logger) PrivateMessageRepository {
	return PrivateMessageRepository{db: db, log: log}
}

type diskPrivateMessage struct {
	ID       string `json:"id"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
	At       int64  `json:"at"` // UnixNano, UTC
}

// Store persists the message under "dm:{pair}:{ts}:{uuid}". Both
// directions of a conversation share the canonical pair segment, so one
// prefix scan serves the whole exchange. A copy is also written under
// "dmu:{participant}:..." for each side, which serves the per-user feed
// without scanning every pair.
func (p PrivateMessageRepository) Store(ctx context.Context, message domain.PrivateMessage) error {
	if err := validateIdentifier("sender", message.Sender); err != nil {
		return err
	}
	if err := validateIdentifier("receiver", message.Receiver); err != nil {
		return err
	}
	if message.Sender == message.Receiver {
		return fmt.Errorf("%w: sender and receiver must be distinct", apperrors.ErrInvalidArgument)
	}
	if message.Content == "" {
		return fmt.Errorf("%w: content must not be empty", apperrors.ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	key := fmt.Sprintf("%s%s:%019d:%s",
		dmKeyPrefix, pairKey(message.Sender, message.Receiver), message.At.UnixNano(), message.ID)
	bytes, err := json.Marshal(fromPrivateMessage(message))
	if err != nil {
		return fmt.Errorf("%w: encoding private message: %v", apperrors.ErrStorage, err)
	}

	suffix := fmt.Sprintf("%019d:%s", message.At.UnixNano(), message.ID)
	err = p.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), bytes); err != nil {
			return err
		}
		senderKey := dmUserKeyPrefix + message.Sender + ":" + suffix
		if err := txn.Set([]byte(senderKey), bytes); err != nil {
			return err
		}
		receiverKey := dmUserKeyPrefix + message.Receiver + ":" + suffix
		return txn.Set([]byte(receiverKey), bytes)
	})
	if err != nil {
		return fmt.Errorf("%w: writing private message: %v", apperrors.ErrStorage, err)
	}
	return nil
}

func (p PrivateMessageRepository) FetchBetween(ctx context.Context, a, b string,
	order projection.Order, offset, limit int) ([]domain.PrivateMessage, error) {
	if offset < 0 || limit <= 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0 and limit > 0", apperrors.ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.scanPrefix(dmKeyPrefix+pairKey(a, b)+":", order, offset, limit)
}

func (p PrivateMessageRepository) FetchForUser(ctx context.Context, user string,
	order projection.Order, offset, limit int) ([]domain.PrivateMessage, error) {
	if offset < 0 || limit <= 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0 and limit > 0", apperrors.ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.scanPrefix(dmUserKeyPrefix+user+":", order, offset, limit)
}

// scanPrefix walks one key namespace in the requested direction,
// skipping offset records and decoding at most limit of them.
func (p PrivateMessageRepository) scanPrefix(prefixStr string,
	order projection.Order, offset, limit int) ([]domain.PrivateMessage, error) {
	prefix := []byte(prefixStr)

	var messages []domain.PrivateMessage
	err := p.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = order == projection.Descending
		it := txn.NewIterator(options)
		defer it.Close()

		if options.Reverse {
			it.Seek(append([]byte(prefixStr), []byte(maxPaddedTimestamp)...))
		} else {
			it.Seek(prefix)
		}

		skipped := 0
		for ; it.ValidForPrefix(prefix) && len(messages) < limit; it.Next() {
			if skipped < offset {
				skipped++
				continue
			}
			err := it.Item().Value(func(value []byte) error {
				message, err := decodePrivateMessage(value)
				if err != nil {
					return err
				}
				messages = append(messages, message)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scanning private messages: %v", apperrors.ErrStorage, err)
	}
	return messages, nil
}

func (p PrivateMessageRepository) CountBetween(ctx context.Context, a, b string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	prefix := []byte(dmKeyPrefix + pairKey(a, b) + ":")
	count := 0
	err := p.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: counting private messages: %v", apperrors.ErrStorage, err)
	}
	return count, nil
}

func fromPrivateMessage(message domain.PrivateMessage) diskPrivateMessage {
	return diskPrivateMessage{
		ID:       message.ID.String(),
		Sender:   message.Sender,
		Receiver: message.Receiver,
		Content:  message.Content,
		At:       message.At.UnixNano(),
	}
}

func decodePrivateMessage(value []byte) (domain.PrivateMessage, error) {
	var disk diskPrivateMessage
	if err := json.Unmarshal(value, &disk); err != nil {
		return domain.PrivateMessage{}, err
	}
	parsedID, err := uuid.Parse(disk.ID)
	if err != nil {
		return domain.PrivateMessage{}, err
	}
	return domain.PrivateMessage{
		ID:       parsedID,
		Sender:   disk.Sender,
		Receiver: disk.Receiver,
		Content:  disk.Content,
		At:       time.Unix(0, disk.At).UTC(),
	}, nil
}
