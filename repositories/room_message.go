//go:generate go run go.uber.org/mock/mockgen -source=room_message.go -destination=../mocks/mock_room_message_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"chat-backend/domain"
	apperrors "chat-backend/errors"
	"chat-backend/projection"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IRoomMessageRepository interface {
	Store(ctx context.Context, message domain.RoomMessage) error
	// Fetch returns messages restricted to the given rooms and authored by
	// one of the given users, ordered by timestamp, paged. An empty rooms
	// slice means every room; an empty authors slice means no author filter.
	Fetch(ctx context.Context, rooms, authors []string, order projection.Order, offset, limit int) ([]domain.RoomMessage, error)
	// Count is the exact number of matching messages, ignoring pagination.
	Count(ctx context.Context, rooms, authors []string) (int, error)
	// RoomsForAuthor lists the distinct rooms where the author has posted
	// at least one message. Served from the author index, no bodies read.
	RoomsForAuthor(ctx context.Context, author string) ([]string, error)
	ListRooms(ctx context.Context) ([]string, error)
	RoomExists(ctx context.Context, room string) (bool, error)
}

type RoomMessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewRoomMessageRepository(db *badger.DB, log *slog.Logger) RoomMessageRepository {
	return RoomMessageRepository{db: db, log: log}
}

// diskRoomMessage is the JSON on-disk form of a room message.
type diskRoomMessage struct {
	ID      string `json:"id"`
	Room    string `json:"room"`
	Author  string `json:"author"`
	Content string `json:"content"`
	At      int64  `json:"at"` // UnixNano, UTC
}

// Store persists the message under "room:{room}:{ts}:{uuid}" and
// maintains two secondary indexes: idx:author:{author}:{room} for the
// common-room resolver and idx:room:{room} for distinct room listing.
func (r RoomMessageRepository) Store(ctx context.Context, message domain.RoomMessage) error {
	if err := validateIdentifier("room", message.Room); err != nil {
		return err
	}
	if err := validateIdentifier("author", message.Author); err != nil {
		return err
	}
	if message.Content == "" {
		return fmt.Errorf("%w: content must not be empty", apperrors.ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	key := fmt.Sprintf("%s%s:%019d:%s",
		roomKeyPrefix, message.Room, message.At.UnixNano(), message.ID)
	bytes, err := json.Marshal(fromRoomMessage(message))
	if err != nil {
		return fmt.Errorf("%w: encoding room message: %v", apperrors.ErrStorage, err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), bytes); err != nil {
			return err
		}
		authorIdx := authorIdxPrefix + message.Author + ":" + message.Room
		if err := txn.Set([]byte(authorIdx), nil); err != nil {
			return err
		}
		return txn.Set([]byte(roomIdxPrefix+message.Room), nil)
	})
	if err != nil {
		return fmt.Errorf("%w: writing room message: %v", apperrors.ErrStorage, err)
	}
	return nil
}

func (r RoomMessageRepository) Fetch(ctx context.Context, rooms, authors []string,
	order projection.Order, offset, limit int) ([]domain.RoomMessage, error) {
	if offset < 0 || limit <= 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0 and limit > 0", apperrors.ErrInvalidArgument)
	}

	rooms, err := r.resolveRooms(ctx, rooms)
	if err != nil {
		return nil, err
	}
	authorSet := toSet(authors)

	// Each room prefix is scanned in the requested direction and
	// contributes at most offset+limit candidates: a single room can never
	// supply more than that many entries of the global window.
	perRoom := offset + limit
	var collected []domain.RoomMessage
	for _, room := range rooms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		messages, err := r.scanRoom(room, authorSet, order, perRoom)
		if err != nil {
			return nil, err
		}
		collected = append(collected, messages...)
	}

	sortRoomMessages(collected, order)
	if offset >= len(collected) {
		return nil, nil
	}
	end := min(offset+limit, len(collected))
	return collected[offset:end], nil
}

func (r RoomMessageRepository) Count(ctx context.Context, rooms, authors []string) (int, error) {
	rooms, err := r.resolveRooms(ctx, rooms)
	if err != nil {
		return 0, err
	}
	authorSet := toSet(authors)

	total := 0
	for _, room := range rooms {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := r.countRoom(room, authorSet)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (r RoomMessageRepository) RoomsForAuthor(ctx context.Context, author string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prefix := []byte(authorIdxPrefix + author + ":")
	var rooms []string
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rooms = append(rooms, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scanning author index: %v", apperrors.ErrStorage, err)
	}
	return rooms, nil
}

func (r RoomMessageRepository) ListRooms(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prefix := []byte(roomIdxPrefix)
	var rooms []string
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rooms = append(rooms, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scanning room index: %v", apperrors.ErrStorage, err)
	}
	return rooms, nil
}

func (r RoomMessageRepository) RoomExists(ctx context.Context, room string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	exists := false
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(roomIdxPrefix + room))
		switch err {
		case nil:
			exists = true
			return nil
		case badger.ErrKeyNotFound:
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return false, fmt.Errorf("%w: reading room index: %v", apperrors.ErrStorage, err)
	}
	return exists, nil
}

// resolveRooms expands an empty rooms filter to every known room.
func (r RoomMessageRepository) resolveRooms(ctx context.Context, rooms []string) ([]string, error) {
	if len(rooms) > 0 {
		return lo.Uniq(rooms), nil
	}
	return r.ListRooms(ctx)
}

// scanRoom walks one room prefix in the requested direction and collects
// up to max decoded messages matching the author filter.
func (r RoomMessageRepository) scanRoom(room string, authors map[string]struct{},
	order projection.Order, max int) ([]domain.RoomMessage, error) {
	prefixStr := roomKeyPrefix + room + ":"
	prefix := []byte(prefixStr)

	var messages []domain.RoomMessage
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = order == projection.Descending
		it := txn.NewIterator(options)
		defer it.Close()

		if options.Reverse {
			// Seek past the newest possible key, then walk backwards.
			it.Seek(append([]byte(prefixStr), []byte(maxPaddedTimestamp)...))
		} else {
			it.Seek(prefix)
		}

		for ; it.ValidForPrefix(prefix) && len(messages) < max; it.Next() {
			err := it.Item().Value(func(value []byte) error {
				message, err := decodeRoomMessage(value)
				if err != nil {
					return err
				}
				if matchesAuthor(authors, message.Author) {
					messages = append(messages, message)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scanning room %q: %v", apperrors.ErrStorage, room, err)
	}
	return messages, nil
}

func (r RoomMessageRepository) countRoom(room string, authors map[string]struct{}) (int, error) {
	prefix := []byte(roomKeyPrefix + room + ":")
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		// Key-only iteration suffices without an author filter.
		options.PrefetchValues = len(authors) > 0
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if len(authors) == 0 {
				count++
				continue
			}
			err := it.Item().Value(func(value []byte) error {
				message, err := decodeRoomMessage(value)
				if err != nil {
					return err
				}
				if matchesAuthor(authors, message.Author) {
					count++
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: counting room %q: %v", apperrors.ErrStorage, room, err)
	}
	return count, nil
}

func sortRoomMessages(messages []domain.RoomMessage, order projection.Order) {
	sort.Slice(messages, func(i, j int) bool {
		a, b := messages[i], messages[j]
		if !a.At.Equal(b.At) {
			if order == projection.Ascending {
				return a.At.Before(b.At)
			}
			return a.At.After(b.At)
		}
		return a.ID.String() < b.ID.String()
	})
}

func matchesAuthor(authors map[string]struct{}, author string) bool {
	if len(authors) == 0 {
		return true
	}
	_, ok := authors[author]
	return ok
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func fromRoomMessage(message domain.RoomMessage) diskRoomMessage {
	return diskRoomMessage{
		ID:      message.ID.String(),
		Room:    message.Room,
		Author:  message.Author,
		Content: message.Content,
		At:      message.At.UnixNano(),
	}
}

func decodeRoomMessage(value []byte) (domain.RoomMessage, error) {
	var disk diskRoomMessage
	if err := json.Unmarshal(value, &disk); err != nil {
		return domain.RoomMessage{}, err
	}
	parsedID, err := uuid.Parse(disk.ID)
	if err != nil {
		return domain.RoomMessage{}, err
	}
	return domain.RoomMessage{
		ID:      parsedID,
		Room:    disk.Room,
		Author:  disk.Author,
		Content: disk.Content,
		At:      time.Unix(0, disk.At).UTC(),
	}, nil
}
