package domain

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// EntryKind tags a conversation entry with its source collection.
// KindPrivate sorts before KindRoom when timestamps are identical.
type EntryKind string

const (
	KindPrivate EntryKind = "private"
	KindRoom    EntryKind = "room"
)

// Direction is computed relative to a viewing user and only set on
// thread views.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// ConversationEntry is the request-scoped projection that unifies room
// and private messages for merging and pagination. It is never persisted.
type ConversationEntry struct {
	Kind      EntryKind
	ID        uuid.UUID
	At        time.Time
	Sender    string
	Content   string
	Room      string    // room kind only
	Receiver  string    // private kind only
	Direction Direction // thread views only
}

// FromRoomMessage projects a stored room message onto a conversation entry.
func FromRoomMessage(m RoomMessage) ConversationEntry {
	return ConversationEntry{
		Kind:    KindRoom,
		ID:      m.ID,
		At:      m.At,
		Sender:  m.Author,
		Content: m.Content,
		Room:    m.Room,
	}
}

// FromPrivateMessage projects a stored private message onto a conversation entry.
func FromPrivateMessage(m PrivateMessage) ConversationEntry {
	return ConversationEntry{
		Kind:     KindPrivate,
		ID:       m.ID,
		At:       m.At,
		Sender:   m.Sender,
		Content:  m.Content,
		Receiver: m.Receiver,
	}
}

// WithDirection returns a copy annotated relative to the viewing user:
// sent when the viewer authored the message, received otherwise.
func (e ConversationEntry) WithDirection(viewer string) ConversationEntry {
	if e.Sender == viewer {
		e.Direction = DirectionSent
	} else {
		e.Direction = DirectionReceived
	}
	return e
}

// TieBefore decides the order of two entries sharing an identical
// timestamp: private before room, then by source message ID. The rule is
// direction-independent so repeated merges stay deterministic.
func (e ConversationEntry) TieBefore(other ConversationEntry) bool {
	if e.Kind != other.Kind {
		return e.Kind == KindPrivate
	}
	return bytes.Compare(e.ID[:], other.ID[:]) < 0
}
