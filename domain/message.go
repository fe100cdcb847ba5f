// Package domain contains core concepts of the chat system.
// This file defines the two persisted message kinds.
// Messages are immutable once stored and validated by the repositories.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoomMessage is a broadcast message posted to a named room.
type RoomMessage struct {
	ID      uuid.UUID
	Room    string
	Author  string
	Content string
	At      time.Time
}

// PrivateMessage is a one-to-one message. Sender and receiver are
// always distinct user identifiers.
type PrivateMessage struct {
	ID       uuid.UUID
	Sender   string
	Receiver string
	Content  string
	At       time.Time
}
