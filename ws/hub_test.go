package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"chat-backend/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakePoster struct {
	posted chan domain.PostRoomMessageCommand
}

func (f *fakePoster) PostRoomMessage(_ context.Context, cmd domain.PostRoomMessageCommand) (domain.RoomMessage, error) {
	f.posted <- cmd
	return domain.RoomMessage{ID: uuid.New(), Room: cmd.Room, Author: cmd.Author, Content: cmd.Content, At: time.Now().UTC()}, nil
}

func newTestClient(room string) *Client {
	return &Client{send: make(chan []byte, 8), userID: "alice", room: room}
}

func TestHubBroadcastFiltersByRoom(t *testing.T) {
	req := require.New(t)
	hub := NewHub(slog.Default(), &fakePoster{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	general := newTestClient("general")
	random := newTestClient("random")
	all := newTestClient("")
	hub.register <- general
	hub.register <- random
	hub.register <- all

	message := domain.RoomMessage{
		ID:      uuid.New(),
		Room:    "general",
		Author:  "bob",
		Content: "hello",
		At:      time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	hub.NotifyRoomMessage(message)

	var ev roomEvent
	select {
	case payload := <-general.send:
		req.NoError(json.Unmarshal(payload, &ev))
	case <-time.After(2 * time.Second):
		t.Fatal("general subscriber did not receive the event")
	}
	req.Equal("room_message", ev.Type)
	req.Equal(message.ID.String(), ev.ID)
	req.Equal("general", ev.RoomID)
	req.Equal("bob", ev.SenderID)
	req.Equal("2025-03-01T10:00:00Z", ev.Timestamp)

	select {
	case payload := <-all.send:
		req.NotEmpty(payload)
	case <-time.After(2 * time.Second):
		t.Fatal("all-rooms subscriber did not receive the event")
	}

	select {
	case <-random.send:
		t.Fatal("subscriber of another room received the event")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubInboundPostsThroughService(t *testing.T) {
	req := require.New(t)
	poster := &fakePoster{posted: make(chan domain.PostRoomMessageCommand, 1)}
	hub := NewHub(slog.Default(), poster, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newTestClient("general")
	hub.register <- client

	payload, err := json.Marshal(inboundMessage{Content: "hi from the socket"})
	req.NoError(err)
	hub.publish <- inbound{client: client, payload: payload}

	select {
	case cmd := <-poster.posted:
		// Room falls back to the client subscription when omitted.
		req.Equal("general", cmd.Room)
		req.Equal("alice", cmd.Author)
		req.Equal("hi from the socket", cmd.Content)
	case <-time.After(2 * time.Second):
		t.Fatal("inbound message was not posted")
	}
}
