// Package ws fans out stored room messages to connected websocket
// clients and accepts inbound messages over the same connection.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"chat-backend/domain"
)

// MessagePoster persists inbound websocket messages through the same
// path as the HTTP send endpoint.
type MessagePoster interface {
	PostRoomMessage(ctx context.Context, cmd domain.PostRoomMessageCommand) (domain.RoomMessage, error)
}

// ConnectionTracker counts live websocket connections.
type ConnectionTracker interface {
	ConnectionOpened()
	ConnectionClosed()
}

type event struct {
	room    string
	payload []byte
}

type inbound struct {
	client  *Client
	payload []byte
}

// roomEvent is the wire shape pushed to subscribers.
type roomEvent struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	SenderID  string `json:"sender_id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// inboundMessage is what clients may write on the socket.
type inboundMessage struct {
	Room    string `json:"room"`
	Content string `json:"content"`
}

// Hub owns the set of connected clients. All state is confined to the
// Run goroutine; the channels are the only way in.
type Hub struct {
	log        *slog.Logger
	poster     MessagePoster
	tracker    ConnectionTracker
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan event
	publish    chan inbound
}

func NewHub(log *slog.Logger, poster MessagePoster, tracker ConnectionTracker) *Hub {
	return &Hub{
		log:        log,
		poster:     poster,
		tracker:    tracker,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan event, 64),
		publish:    make(chan inbound, 64),
	}
}

// SetPoster installs the message write path. The hub and the chat
// service reference each other, so the poster arrives after
// construction and must be set before Run starts.
func (h *Hub) SetPoster(poster MessagePoster) {
	h.poster = poster
}

// Run processes hub traffic until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.log.Info("Websocket hub stopped")
			return

		case client := <-h.register:
			h.clients[client] = true
			if h.tracker != nil {
				h.tracker.ConnectionOpened()
			}
			h.log.Debug("Client registered", "user", client.userID, "room", client.room)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				if h.tracker != nil {
					h.tracker.ConnectionClosed()
				}
			}

		case in := <-h.publish:
			h.handleInbound(ctx, in)

		case ev := <-h.broadcast:
			for client := range h.clients {
				if client.room != "" && client.room != ev.room {
					continue
				}
				select {
				case client.send <- ev.payload:
				default:
					// Slow consumer, drop the connection rather than
					// blocking the whole hub.
					close(client.send)
					delete(h.clients, client)
					if h.tracker != nil {
						h.tracker.ConnectionClosed()
					}
				}
			}
		}
	}
}

// NotifyRoomMessage queues a stored message for fan-out. It never
// blocks the send path: if the hub is saturated the event is dropped.
func (h *Hub) NotifyRoomMessage(message domain.RoomMessage) {
	payload, err := json.Marshal(roomEvent{
		Type:      "room_message",
		ID:        message.ID.String(),
		RoomID:    message.Room,
		SenderID:  message.Author,
		Content:   message.Content,
		Timestamp: message.At.UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.log.Error("Failed to encode room event", "err", err)
		return
	}

	select {
	case h.broadcast <- event{room: message.Room, payload: payload}:
	default:
		h.log.Warn("Broadcast queue full, dropping event", "room", message.Room)
	}
}

func (h *Hub) handleInbound(ctx context.Context, in inbound) {
	if h.poster == nil {
		return
	}
	var msg inboundMessage
	if err := json.Unmarshal(in.payload, &msg); err != nil {
		h.log.Warn("Ignoring malformed websocket message", "user", in.client.userID, "err", err)
		return
	}

	room := msg.Room
	if room == "" {
		room = in.client.room
	}

	_, err := h.poster.PostRoomMessage(ctx, domain.PostRoomMessageCommand{
		Room:    room,
		Author:  in.client.userID,
		Content: msg.Content,
	})
	if err != nil {
		h.log.Warn("Failed to post websocket message", "user", in.client.userID, "room", room, "err", err)
	}
}
