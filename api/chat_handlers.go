package api

import (
	"encoding/json"
	"net/http"
	"time"

	"chat-backend/auth"
	"chat-backend/domain"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

type sendRoomMessageRequest struct {
	RoomID  string `json:"room_id"`
	Content string `json:"content"`
}

type sendPrivateMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

type createRoomRequest struct {
	RoomID string `json:"room_id"`
}

type roomMessageResponse struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	SenderID  string `json:"sender_id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type privateMessageResponse struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
}

func renderRoomMessage(m domain.RoomMessage) roomMessageResponse {
	return roomMessageResponse{
		ID:        m.ID.String(),
		RoomID:    m.Room,
		SenderID:  m.Author,
		Content:   m.Content,
		Timestamp: m.At.UTC().Format(time.RFC3339),
	}
}

func renderPrivateMessage(m domain.PrivateMessage) privateMessageResponse {
	return privateMessageResponse{
		ID:         m.ID.String(),
		SenderID:   m.Sender,
		ReceiverID: m.Receiver,
		Content:    m.Content,
		Timestamp:  m.At.UTC().Format(time.RFC3339),
	}
}

// ListRooms returns every room that holds at least one message.
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.chat.ListRooms(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{"rooms": rooms, "count": len(rooms)})
}

// CreateRoom reserves a room name. Rooms are materialized by their
// first message, so creation only rejects names already in use.
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.RoomID == "" {
		h.Error(w, http.StatusBadRequest, "room_id is required")
		return
	}

	exists, err := h.chat.RoomExists(r.Context(), req.RoomID)
	if err != nil {
		h.renderError(w, err)
		return
	}
	if exists {
		h.Error(w, http.StatusConflict, "room already exists")
		return
	}

	h.JSON(w, http.StatusCreated, map[string]string{"room_id": req.RoomID})
}

// SendRoomMessage appends a message to a room on behalf of the
// authenticated user.
func (h *Handler) SendRoomMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req sendRoomMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	message, err := h.chat.PostRoomMessage(r.Context(), domain.PostRoomMessageCommand{
		Room:    req.RoomID,
		Author:  userID,
		Content: req.Content,
	})
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.monitoring.IncrRoomMessages()
	h.JSON(w, http.StatusCreated, renderRoomMessage(message))
}

// RoomHistory returns the newest messages of one room, oldest first.
func (h *Handler) RoomHistory(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	limit := queryInt(r, "limit", h.defaultLimit)

	messages, err := h.chat.RoomHistory(r.Context(), roomID, limit)
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"room_id":  roomID,
		"count":    len(messages),
		"messages": lo.Map(messages, func(m domain.RoomMessage, _ int) roomMessageResponse { return renderRoomMessage(m) }),
	})
}

// SendPrivateMessage delivers a direct message from the authenticated
// user to the receiver.
func (h *Handler) SendPrivateMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req sendPrivateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	message, err := h.chat.PostPrivateMessage(r.Context(), domain.PostPrivateMessageCommand{
		Sender:   userID,
		Receiver: req.ReceiverID,
		Content:  req.Content,
	})
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.monitoring.IncrPrivateMessages()
	h.JSON(w, http.StatusCreated, renderPrivateMessage(message))
}

// PrivateHistory returns the newest direct messages between the
// authenticated user and one correspondent, oldest first.
func (h *Handler) PrivateHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	otherUserID := chi.URLParam(r, "otherUserID")
	limit := queryInt(r, "limit", h.defaultLimit)

	messages, err := h.chat.PrivateHistory(r.Context(), userID, otherUserID, limit)
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"participants": []string{userID, otherUserID},
		"count":        len(messages),
		"messages":     lo.Map(messages, func(m domain.PrivateMessage, _ int) privateMessageResponse { return renderPrivateMessage(m) }),
	})
}
