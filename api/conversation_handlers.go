package api

import (
	"net/http"
	"time"

	"chat-backend/auth"
	"chat-backend/domain"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

// entryResponse is the wire shape of one conversation entry. Room,
// receiver and direction are conditional on the entry kind and view.
type entryResponse struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
	SenderID   string `json:"sender_id"`
	RoomID     string `json:"room_id,omitempty"`
	ReceiverID string `json:"receiver_id,omitempty"`
	Direction  string `json:"direction,omitempty"`
}

func renderEntry(e domain.ConversationEntry) entryResponse {
	return entryResponse{
		Type:       string(e.Kind),
		ID:         e.ID.String(),
		Content:    e.Content,
		Timestamp:  e.At.UTC().Format(time.RFC3339),
		SenderID:   e.Sender,
		RoomID:     e.Room,
		ReceiverID: e.Receiver,
		Direction:  string(e.Direction),
	}
}

func renderEntries(entries []domain.ConversationEntry) []entryResponse {
	return lo.Map(entries, func(e domain.ConversationEntry, _ int) entryResponse { return renderEntry(e) })
}

// UnifiedFeed returns all of the authenticated user's activity across
// both namespaces, newest first.
func (h *Handler) UnifiedFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	limit := queryInt(r, "limit", h.defaultLimit)

	feed, err := h.conversations.UnifiedFeed(r.Context(), userID, limit)
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"user_id":       feed.UserID,
		"count":         len(feed.Entries),
		"conversations": renderEntries(feed.Entries),
	})
}

// PairwiseConversation returns the full exchange between the
// authenticated user and one other user, oldest first.
func (h *Handler) PairwiseConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	otherUserID := chi.URLParam(r, "otherUserID")
	limit := queryInt(r, "limit", h.defaultLimit)

	conversation, err := h.conversations.Pairwise(r.Context(), userID, otherUserID, limit)
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"participants": conversation.Participants,
		"count":        len(conversation.Entries),
		"messages":     renderEntries(conversation.Entries),
	})
}

// Thread returns the paginated, direction-annotated pairwise view.
func (h *Handler) Thread(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	otherUserID := chi.URLParam(r, "otherUserID")
	limit := queryInt(r, "limit", h.defaultLimit)
	offset := queryInt(r, "offset", 0)

	thread, err := h.conversations.Thread(r.Context(), userID, otherUserID, limit, offset)
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"metadata": map[string]any{
			"current_user":   thread.CurrentUser,
			"other_user":     thread.OtherUser,
			"total_messages": thread.Page.TotalCount,
		},
		"messages": renderEntries(thread.Page.Entries),
		"pagination": map[string]any{
			"limit":    thread.Limit,
			"offset":   thread.Offset,
			"has_more": thread.Page.HasMore,
		},
	})
}

// CommonRooms lists the rooms where both users have posted.
func (h *Handler) CommonRooms(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	otherUserID := chi.URLParam(r, "otherUserID")

	rooms, err := h.conversations.CommonRooms(r.Context(), userID, otherUserID)
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"participants": []string{userID, otherUserID},
		"rooms":        rooms,
		"count":        len(rooms),
	})
}
