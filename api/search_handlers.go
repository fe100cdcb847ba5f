package api

import (
	"net/http"
	"time"

	"chat-backend/search"

	"github.com/samber/lo"
)

type searchHitResponse struct {
	ID        string  `json:"id"`
	RoomID    string  `json:"room_id"`
	SenderID  string  `json:"sender_id"`
	Content   string  `json:"content"`
	Timestamp string  `json:"timestamp"`
	Score     float64 `json:"score"`
}

// Find runs a full-text search over room messages. The q parameter
// accepts --room and --limit flags inline.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	rawQuery := r.URL.Query().Get("q")

	hits, err := h.search.Search(r.Context(), rawQuery)
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.monitoring.IncrSearches()
	h.JSON(w, http.StatusOK, map[string]any{
		"query": rawQuery,
		"count": len(hits),
		"results": lo.Map(hits, func(hit search.Hit, _ int) searchHitResponse {
			return searchHitResponse{
				ID:        hit.ID,
				RoomID:    hit.Room,
				SenderID:  hit.Author,
				Content:   hit.Content,
				Timestamp: hit.At.UTC().Format(time.RFC3339),
				Score:     hit.Score,
			}
		}),
	})
}

// Stats serves the live telemetry snapshot.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, h.monitoring.Snapshot())
}
