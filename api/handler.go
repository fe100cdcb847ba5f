// Package api is the HTTP transport. Handlers decode requests, call
// services and translate domain errors to status codes. No business
// rule lives here.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "chat-backend/errors"
	"chat-backend/observability"
	"chat-backend/services"
)

// Handler holds the shared dependencies of every HTTP handler.
type Handler struct {
	auth          services.IAuthService
	chat          services.IChatService
	conversations services.IConversationService
	search        services.ISearchService
	monitoring    *observability.MonitoringManager
	defaultLimit  int
	log           *slog.Logger
}

func NewHandler(
	auth services.IAuthService,
	chat services.IChatService,
	conversations services.IConversationService,
	search services.ISearchService,
	monitoring *observability.MonitoringManager,
	defaultLimit int,
	log *slog.Logger,
) *Handler {
	return &Handler{
		auth:          auth,
		chat:          chat,
		conversations: conversations,
		search:        search,
		monitoring:    monitoring,
		defaultLimit:  defaultLimit,
		log:           log,
	}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// renderError maps domain errors to HTTP status codes. Storage and
// internal failures are logged and surfaced generically.
func (h *Handler) renderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrInvalidPassword):
		h.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrUnauthenticated), errors.Is(err, apperrors.ErrInvalidCredentials):
		h.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		h.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrUserAlreadyExists):
		h.Error(w, http.StatusConflict, err.Error())
	default:
		h.log.Error("Request failed", "err", err)
		h.Error(w, http.StatusInternalServerError, "internal error")
	}
}

// queryInt reads an integer query parameter, falling back when absent
// or malformed. Bounds are enforced by the services.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
