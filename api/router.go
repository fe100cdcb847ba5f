package api

import (
	"log/slog"
	"net/http"
	"time"

	"chat-backend/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every endpoint. Conversation, messaging, search and
// websocket routes sit behind the JWT middleware; registration, login
// and stats stay public.
func NewRouter(h *Handler, issuer *auth.TokenIssuer, wsHandler http.HandlerFunc, log *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Post("/token", h.IssueToken)
	r.Post("/users", h.RegisterUser)
	r.Get("/stats", h.Stats)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(issuer))

		r.Get("/rooms", h.ListRooms)
		r.Post("/rooms/create", h.CreateRoom)
		r.Post("/rooms/send", h.SendRoomMessage)
		r.Get("/rooms/{roomID}/history", h.RoomHistory)

		r.Post("/private/send", h.SendPrivateMessage)
		r.Get("/private/history/{otherUserID}", h.PrivateHistory)

		r.Get("/conversations/unified", h.UnifiedFeed)
		r.Get("/conversations/with/{otherUserID}", h.PairwiseConversation)
		r.Get("/conversations/thread/{otherUserID}", h.Thread)
		r.Get("/conversations/common-rooms/{otherUserID}", h.CommonRooms)

		r.Get("/find", h.Find)

		if wsHandler != nil {
			r.Get("/ws", wsHandler)
		}
	})

	return r
}

// requestLogger logs one line per request with latency and status.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
