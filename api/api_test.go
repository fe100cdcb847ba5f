package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chat-backend/auth"
	"chat-backend/domain"
	"chat-backend/errors"
	"chat-backend/observability"
	"chat-backend/projection"
	"chat-backend/search"
	"chat-backend/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct{}

func (stubAuthService) Register(_ context.Context, email, _ string) (services.Token, error) {
	if email == "taken@example.com" {
		return "", errors.ErrUserAlreadyExists
	}
	return "registered-token", nil
}

func (stubAuthService) Login(_ context.Context, email, _ string) (services.Token, error) {
	if email == "user@example.com" {
		return "login-token", nil
	}
	return "", errors.ErrInvalidCredentials
}

type stubChatService struct{}

func (stubChatService) PostRoomMessage(_ context.Context, cmd domain.PostRoomMessageCommand) (domain.RoomMessage, error) {
	if cmd.Room == "" {
		return domain.RoomMessage{}, fmt.Errorf("%w: room is empty", errors.ErrInvalidArgument)
	}
	return domain.RoomMessage{
		ID: uuid.New(), Room: cmd.Room, Author: cmd.Author, Content: cmd.Content,
		At: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}, nil
}

func (stubChatService) PostPrivateMessage(_ context.Context, cmd domain.PostPrivateMessageCommand) (domain.PrivateMessage, error) {
	return domain.PrivateMessage{
		ID: uuid.New(), Sender: cmd.Sender, Receiver: cmd.Receiver, Content: cmd.Content,
		At: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}, nil
}

func (stubChatService) RoomHistory(_ context.Context, room string, _ int) ([]domain.RoomMessage, error) {
	if room == "empty" {
		return nil, fmt.Errorf("%w: room %q has no messages", errors.ErrNotFound, room)
	}
	return []domain.RoomMessage{{
		ID: uuid.New(), Room: room, Author: "alice", Content: "hello",
		At: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}}, nil
}

func (stubChatService) PrivateHistory(_ context.Context, _, _ string, _ int) ([]domain.PrivateMessage, error) {
	return nil, nil
}

func (stubChatService) ListRooms(_ context.Context) ([]string, error) {
	return []string{"general", "random"}, nil
}

func (stubChatService) RoomExists(_ context.Context, room string) (bool, error) {
	return room == "general", nil
}

type stubConversationService struct{}

func (stubConversationService) CommonRooms(_ context.Context, _, _ string) ([]string, error) {
	return []string{"general"}, nil
}

func (stubConversationService) UnifiedFeed(_ context.Context, user string, _ int) (services.UnifiedFeed, error) {
	return services.UnifiedFeed{UserID: user}, nil
}

func (stubConversationService) Pairwise(_ context.Context, a, b string, _ int) (services.PairwiseConversation, error) {
	return services.PairwiseConversation{Participants: [2]string{a, b}}, nil
}

func (stubConversationService) Thread(_ context.Context, a, b string, limit, offset int) (services.Thread, error) {
	entry := domain.ConversationEntry{
		Kind:      domain.KindPrivate,
		ID:        uuid.New(),
		At:        time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Sender:    a,
		Content:   "hi",
		Receiver:  b,
		Direction: domain.DirectionSent,
	}
	return services.Thread{
		CurrentUser: a,
		OtherUser:   b,
		Limit:       limit,
		Offset:      offset,
		Page:        projection.Page{Entries: []domain.ConversationEntry{entry}, TotalCount: 12, HasMore: true},
	}, nil
}

type stubSearchService struct{}

func (stubSearchService) Search(_ context.Context, rawQuery string) ([]search.Hit, error) {
	if strings.TrimSpace(rawQuery) == "" {
		return nil, fmt.Errorf("%w: query has no search terms", errors.ErrInvalidArgument)
	}
	return []search.Hit{{ID: "m1", Room: "general", Author: "alice", Content: "hello", At: time.Now(), Score: 1.0}}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	handler := NewHandler(
		stubAuthService{},
		stubChatService{},
		stubConversationService{},
		stubSearchService{},
		observability.NewMonitoringManager(slog.Default()),
		50,
		slog.Default(),
	)
	server := httptest.NewServer(NewRouter(handler, issuer, nil, slog.Default()))
	t.Cleanup(server.Close)

	token, err := issuer.Generate("alice", []string{"user"})
	require.NoError(t, err)
	return server, token
}

func doRequest(t *testing.T, method, url, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestRouterAuthentication(t *testing.T) {
	server, token := newTestServer(t)

	t.Run("should reject protected routes without a token", func(t *testing.T) {
		req := require.New(t)
		resp, _ := doRequest(t, http.MethodGet, server.URL+"/rooms", "", "")
		req.Equal(http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("should serve protected routes with a valid token", func(t *testing.T) {
		req := require.New(t)
		resp, body := doRequest(t, http.MethodGet, server.URL+"/rooms", token, "")
		req.Equal(http.StatusOK, resp.StatusCode)
		req.Len(body["rooms"], 2)
	})

	t.Run("should keep stats public", func(t *testing.T) {
		req := require.New(t)
		resp, _ := doRequest(t, http.MethodGet, server.URL+"/stats", "", "")
		req.Equal(http.StatusOK, resp.StatusCode)
	})
}

func TestTokenAndRegistration(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("should issue a bearer token on login", func(t *testing.T) {
		req := require.New(t)
		resp, body := doRequest(t, http.MethodPost, server.URL+"/token", "",
			`{"email":"user@example.com","password":"Secret123456!"}`)
		req.Equal(http.StatusOK, resp.StatusCode)
		req.Equal("login-token", body["access_token"])
		req.Equal("Bearer", body["token_type"])
	})

	t.Run("should map bad credentials to 401", func(t *testing.T) {
		req := require.New(t)
		resp, _ := doRequest(t, http.MethodPost, server.URL+"/token", "",
			`{"email":"nobody@example.com","password":"x"}`)
		req.Equal(http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("should map a duplicate registration to 409", func(t *testing.T) {
		req := require.New(t)
		resp, _ := doRequest(t, http.MethodPost, server.URL+"/users", "",
			`{"email":"taken@example.com","password":"Secret123456!"}`)
		req.Equal(http.StatusConflict, resp.StatusCode)
	})
}

func TestMessagingEndpoints(t *testing.T) {
	server, token := newTestServer(t)

	t.Run("should create a room message for the authenticated user", func(t *testing.T) {
		req := require.New(t)
		resp, body := doRequest(t, http.MethodPost, server.URL+"/rooms/send", token,
			`{"room_id":"general","content":"hello"}`)
		req.Equal(http.StatusCreated, resp.StatusCode)
		req.Equal("general", body["room_id"])
		req.Equal("alice", body["sender_id"])
		req.Equal("2025-03-01T10:00:00Z", body["timestamp"])
	})

	t.Run("should map an empty room to 400", func(t *testing.T) {
		req := require.New(t)
		resp, _ := doRequest(t, http.MethodPost, server.URL+"/rooms/send", token,
			`{"room_id":"","content":"hello"}`)
		req.Equal(http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("should map an empty room history to 404", func(t *testing.T) {
		req := require.New(t)
		resp, _ := doRequest(t, http.MethodGet, server.URL+"/rooms/empty/history", token, "")
		req.Equal(http.StatusNotFound, resp.StatusCode)
	})

	t.Run("should conflict when creating an existing room", func(t *testing.T) {
		req := require.New(t)
		resp, _ := doRequest(t, http.MethodPost, server.URL+"/rooms/create", token,
			`{"room_id":"general"}`)
		req.Equal(http.StatusConflict, resp.StatusCode)
	})
}

func TestConversationEndpoints(t *testing.T) {
	server, token := newTestServer(t)

	t.Run("should shape the thread response with metadata and pagination", func(t *testing.T) {
		req := require.New(t)
		resp, body := doRequest(t, http.MethodGet,
			server.URL+"/conversations/thread/bob?limit=5&offset=10", token, "")
		req.Equal(http.StatusOK, resp.StatusCode)

		metadata := body["metadata"].(map[string]any)
		req.Equal("alice", metadata["current_user"])
		req.Equal("bob", metadata["other_user"])
		req.Equal(float64(12), metadata["total_messages"])

		pagination := body["pagination"].(map[string]any)
		req.Equal(float64(5), pagination["limit"])
		req.Equal(float64(10), pagination["offset"])
		req.Equal(true, pagination["has_more"])

		messages := body["messages"].([]any)
		req.Len(messages, 1)
		entry := messages[0].(map[string]any)
		req.Equal("private", entry["type"])
		req.Equal("sent", entry["direction"])
		req.Equal("bob", entry["receiver_id"])
		req.NotContains(entry, "room_id")
	})

	t.Run("should shape the unified feed response", func(t *testing.T) {
		req := require.New(t)
		resp, body := doRequest(t, http.MethodGet, server.URL+"/conversations/unified", token, "")
		req.Equal(http.StatusOK, resp.StatusCode)
		req.Equal("alice", body["user_id"])
		req.Equal(float64(0), body["count"])
	})
}

func TestSearchEndpoint(t *testing.T) {
	server, token := newTestServer(t)

	t.Run("should return ranked hits", func(t *testing.T) {
		req := require.New(t)
		resp, body := doRequest(t, http.MethodGet, server.URL+"/find?q=hello", token, "")
		req.Equal(http.StatusOK, resp.StatusCode)
		req.Equal(float64(1), body["count"])
	})

	t.Run("should map an empty query to 400", func(t *testing.T) {
		req := require.New(t)
		resp, _ := doRequest(t, http.MethodGet, server.URL+"/find?q=", token, "")
		req.Equal(http.StatusBadRequest, resp.StatusCode)
	})
}
