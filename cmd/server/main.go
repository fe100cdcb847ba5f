package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-backend/api"
	"chat-backend/auth"
	"chat-backend/moderation"
	"chat-backend/observability"
	"chat-backend/repositories"
	"chat-backend/search"
	"chat-backend/services"
	"chat-backend/ws"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components and manages the server lifecycle.
// Keeping the logic out of main ensures defers execute on every exit
// path and keeps initialization testable.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Search index (bluge)
	indexWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing search index...")
		_ = indexWriter.Close()
	}()

	// 4. Repositories & services
	roomRepository := repositories.NewRoomMessageRepository(db, log)
	privateRepository := repositories.NewPrivateMessageRepository(db, log)
	userRepository := repositories.NewUserRepository(db)

	monitoring := observability.NewMonitoringManager(log)
	indexer := search.NewIndexer(indexWriter, log)
	searcher := search.NewSearcher(indexWriter)

	issuer := auth.NewTokenIssuer(config.JWTSecret, config.TokenDuration)
	authService := services.NewAuthService(userRepository, issuer)
	conversationService := services.NewConversationService(roomRepository, privateRepository, log)
	searchService := services.NewSearchService(searcher, log)

	// Moderation only engages when a dictionary is configured.
	var moderator services.ContentModerator
	if len(config.CensoredWords) > 0 {
		mod, err := moderation.NewModerator(config.CensoredWords, firstRune(config.CensoredChar, '*'), log)
		if err != nil {
			return fmt.Errorf("moderation setup failed: %w", err)
		}
		moderator = &mod
	}

	// The hub is both the live fan-out target of the chat service and
	// a message source feeding back into it.
	hub := ws.NewHub(log, nil, monitoring)
	chatService := services.NewChatService(roomRepository, privateRepository, moderator, indexer, hub, log)
	hub.SetPoster(chatService)

	// 5. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go hub.Run(ctx)

	// 6. HTTP server
	handler := api.NewHandler(authService, chatService, conversationService, searchService, monitoring, config.DefaultLimit, log)
	router := api.NewRouter(handler, issuer, ws.ServeWS(hub, log), log)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Wait for stop or error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP shutdown error: %w", err)
	}
	log.Info("Program stopped cleanly")

	return nil
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
