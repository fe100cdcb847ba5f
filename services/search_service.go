package services

import (
	"context"
	"fmt"
	"log/slog"

	domainsearch "chat-backend/domain/search"
	apperrors "chat-backend/errors"
	"chat-backend/search"
)

//go:generate mockgen -source=search_service.go -destination=../mocks/search_service.go -package=mocks

// MessageSearcher answers ranked full-text queries over room messages.
type MessageSearcher interface {
	Search(ctx context.Context, query domainsearch.Query) ([]search.Hit, error)
}

type ISearchService interface {
	Search(ctx context.Context, rawQuery string) ([]search.Hit, error)
}

type SearchService struct {
	searcher MessageSearcher
	log      *slog.Logger
}

func NewSearchService(searcher MessageSearcher, log *slog.Logger) *SearchService {
	return &SearchService{searcher: searcher, log: log}
}

func (s *SearchService) Search(ctx context.Context, rawQuery string) ([]search.Hit, error) {
	query := domainsearch.ParseQuery(rawQuery)
	if query.Terms == "" {
		return nil, fmt.Errorf("%w: query has no search terms", apperrors.ErrInvalidArgument)
	}

	hits, err := s.searcher.Search(ctx, *query)
	if err != nil {
		return nil, err
	}

	s.log.Debug("search executed", "terms", query.Terms, "room", query.Room, "hits", len(hits))
	return hits, nil
}
