package search

import (
	"context"
	"fmt"
	"time"

	"chat-backend/domain/search"
	apperrors "chat-backend/errors"

	"github.com/blugelabs/bluge"
)

// Hit is one ranked result out of the message index.
type Hit struct {
	ID      string
	Room    string
	Author  string
	Content string
	At      time.Time
	Score   float64
}

// Searcher runs parsed queries against the bluge index.
type Searcher struct {
	writer *bluge.Writer
}

func NewSearcher(writer *bluge.Writer) *Searcher {
	return &Searcher{writer: writer}
}

func (s *Searcher) Search(ctx context.Context, query search.Query) ([]Hit, error) {
	reader, err := s.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("%w: opening index reader: %v", apperrors.ErrStorage, err)
	}
	defer reader.Close()

	request := bluge.NewTopNSearch(query.Limit, buildQuery(query)).WithStandardAggregations()

	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("%w: searching index: %v", apperrors.ErrStorage, err)
	}

	var hits []Hit
	for match, err := iterator.Next(); match != nil; match, err = iterator.Next() {
		if err != nil {
			return nil, fmt.Errorf("%w: iterating matches: %v", apperrors.ErrStorage, err)
		}

		hit := Hit{Score: match.Score}
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.ID = string(value)
			case "room":
				hit.Room = string(value)
			case "author":
				hit.Author = string(value)
			case "content":
				hit.Content = string(value)
			case "at":
				if at, parseErr := time.Parse(time.RFC3339Nano, string(value)); parseErr == nil {
					hit.At = at
				}
			}
			return true
		})
		if visitErr != nil {
			return nil, fmt.Errorf("%w: reading stored fields: %v", apperrors.ErrStorage, visitErr)
		}

		hits = append(hits, hit)
	}

	return hits, nil
}

func buildQuery(query search.Query) bluge.Query {
	boolean := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(query.Terms).SetField("content"))
	if query.Room != "" {
		boolean.AddMust(bluge.NewTermQuery(query.Room).SetField("room"))
	}
	return boolean
}
