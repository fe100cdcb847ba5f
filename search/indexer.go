// Package search maintains the full-text index of room messages and
// answers ranked queries against it. Private messages are deliberately
// never indexed.
package search

import (
	"log/slog"
	"time"

	"chat-backend/domain"

	"github.com/blugelabs/bluge"
)

// Indexer writes room messages into the bluge index. The message store
// stays the source of truth: the index is a derived, rebuildable view.
type Indexer struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewIndexer(writer *bluge.Writer, log *slog.Logger) *Indexer {
	return &Indexer{writer: writer, log: log}
}

func (i *Indexer) IndexRoomMessage(message domain.RoomMessage) error {
	doc := bluge.NewDocument(message.ID.String()).
		AddField(bluge.NewTextField("content", message.Content).StoreValue()).
		AddField(bluge.NewKeywordField("room", message.Room).StoreValue()).
		AddField(bluge.NewKeywordField("author", message.Author).StoreValue()).
		AddField(bluge.NewStoredOnlyField("at", []byte(message.At.Format(time.RFC3339Nano))))

	return i.writer.Update(doc.ID(), doc)
}
