// Command inspect dumps the raw content of a chat-backend badger store
// in a readable table. It opens the database read-only so it can run
// next to a live server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

type diskRoomMessage struct {
	ID      string `json:"id"`
	Room    string `json:"room"`
	Author  string `json:"author"`
	Content string `json:"content"`
	At      int64  `json:"at"`
}

type diskPrivateMessage struct {
	ID       string `json:"id"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
	At       int64  `json:"at"`
}

type diskUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func main() {
	dbPath := flag.String("db", "/tmp/chat-backend/badger", "Path to badger DB")
	// Default scans room records, the idx: namespace is skipped anyway.
	prefix := flag.String("prefix", "room:", "Prefix to scan")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "Timestamp", "ID", "Participants", "Content"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			rawKey := string(item.Key())

			// Secondary indexes hold no payload worth printing.
			if strings.HasPrefix(rawKey, "idx:") {
				continue
			}

			err := item.Value(func(v []byte) error {
				row, ok := decodeRow(rawKey, v)
				if !ok {
					fmt.Printf("Error decoding key %s\n", rawKey)
					return nil
				}
				table.Append(row)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

// decodeRow turns one record into a table row based on its key prefix.
func decodeRow(rawKey string, value []byte) ([]string, bool) {
	switch {
	case strings.HasPrefix(rawKey, "room:"):
		var m diskRoomMessage
		if err := json.Unmarshal(value, &m); err != nil {
			return nil, false
		}
		return []string{
			rawKey,
			color.Green.Sprint("ROOM"),
			time.Unix(0, m.At).UTC().Format("15:04:05"),
			shortID(m.ID),
			fmt.Sprintf("%s @ %s", m.Author, m.Room),
			m.Content,
		}, true

	case strings.HasPrefix(rawKey, "dm:"), strings.HasPrefix(rawKey, "dmu:"):
		var m diskPrivateMessage
		if err := json.Unmarshal(value, &m); err != nil {
			return nil, false
		}
		return []string{
			rawKey,
			color.Cyan.Sprint("PRIVATE"),
			time.Unix(0, m.At).UTC().Format("15:04:05"),
			shortID(m.ID),
			fmt.Sprintf("%s -> %s", m.Sender, m.Receiver),
			m.Content,
		}, true

	case strings.HasPrefix(rawKey, "user:"):
		var u diskUser
		if err := json.Unmarshal(value, &u); err != nil {
			return nil, false
		}
		return []string{
			rawKey,
			color.Yellow.Sprint("USER"),
			"",
			shortID(u.ID),
			u.Email,
			"",
		}, true

	default:
		return []string{rawKey, color.Red.Sprint("UNKNOWN"), "", "", "", string(value)}, true
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	return badger.Open(opts)
}
