// Package search defines the structured query used by the message
// search endpoint. It decouples raw user input from the index engine.
package search

import (
	"strconv"
	"strings"
)

const defaultLimit = 10

// Query represents the parsed parameters of a message search.
type Query struct {
	RawInput string // original input, kept for logging
	Terms    string // full-text terms to match against content
	Room     string // optional room filter
	Limit    int    // number of results
}

// ParseQuery extracts command-line style arguments from a raw string.
// Example: invoice overdue --room general --limit 5
func ParseQuery(input string) *Query {
	query := &Query{
		RawInput: input,
		Limit:    defaultLimit,
	}

	parts := strings.Fields(input)
	var terms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			key := strings.TrimPrefix(part, "--")
			val := parts[i+1]

			switch key {
			case "room":
				query.Room = val
			case "limit":
				if n, err := strconv.Atoi(val); err == nil && n > 0 {
					query.Limit = n
				}
			}
			i++
			continue
		}

		terms = append(terms, part)
	}

	query.Terms = strings.Join(terms, " ")
	return query
}
