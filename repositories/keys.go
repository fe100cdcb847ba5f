package repositories

import (
	"fmt"
	"strings"

	apperrors "chat-backend/errors"
)

// Key namespaces. Records are stored under time-ordered keys using
// 19-digit zero padding so a prefix scan yields chronological order,
// with the message UUID as a tiebreaker when two messages
// land on the same nanosecond. The idx: namespace holds secondary
// indexes with empty values.
const (
	roomKeyPrefix   = "room:"
	dmKeyPrefix     = "dm:"
	dmUserKeyPrefix = "dmu:" // dmu:{user}:{ts}:{uuid}, one copy per participant
	userKeyPrefix   = "user:"
	authorIdxPrefix = "idx:author:" // idx:author:{author}:{room}
	roomIdxPrefix   = "idx:room:"   // idx:room:{room}
)

// maxPaddedTimestamp is the upper bound used to seek the newest record
// of a prefix when iterating in reverse.
const maxPaddedTimestamp = "9999999999999999999"

// validateIdentifier rejects identifiers that would corrupt the key
// layout. Separators are reserved for key structure.
func validateIdentifier(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s must not be empty", apperrors.ErrInvalidArgument, field)
	}
	if strings.ContainsAny(value, ":|") {
		return fmt.Errorf("%w: %s must not contain ':' or '|'", apperrors.ErrInvalidArgument, field)
	}
	return nil
}

// pairKey builds the canonical key segment for a user pair so both
// directions of a private conversation live under one prefix.
func pairKey(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}
