package pagination

import (
	"time"
)

// Keyed exposes a row's keyset position
type Keyed interface {
	CursorKey() (time.Time, uint64)
}

// PageTokens derives the next/prev tokens for a fetched page.
//
// items must already be in presentation order and fetched with the given
// limit; current is the cursor the page was fetched with (nil for the first
// page). A nil token means no page exists in that direction: the first page
// never has a prev, a short forward page never has a next, and a short
// backward page never has a prev (the start of the set was reached).
//
// An empty page one step past either end still yields a token back toward
// the set, derived from the cursor that ran off it, so a consumer never
// has to restart from the first page.
func PageTokens[T Keyed](items []T, limit int, current *Cursor) (next *string, prev *string, err error) {
	if len(items) == 0 {
		if current == nil {
			return nil, nil, nil
		}
		back := Cursor{Timestamp: current.Timestamp, ID: current.ID}
		if current.Direction == DirectionPrev {
			back.Direction = DirectionNext
		} else {
			back.Direction = DirectionPrev
		}
		token, encErr := back.Encode()
		if encErr != nil {
			return nil, nil, encErr
		}
		if back.Direction == DirectionNext {
			return &token, nil, nil
		}
		return nil, &token, nil
	}

	full := limit > 0 && len(items) == limit
	backward := current != nil && current.Direction == DirectionPrev

	hasNext := full || backward
	hasPrev := current != nil && (full || !backward)

	if hasNext {
		ts, id := items[len(items)-1].CursorKey()
		token, encErr := Cursor{Timestamp: ts, ID: id, Direction: DirectionNext}.Encode()
		if encErr != nil {
			return nil, nil, encErr
		}
		next = &token
	}

	if hasPrev {
		ts, id := items[0].CursorKey()
		token, encErr := Cursor{Timestamp: ts, ID: id, Direction: DirectionPrev}.Encode()
		if encErr != nil {
			return nil, nil, encErr
		}
		prev = &token
	}

	return next, prev, nil
}
