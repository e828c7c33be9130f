package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gitcoinco/passport-scorer/internal/domain"
)

// Direction is the traversal direction a cursor encodes
type Direction string

const (
	// DirectionNext pages forward from the cursor position
	DirectionNext Direction = "next"
	// DirectionPrev pages backward from the cursor position
	DirectionPrev Direction = "prev"
)

// Cursor is an opaque keyset position. The (Timestamp, ID) pair totally
// orders rows even when timestamps collide, so pages never skip or repeat
// rows while the underlying set grows.
type Cursor struct {
	Timestamp time.Time `json:"ts"`
	ID        uint64    `json:"id"`
	Direction Direction `json:"d"`
}

// Encode serializes the cursor into a URL-safe base64 token
func (c Cursor) Encode() (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode parses a token produced by Encode. Malformed tokens yield
// domain.ErrInvalidCursor.
func Decode(token string) (*Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCursor, err)
	}

	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCursor, err)
	}

	if c.Direction != DirectionNext && c.Direction != DirectionPrev {
		return nil, fmt.Errorf("%w: unknown direction %q", domain.ErrInvalidCursor, c.Direction)
	}

	return &c, nil
}
