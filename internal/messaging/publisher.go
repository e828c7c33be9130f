package messaging

import (
	"context"
	"time"
)

// ScoreUpdateMessage is the payload published whenever a score reaches DONE
type ScoreUpdateMessage struct {
	// EventID is a ULID ordering the message within the feed
	EventID string `json:"event_id"`
	// CommunityID is the community the score belongs to
	CommunityID uint64 `json:"community_id"`
	// Address is the scored address
	Address string `json:"address"`
	// Score is the computed score as a decimal string
	Score string `json:"score"`
	// Status is the score lifecycle status (always DONE today)
	Status string `json:"status"`
	// Timestamp is when the score was computed
	Timestamp time.Time `json:"timestamp"`
}

// Publisher defines the interface for publishing score updates to the
// message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishScoreUpdate publishes a score update to the feed
	PublishScoreUpdate(ctx context.Context, msg *ScoreUpdateMessage) error
	// Close closes the connection
	Close()
}
