package schema

import (
	"time"

	"gorm.io/datatypes"
)

// EventAction is the three-letter code of an audit event
type EventAction string

const (
	// EventActionFifoDeduplication records stamps displaced from another
	// address under the FIFO policy
	EventActionFifoDeduplication EventAction = "FDP"
	// EventActionLifoDeduplication records incoming stamps dropped under
	// the LIFO policy
	EventActionLifoDeduplication EventAction = "LDP"
	// EventActionTrustlabScore records a score exported to an external
	// consumer
	EventActionTrustlabScore EventAction = "TLS"
	// EventActionScoreUpdate records a score reaching DONE
	EventActionScoreUpdate EventAction = "SCU"
)

// Event is an append-only audit record. Events are never updated or
// deleted; failures to record one never abort the operation that produced
// it, except where the event is written in the same transaction as its
// cause.
type Event struct {
	// ID is the auto-incremented event identifier
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Action is the three-letter event code
	Action EventAction `gorm:"column:action;type:char(3);not null;index:idx_events_action_address_community_created,priority:1"`
	// Address is the normalized address the event concerns
	Address string `gorm:"column:address;type:varchar(100);not null;index:idx_events_action_address_community_created,priority:2"`
	// CommunityID scopes the event to a community; nil for global events
	CommunityID *uint64 `gorm:"column:community_id;index:idx_events_action_address_community_created,priority:3"`
	// CreatedAt is when the event was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();index:idx_events_action_address_community_created,priority:4"`
	// Data is the action-specific payload JSON
	Data datatypes.JSON `gorm:"column:data;type:jsonb;not null"`
}

// TableName returns the table name for the Event model
func (Event) TableName() string {
	return "events"
}

// CursorKey returns the event's keyset position for pagination
func (e Event) CursorKey() (time.Time, uint64) {
	return e.CreatedAt, e.ID
}
