package schema

import (
	"time"
)

// DedupPolicy is the stamp deduplication policy a community enforces
type DedupPolicy string

const (
	// DedupPolicyLIFO rejects incoming stamps whose hash is already held
	// by another address in the community
	DedupPolicyLIFO DedupPolicy = "lifo"
	// DedupPolicyFIFO accepts incoming stamps and displaces earlier claims
	// of the same hash held by other addresses
	DedupPolicyFIFO DedupPolicy = "fifo"
)

// Community is a scoring namespace. Deduplication and scores are scoped to
// a community; the same address may hold independent passports in several
// communities.
type Community struct {
	// ID is the community identifier (the scorer_id of the public API)
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the human-readable community name
	Name string `gorm:"column:name;type:varchar(100);not null"`
	// Description describes the community's purpose
	Description string `gorm:"column:description;type:varchar(100)"`
	// DedupPolicy selects the stamp deduplication strategy (lifo or fifo)
	DedupPolicy DedupPolicy `gorm:"column:dedup_policy;type:varchar(10);not null;default:lifo"`
	// CreatedAt is when the community was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName returns the table name for the Community model
func (Community) TableName() string {
	return "communities"
}
