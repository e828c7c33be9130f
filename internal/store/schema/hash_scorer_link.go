package schema

import (
	"time"
)

// HashScorerLink pins a deduplication hash to the address that currently
// owns it within a community. Links outlive the stamps that created them
// until ExpiresAt, so a hash stays burned for its credential's lifetime
// even if the owning stamp set is later replaced.
type HashScorerLink struct {
	// ID is the auto-incremented link identifier
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Hash is the deduplication hash
	Hash string `gorm:"column:hash;type:varchar(100);not null;uniqueIndex:idx_hash_scorer_links_hash_community"`
	// CommunityID scopes the link to a community
	CommunityID uint64 `gorm:"column:community_id;not null;uniqueIndex:idx_hash_scorer_links_hash_community"`
	// Address is the normalized address that owns the hash
	Address string `gorm:"column:address;type:varchar(100);not null;index:idx_hash_scorer_links_address"`
	// ExpiresAt is when the claim lapses (the credential expiration); nil
	// never expires
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	// CreatedAt is when the link was first recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is when the link was last refreshed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	Community *Community `gorm:"foreignKey:CommunityID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the HashScorerLink model
func (HashScorerLink) TableName() string {
	return "hash_scorer_links"
}
