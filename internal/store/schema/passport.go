package schema

import (
	"time"
)

// Passport ties an address to a community. RequiresCalculation is the
// scoring claim flag: true (or NULL for legacy rows) means a recalculation
// is pending; the scoring workflow atomically flips it to false before
// doing any work so that concurrent triggers collapse into one pass.
type Passport struct {
	// ID is the auto-incremented passport identifier
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Address is the normalized holder address
	Address string `gorm:"column:address;type:varchar(100);not null;uniqueIndex:idx_passports_address_community"`
	// CommunityID is the community this passport belongs to
	CommunityID uint64 `gorm:"column:community_id;not null;uniqueIndex:idx_passports_address_community"`
	// RequiresCalculation is the pending-recalculation claim flag; NULL is
	// treated as claimable
	RequiresCalculation *bool `gorm:"column:requires_calculation"`
	// CreatedAt is when the passport row was first created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is when the passport row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	Community *Community `gorm:"foreignKey:CommunityID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the Passport model
func (Passport) TableName() string {
	return "passports"
}
