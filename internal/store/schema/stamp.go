package schema

import (
	"gorm.io/datatypes"
)

// Stamp is a deduplicated provider verification attached to a passport.
// The full stamp set is replaced on every scoring pass; rows never mutate
// in place.
type Stamp struct {
	// ID is the auto-incremented stamp identifier
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PassportID is the owning passport
	PassportID uint64 `gorm:"column:passport_id;not null;uniqueIndex:idx_stamps_hash_passport"`
	// Hash is the provider-scoped deduplication hash
	Hash string `gorm:"column:hash;type:varchar(100);not null;uniqueIndex:idx_stamps_hash_passport;index:idx_stamps_hash"`
	// Provider is the verification provider name
	Provider string `gorm:"column:provider;type:varchar(100);not null"`
	// Credential is the verifiable credential JSON, kept verbatim
	Credential datatypes.JSON `gorm:"column:credential;type:jsonb;not null"`

	// Associations
	Passport *Passport `gorm:"foreignKey:PassportID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the Stamp model
func (Stamp) TableName() string {
	return "stamps"
}
