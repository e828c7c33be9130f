package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ScoreStatus is the lifecycle status of a score row
type ScoreStatus string

const (
	// ScoreStatusProcessing means a scoring pass is underway for an
	// individually submitted passport
	ScoreStatusProcessing ScoreStatus = "PROCESSING"
	// ScoreStatusBulkProcessing means a scoring pass is underway as part of
	// a batch recalculation
	ScoreStatusBulkProcessing ScoreStatus = "BULK_PROCESSING"
	// ScoreStatusDone means the last scoring pass completed successfully
	ScoreStatusDone ScoreStatus = "DONE"
	// ScoreStatusError means the last scoring pass failed; Error holds the
	// user-facing message
	ScoreStatusError ScoreStatus = "ERROR"
)

// Score is the one-per-passport scoring result. Score, Status and
// LastScoreTimestamp are nullable: a row exists from the moment scoring is
// first requested, before any result is known.
type Score struct {
	// ID is the auto-incremented score identifier
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PassportID is the scored passport; one score row per passport
	PassportID uint64 `gorm:"column:passport_id;not null;uniqueIndex:idx_scores_passport"`
	// Score is the computed score, numeric(18,9); nil until first DONE
	Score *decimal.Decimal `gorm:"column:score;type:numeric(18,9)"`
	// Status is the lifecycle status; nil for freshly created rows
	Status *ScoreStatus `gorm:"column:status;type:varchar(20)"`
	// LastScoreTimestamp is when the score last reached DONE; untouched by
	// failed passes
	LastScoreTimestamp *time.Time `gorm:"column:last_score_timestamp"`
	// Error is the user-facing failure message when Status is ERROR
	Error *string `gorm:"column:error;type:text"`
	// Evidence is the threshold evidence JSON for binary scorers
	Evidence datatypes.JSON `gorm:"column:evidence;type:jsonb"`
	// StampScores maps provider name to the weight it contributed
	StampScores datatypes.JSON `gorm:"column:stamp_scores;type:jsonb"`

	// Associations
	Passport *Passport `gorm:"foreignKey:PassportID;references:ID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for the Score model
func (Score) TableName() string {
	return "scores"
}
