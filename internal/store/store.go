package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/gitcoinco/passport-scorer/internal/pagination"
	"github.com/gitcoinco/passport-scorer/internal/store/schema"
)

// HashClaim records that an address currently owns a deduplication hash
// within a community, either through a persisted stamp or an unexpired
// hash link
type HashClaim struct {
	Hash    string
	Address string
}

// DisplacedStamp describes a stamp removed from another passport during a
// FIFO deduplication pass
type DisplacedStamp struct {
	PassportID uint64
	Address    string
	Hash       string
	Provider   string
}

// HashBurn is one hash claim to persist after a scoring pass
type HashBurn struct {
	Hash      string
	ExpiresAt *time.Time
}

// SaveScoreDoneInput carries the result of a completed scoring pass
type SaveScoreDoneInput struct {
	PassportID  uint64
	CommunityID uint64
	Address     string
	Score       decimal.Decimal
	StampScores datatypes.JSON
	Evidence    datatypes.JSON
	Timestamp   time.Time
}

// ScoreWithAddress is a score row joined with its passport's address
type ScoreWithAddress struct {
	schema.Score `gorm:"embedded"`
	Address      string `gorm:"column:address"`
}

// CursorKey returns the score's keyset position for pagination. Rows that
// never reached DONE key on the epoch, matching the store's sort order.
func (s ScoreWithAddress) CursorKey() (time.Time, uint64) {
	if s.LastScoreTimestamp == nil {
		return time.Unix(0, 0).UTC(), s.ID
	}
	return *s.LastScoreTimestamp, s.ID
}

// ScoreQuery filters and paginates a community's scores. Rows are keyed by
// (last_score_timestamp, id) ascending.
type ScoreQuery struct {
	Limit                 int
	Cursor                *pagination.Cursor
	Address               string
	LastScoreTimestampGte *time.Time
	LastScoreTimestampGt  *time.Time
}

// EventQuery filters and paginates events. Rows are keyed by
// (created_at, id) descending (newest first).
type EventQuery struct {
	Limit        int
	Cursor       *pagination.Cursor
	Action       schema.EventAction
	Address      string
	CreatedAtLte *time.Time
}

// PassportRef identifies a passport pending recalculation
type PassportRef struct {
	CommunityID uint64 `gorm:"column:community_id"`
	Address     string `gorm:"column:address"`
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetCommunity retrieves a community by ID; (nil, nil) when absent
	GetCommunity(ctx context.Context, id uint64) (*schema.Community, error)
	// FlagPassportForCalculation upserts the passport row and sets
	// requires_calculation to true
	FlagPassportForCalculation(ctx context.Context, communityID uint64, address string) (*schema.Passport, error)
	// ClaimPassport atomically claims the pending-recalculation flag.
	// Creates the passport row when absent. The boolean reports whether
	// this call won the claim.
	ClaimPassport(ctx context.Context, communityID uint64, address string) (*schema.Passport, bool, error)
	// EnsureScore upserts the passport's score row with the given status
	EnsureScore(ctx context.Context, passportID uint64, status schema.ScoreStatus) (*schema.Score, error)
	// MarkScoreError sets the score to ERROR with a user-facing message,
	// leaving last_score_timestamp untouched
	MarkScoreError(ctx context.Context, passportID uint64, message string) error
	// SaveScoreDone persists a successful pass: DONE status, score value,
	// evidence and the score-update event, all in one transaction
	SaveScoreDone(ctx context.Context, input SaveScoreDoneInput) (*schema.Score, error)
	// GetScoreByAddress retrieves the score for one address in a community;
	// (nil, nil) when absent
	GetScoreByAddress(ctx context.Context, communityID uint64, address string) (*ScoreWithAddress, error)
	// ListScores returns one page of a community's scores in presentation
	// order (oldest first)
	ListScores(ctx context.Context, communityID uint64, q ScoreQuery) ([]ScoreWithAddress, error)
	// GetStampClaims returns which other addresses currently own the given
	// hashes in the community, merging persisted stamps and unexpired hash
	// links
	GetStampClaims(ctx context.Context, communityID uint64, hashes []string, excludeAddress string, now time.Time) ([]HashClaim, error)
	// ReplaceStamps transactionally replaces the passport's whole stamp set
	ReplaceStamps(ctx context.Context, passportID uint64, stamps []schema.Stamp) error
	// EvictStamps removes the given hashes from every other passport in the
	// community and flags the affected passports for recalculation
	EvictStamps(ctx context.Context, communityID uint64, hashes []string, keepAddress string) ([]DisplacedStamp, error)
	// BurnHashes upserts hash ownership links for an address
	BurnHashes(ctx context.Context, communityID uint64, address string, burns []HashBurn) error
	// RecordEvent appends one audit event
	RecordEvent(ctx context.Context, event *schema.Event) error
	// ListEvents returns one page of events in presentation order
	// (newest first)
	ListEvents(ctx context.Context, communityID uint64, q EventQuery) ([]schema.Event, error)
	// ListPassportsRequiringCalculation lists passports whose claim flag has
	// been pending since before olderThan
	ListPassportsRequiringCalculation(ctx context.Context, olderThan time.Time, limit int) ([]PassportRef, error)
}
