package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gitcoinco/passport-scorer/internal/pagination"
	"github.com/gitcoinco/passport-scorer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize computes the batch size for bulk inserts that stays
// under PostgreSQL's extended-protocol limit of 65535 parameters per query.
// A total headroom of 1000 parameters covers ON CONFLICT clauses and GORM
// bookkeeping.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// GetCommunity retrieves a community by ID
func (s *pgStore) GetCommunity(ctx context.Context, id uint64) (*schema.Community, error) {
	var community schema.Community
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&community).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get community: %w", err)
	}
	return &community, nil
}

// FlagPassportForCalculation upserts the passport row with
// requires_calculation set to true
func (s *pgStore) FlagPassportForCalculation(ctx context.Context, communityID uint64, address string) (*schema.Passport, error) {
	flag := true
	passport := schema.Passport{
		Address:             address,
		CommunityID:         communityID,
		RequiresCalculation: &flag,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "address"}, {Name: "community_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"requires_calculation": true,
				"updated_at":           gorm.Expr("now()"),
			}),
		}).
		Create(&passport).Error
	if err != nil {
		return nil, fmt.Errorf("failed to flag passport for calculation: %w", err)
	}

	// The upsert path does not populate the existing row's ID
	if passport.ID == 0 {
		err = s.db.WithContext(ctx).
			Where("address = ? AND community_id = ?", address, communityID).
			First(&passport).Error
		if err != nil {
			return nil, fmt.Errorf("failed to reload flagged passport: %w", err)
		}
	}

	return &passport, nil
}

// ClaimPassport atomically flips requires_calculation from true-or-NULL to
// false. Exactly one of any set of concurrent callers wins the claim; rows
// are created on first score request.
func (s *pgStore) ClaimPassport(ctx context.Context, communityID uint64, address string) (*schema.Passport, bool, error) {
	var claimed []schema.Passport
	result := s.db.WithContext(ctx).
		Model(&claimed).
		Clauses(clause.Returning{}).
		Where("address = ? AND community_id = ?", address, communityID).
		Where("requires_calculation IS NULL OR requires_calculation = ?", true).
		Updates(map[string]interface{}{
			"requires_calculation": false,
			"updated_at":           gorm.Expr("now()"),
		})
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to claim passport: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return &claimed[0], true, nil
	}

	// Nothing claimable: either the row exists with the claim already
	// taken, or no row exists yet
	var existing schema.Passport
	err := s.db.WithContext(ctx).
		Where("address = ? AND community_id = ?", address, communityID).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up passport: %w", err)
	}

	// First score request for this address: create the row already claimed
	flag := false
	created := schema.Passport{
		Address:             address,
		CommunityID:         communityID,
		RequiresCalculation: &flag,
	}
	result = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&created)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to create passport: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Lost a creation race; the winner holds the claim
		err = s.db.WithContext(ctx).
			Where("address = ? AND community_id = ?", address, communityID).
			First(&existing).Error
		if err != nil {
			return nil, false, fmt.Errorf("failed to look up passport after create race: %w", err)
		}
		return &existing, false, nil
	}

	return &created, true, nil
}

// EnsureScore upserts the passport's score row with the given status and a
// cleared error
func (s *pgStore) EnsureScore(ctx context.Context, passportID uint64, status schema.ScoreStatus) (*schema.Score, error) {
	score := schema.Score{
		PassportID: passportID,
		Status:     &status,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "passport_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status": string(status),
				"error":  nil,
			}),
		}).
		Create(&score).Error
	if err != nil {
		return nil, fmt.Errorf("failed to ensure score: %w", err)
	}

	if score.ID == 0 {
		err = s.db.WithContext(ctx).
			Where("passport_id = ?", passportID).
			First(&score).Error
		if err != nil {
			return nil, fmt.Errorf("failed to reload score: %w", err)
		}
	}

	return &score, nil
}

// MarkScoreError sets the score to ERROR with a user-facing message.
// last_score_timestamp and the previous score value stay untouched.
func (s *pgStore) MarkScoreError(ctx context.Context, passportID uint64, message string) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Score{}).
		Where("passport_id = ?", passportID).
		Updates(map[string]interface{}{
			"status": string(schema.ScoreStatusError),
			"error":  message,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark score error: %w", err)
	}
	return nil
}

// SaveScoreDone persists a successful scoring pass and appends the
// score-update event in the same transaction, so a DONE transition and its
// event are inseparable
func (s *pgStore) SaveScoreDone(ctx context.Context, input SaveScoreDoneInput) (*schema.Score, error) {
	var saved schema.Score

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&schema.Score{}).
			Clauses(clause.Returning{}).
			Where("passport_id = ?", input.PassportID).
			Updates(map[string]interface{}{
				"score":                input.Score,
				"status":               string(schema.ScoreStatusDone),
				"last_score_timestamp": input.Timestamp,
				"error":                nil,
				"evidence":             input.Evidence,
				"stamp_scores":         input.StampScores,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update score: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("no score row for passport %d", input.PassportID)
		}

		eventData, err := json.Marshal(map[string]interface{}{
			"score":    input.Score.String(),
			"evidence": input.Evidence,
		})
		if err != nil {
			return fmt.Errorf("failed to encode score event data: %w", err)
		}

		event := schema.Event{
			Action:      schema.EventActionScoreUpdate,
			Address:     input.Address,
			CommunityID: &input.CommunityID,
			CreatedAt:   input.Timestamp,
			Data:        datatypes.JSON(eventData),
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to record score event: %w", err)
		}

		return tx.Where("passport_id = ?", input.PassportID).First(&saved).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save score: %w", err)
	}

	return &saved, nil
}

// GetScoreByAddress retrieves the score for one address in a community
func (s *pgStore) GetScoreByAddress(ctx context.Context, communityID uint64, address string) (*ScoreWithAddress, error) {
	var score ScoreWithAddress
	err := s.db.WithContext(ctx).
		Model(&schema.Score{}).
		Select("scores.*, passports.address").
		Joins("JOIN passports ON passports.id = scores.passport_id").
		Where("passports.community_id = ? AND passports.address = ?", communityID, address).
		First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score: %w", err)
	}
	return &score, nil
}

// scoreKey is the keyset expression for score pagination. NULL timestamps
// (rows that never reached DONE) sort first, before any real timestamp.
const scoreKey = "COALESCE(scores.last_score_timestamp, 'epoch'::timestamptz)"

// ListScores returns one page of a community's scores ordered by
// (last_score_timestamp, id) ascending
func (s *pgStore) ListScores(ctx context.Context, communityID uint64, q ScoreQuery) ([]ScoreWithAddress, error) {
	query := s.db.WithContext(ctx).
		Model(&schema.Score{}).
		Select("scores.*, passports.address").
		Joins("JOIN passports ON passports.id = scores.passport_id").
		Where("passports.community_id = ?", communityID)

	if q.Address != "" {
		query = query.Where("passports.address = ?", q.Address)
	}
	if q.LastScoreTimestampGte != nil {
		query = query.Where("scores.last_score_timestamp >= ?", *q.LastScoreTimestampGte)
	}
	if q.LastScoreTimestampGt != nil {
		query = query.Where("scores.last_score_timestamp > ?", *q.LastScoreTimestampGt)
	}

	descending := q.Cursor != nil && q.Cursor.Direction == pagination.DirectionPrev
	if q.Cursor != nil {
		if descending {
			query = query.Where("("+scoreKey+", scores.id) < (?, ?)", q.Cursor.Timestamp, q.Cursor.ID)
		} else {
			query = query.Where("("+scoreKey+", scores.id) > (?, ?)", q.Cursor.Timestamp, q.Cursor.ID)
		}
	}

	if descending {
		query = query.Order(scoreKey + " DESC, scores.id DESC")
	} else {
		query = query.Order(scoreKey + " ASC, scores.id ASC")
	}

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var scores []ScoreWithAddress
	if err := query.Find(&scores).Error; err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}

	// Backward fetches run newest-first; restore presentation order
	if descending {
		for i, j := 0, len(scores)-1; i < j; i, j = i+1, j-1 {
			scores[i], scores[j] = scores[j], scores[i]
		}
	}

	return scores, nil
}

// GetStampClaims returns which other addresses currently own the given
// hashes in the community. Persisted stamps and unexpired hash links are
// merged; when both exist for a hash the stamp's owner wins.
func (s *pgStore) GetStampClaims(ctx context.Context, communityID uint64, hashes []string, excludeAddress string, now time.Time) ([]HashClaim, error) {
	if len(hashes) == 0 {
		return []HashClaim{}, nil
	}

	var linkClaims []HashClaim
	err := s.db.WithContext(ctx).
		Model(&schema.HashScorerLink{}).
		Select("hash, address").
		Where("community_id = ? AND hash IN ? AND address <> ?", communityID, hashes, excludeAddress).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Find(&linkClaims).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query hash links: %w", err)
	}

	var stampClaims []HashClaim
	err = s.db.WithContext(ctx).
		Model(&schema.Stamp{}).
		Select("stamps.hash, passports.address").
		Joins("JOIN passports ON passports.id = stamps.passport_id").
		Where("passports.community_id = ? AND stamps.hash IN ? AND passports.address <> ?", communityID, hashes, excludeAddress).
		Find(&stampClaims).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query stamp claims: %w", err)
	}

	byHash := make(map[string]HashClaim, len(linkClaims)+len(stampClaims))
	for _, claim := range linkClaims {
		byHash[claim.Hash] = claim
	}
	for _, claim := range stampClaims {
		byHash[claim.Hash] = claim
	}

	claims := make([]HashClaim, 0, len(byHash))
	for _, hash := range hashes {
		if claim, ok := byHash[hash]; ok {
			claims = append(claims, claim)
			delete(byHash, hash)
		}
	}

	return claims, nil
}

// ReplaceStamps transactionally replaces the passport's whole stamp set
func (s *pgStore) ReplaceStamps(ctx context.Context, passportID uint64, stamps []schema.Stamp) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("passport_id = ?", passportID).Delete(&schema.Stamp{}).Error; err != nil {
			return fmt.Errorf("failed to delete stamps: %w", err)
		}

		if len(stamps) == 0 {
			return nil
		}

		for i := range stamps {
			stamps[i].ID = 0
			stamps[i].PassportID = passportID
		}

		batchSize := calculateSafeBatchSize(len(stamps), 4)
		if err := tx.CreateInBatches(stamps, batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert stamps: %w", err)
		}

		return nil
	})
}

// EvictStamps removes the given hashes from every other passport in the
// community and flags the affected passports for recalculation
func (s *pgStore) EvictStamps(ctx context.Context, communityID uint64, hashes []string, keepAddress string) ([]DisplacedStamp, error) {
	if len(hashes) == 0 {
		return []DisplacedStamp{}, nil
	}

	var displaced []DisplacedStamp
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Model(&schema.Stamp{}).
			Select("stamps.passport_id, passports.address, stamps.hash, stamps.provider").
			Joins("JOIN passports ON passports.id = stamps.passport_id").
			Where("passports.community_id = ? AND stamps.hash IN ? AND passports.address <> ?", communityID, hashes, keepAddress).
			Find(&displaced).Error
		if err != nil {
			return fmt.Errorf("failed to find displaced stamps: %w", err)
		}
		if len(displaced) == 0 {
			return nil
		}

		passportIDs := make([]uint64, 0, len(displaced))
		seen := make(map[uint64]bool, len(displaced))
		for _, d := range displaced {
			if !seen[d.PassportID] {
				seen[d.PassportID] = true
				passportIDs = append(passportIDs, d.PassportID)
			}
		}

		err = tx.
			Where("passport_id IN ? AND hash IN ?", passportIDs, hashes).
			Delete(&schema.Stamp{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete displaced stamps: %w", err)
		}

		err = tx.
			Model(&schema.Passport{}).
			Where("id IN ?", passportIDs).
			Updates(map[string]interface{}{
				"requires_calculation": true,
				"updated_at":           gorm.Expr("now()"),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to flag displaced passports: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return displaced, nil
}

// BurnHashes upserts hash ownership links for an address, refreshing the
// expiry when the hash is already linked
func (s *pgStore) BurnHashes(ctx context.Context, communityID uint64, address string, burns []HashBurn) error {
	if len(burns) == 0 {
		return nil
	}

	links := make([]schema.HashScorerLink, 0, len(burns))
	for _, burn := range burns {
		links = append(links, schema.HashScorerLink{
			Hash:        burn.Hash,
			CommunityID: communityID,
			Address:     address,
			ExpiresAt:   burn.ExpiresAt,
		})
	}

	batchSize := calculateSafeBatchSize(len(links), 4)
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "hash"}, {Name: "community_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"address":    address,
				"expires_at": gorm.Expr("excluded.expires_at"),
				"updated_at": gorm.Expr("now()"),
			}),
		}).
		CreateInBatches(links, batchSize).Error
	if err != nil {
		return fmt.Errorf("failed to burn hashes: %w", err)
	}

	return nil
}

// RecordEvent appends one audit event
func (s *pgStore) RecordEvent(ctx context.Context, event *schema.Event) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}
	return nil
}

// ListEvents returns one page of events ordered by (created_at, id)
// descending
func (s *pgStore) ListEvents(ctx context.Context, communityID uint64, q EventQuery) ([]schema.Event, error) {
	query := s.db.WithContext(ctx).
		Model(&schema.Event{}).
		Where("community_id = ?", communityID)

	if q.Action != "" {
		query = query.Where("action = ?", q.Action)
	}
	if q.Address != "" {
		query = query.Where("address = ?", q.Address)
	}
	if q.CreatedAtLte != nil {
		query = query.Where("created_at <= ?", *q.CreatedAtLte)
	}

	// The canonical order is newest first, so "next" descends and "prev"
	// re-ascends
	ascending := q.Cursor != nil && q.Cursor.Direction == pagination.DirectionPrev
	if q.Cursor != nil {
		if ascending {
			query = query.Where("(created_at, id) > (?, ?)", q.Cursor.Timestamp, q.Cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", q.Cursor.Timestamp, q.Cursor.ID)
		}
	}

	if ascending {
		query = query.Order("created_at ASC, id ASC")
	} else {
		query = query.Order("created_at DESC, id DESC")
	}

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var events []schema.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	if ascending {
		for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
			events[i], events[j] = events[j], events[i]
		}
	}

	return events, nil
}

// ListPassportsRequiringCalculation lists passports whose claim flag has
// been pending since before olderThan
func (s *pgStore) ListPassportsRequiringCalculation(ctx context.Context, olderThan time.Time, limit int) ([]PassportRef, error) {
	query := s.db.WithContext(ctx).
		Model(&schema.Passport{}).
		Select("community_id, address").
		Where("requires_calculation = ? AND updated_at < ?", true, olderThan).
		Order("updated_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var refs []PassportRef
	if err := query.Find(&refs).Error; err != nil {
		return nil, fmt.Errorf("failed to list passports requiring calculation: %w", err)
	}

	return refs, nil
}
