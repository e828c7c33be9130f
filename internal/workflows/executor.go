package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/gitcoinco/passport-scorer/internal/adapter"
	"github.com/gitcoinco/passport-scorer/internal/dedup"
	"github.com/gitcoinco/passport-scorer/internal/domain"
	"github.com/gitcoinco/passport-scorer/internal/logger"
	"github.com/gitcoinco/passport-scorer/internal/messaging"
	"github.com/gitcoinco/passport-scorer/internal/reader"
	"github.com/gitcoinco/passport-scorer/internal/scoring"
	"github.com/gitcoinco/passport-scorer/internal/store"
	"github.com/gitcoinco/passport-scorer/internal/store/schema"
	"github.com/gitcoinco/passport-scorer/internal/validator"
)

// ClaimResult reports whether the scoring claim was won and which passport
// row it concerns
type ClaimResult struct {
	PassportID uint64
	Claimed    bool
}

// DeduplicationResult carries the outcome of a deduplication pass
type DeduplicationResult struct {
	// Kept are the stamps the address may keep
	Kept []domain.Stamp
	// Displaced are existing claims by other addresses that must be
	// evicted (FIFO policy only)
	Displaced []store.HashClaim
}

// ScoreSummary is the condensed result of a completed scoring pass
type ScoreSummary struct {
	Score     string
	Status    string
	Timestamp time.Time
}

// Executor defines the interface for executing activities
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor.go -package=mocks -mock_names=Executor=MockExecutor
type Executor interface {
	// ClaimPassport atomically claims the passport's pending-recalculation
	// flag, creating the row on first score request
	ClaimPassport(ctx context.Context, communityID uint64, address string) (*ClaimResult, error)

	// MarkScoreProcessing upserts the score row with the given processing
	// status before any scoring work starts
	MarkScoreProcessing(ctx context.Context, passportID uint64, status schema.ScoreStatus) error

	// FetchPassport fetches the address's stamps from the upstream
	// registry; (nil, nil) when the registry holds no passport
	FetchPassport(ctx context.Context, address string) (*domain.PassportData, error)

	// ValidateStamps drops stamps whose credential fails validation
	ValidateStamps(ctx context.Context, address string, passport *domain.PassportData) ([]domain.Stamp, error)

	// DeduplicateStamps applies the community's deduplication policy and
	// records the deduplication event when stamps were dropped
	DeduplicateStamps(ctx context.Context, communityID uint64, address string, stamps []domain.Stamp) (*DeduplicationResult, error)

	// EvictDisplacedStamps removes displaced hashes from their current
	// owners, flags those passports for recalculation and records one
	// event per displaced claim. Returns the affected addresses.
	EvictDisplacedStamps(ctx context.Context, communityID uint64, keepAddress string, displaced []store.HashClaim) ([]string, error)

	// SaveStamps replaces the passport's stamp set and burns the hash
	// ownership links
	SaveStamps(ctx context.Context, passportID uint64, communityID uint64, address string, stamps []domain.Stamp) error

	// ComputeAndSaveScore computes the weighted score and persists the
	// DONE result together with its score-update event
	ComputeAndSaveScore(ctx context.Context, passportID uint64, communityID uint64, address string, stamps []domain.Stamp) (*ScoreSummary, error)

	// MarkScoreError sets the score to ERROR with a user-facing message
	MarkScoreError(ctx context.Context, passportID uint64, message string) error

	// PublishScoreUpdate publishes the completed score to the broker feed
	PublishScoreUpdate(ctx context.Context, communityID uint64, address string, summary *ScoreSummary) error
}

// executor is the concrete implementation of Executor
type executor struct {
	store     store.Store
	reader    reader.Reader
	validator validator.Validator
	dedup     dedup.Deduplicator
	scorer    scoring.Scorer
	publisher messaging.Publisher
	json      adapter.JSON
	clock     adapter.Clock
}

// NewExecutor creates a new executor instance
func NewExecutor(
	s store.Store,
	r reader.Reader,
	v validator.Validator,
	d dedup.Deduplicator,
	scorer scoring.Scorer,
	publisher messaging.Publisher,
	jsonAdapter adapter.JSON,
	clock adapter.Clock,
) Executor {
	return &executor{
		store:     s,
		reader:    r,
		validator: v,
		dedup:     d,
		scorer:    scorer,
		publisher: publisher,
		json:      jsonAdapter,
		clock:     clock,
	}
}

// ClaimPassport atomically claims the passport's pending-recalculation flag
func (e *executor) ClaimPassport(ctx context.Context, communityID uint64, address string) (*ClaimResult, error) {
	passport, claimed, err := e.store.ClaimPassport(ctx, communityID, domain.NormalizeAddress(address))
	if err != nil {
		return nil, fmt.Errorf("failed to claim passport: %w", err)
	}

	return &ClaimResult{
		PassportID: passport.ID,
		Claimed:    claimed,
	}, nil
}

// MarkScoreProcessing upserts the score row with the given processing status
func (e *executor) MarkScoreProcessing(ctx context.Context, passportID uint64, status schema.ScoreStatus) error {
	if _, err := e.store.EnsureScore(ctx, passportID, status); err != nil {
		return fmt.Errorf("failed to mark score processing: %w", err)
	}
	return nil
}

// FetchPassport fetches the address's stamps from the upstream registry
func (e *executor) FetchPassport(ctx context.Context, address string) (*domain.PassportData, error) {
	passport, err := e.reader.GetPassport(ctx, domain.NormalizeAddress(address))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch passport: %w", err)
	}
	return passport, nil
}

// ValidateStamps drops stamps whose credential fails validation
func (e *executor) ValidateStamps(ctx context.Context, address string, passport *domain.PassportData) ([]domain.Stamp, error) {
	if passport == nil {
		return []domain.Stamp{}, nil
	}

	now := e.clock.Now()
	valid := make([]domain.Stamp, 0, len(passport.Stamps))
	for _, stamp := range passport.Stamps {
		if err := e.validator.Validate(ctx, stamp, address, now); err != nil {
			logger.WarnCtx(ctx, "dropping invalid stamp",
				zap.String("address", address),
				zap.String("provider", stamp.Provider),
				zap.Error(err),
			)
			continue
		}
		valid = append(valid, stamp)
	}

	return valid, nil
}

// DeduplicateStamps applies the community's deduplication policy
func (e *executor) DeduplicateStamps(ctx context.Context, communityID uint64, address string, stamps []domain.Stamp) (*DeduplicationResult, error) {
	community, err := e.store.GetCommunity(ctx, communityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get community: %w", err)
	}
	if community == nil {
		return nil, domain.ErrCommunityNotFound
	}

	address = domain.NormalizeAddress(address)
	kept, displaced, err := e.dedup.Deduplicate(ctx, community.DedupPolicy, communityID, address, stamps)
	if err != nil {
		return nil, fmt.Errorf("failed to deduplicate stamps: %w", err)
	}

	// Record one event per stamp dropped under LIFO. Event failures are
	// logged but never abort the scoring pass.
	if community.DedupPolicy == schema.DedupPolicyLIFO && len(kept) < len(stamps) {
		keptHashes := make(map[string]bool, len(kept))
		for _, stamp := range kept {
			keptHashes[stamp.Credential.CredentialSubject.Hash] = true
		}
		for _, stamp := range stamps {
			hash := stamp.Credential.CredentialSubject.Hash
			if keptHashes[hash] {
				continue
			}
			keptHashes[hash] = true
			e.recordDedupEvent(ctx, schema.EventActionLifoDeduplication, communityID, address, hash, stamp.Provider)
		}
	}

	return &DeduplicationResult{Kept: kept, Displaced: displaced}, nil
}

// EvictDisplacedStamps removes displaced hashes from their current owners
func (e *executor) EvictDisplacedStamps(ctx context.Context, communityID uint64, keepAddress string, displaced []store.HashClaim) ([]string, error) {
	if len(displaced) == 0 {
		return []string{}, nil
	}

	hashes := make([]string, 0, len(displaced))
	for _, claim := range displaced {
		hashes = append(hashes, claim.Hash)
	}

	evicted, err := e.store.EvictStamps(ctx, communityID, hashes, domain.NormalizeAddress(keepAddress))
	if err != nil {
		return nil, fmt.Errorf("failed to evict displaced stamps: %w", err)
	}

	addresses := make([]string, 0, len(evicted))
	seen := make(map[string]bool, len(evicted))
	for _, stamp := range evicted {
		e.recordDedupEvent(ctx, schema.EventActionFifoDeduplication, communityID, stamp.Address, stamp.Hash, stamp.Provider)
		if !seen[stamp.Address] {
			seen[stamp.Address] = true
			addresses = append(addresses, stamp.Address)
		}
	}

	return addresses, nil
}

// recordDedupEvent appends a deduplication audit event, logging on failure
func (e *executor) recordDedupEvent(ctx context.Context, action schema.EventAction, communityID uint64, address, hash, provider string) {
	data, err := e.json.Marshal(map[string]string{
		"hash":     hash,
		"provider": provider,
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to encode dedup event: %w", err))
		return
	}

	event := &schema.Event{
		Action:      action,
		Address:     address,
		CommunityID: &communityID,
		CreatedAt:   e.clock.Now(),
		Data:        datatypes.JSON(data),
	}
	if err := e.store.RecordEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to record dedup event (non-fatal)",
			zap.String("action", string(action)),
			zap.String("address", address),
			zap.Error(err),
		)
	}
}

// SaveStamps replaces the passport's stamp set and burns the hash links
func (e *executor) SaveStamps(ctx context.Context, passportID uint64, communityID uint64, address string, stamps []domain.Stamp) error {
	rows := make([]schema.Stamp, 0, len(stamps))
	burns := make([]store.HashBurn, 0, len(stamps))
	for _, stamp := range stamps {
		credential, err := e.json.Marshal(stamp.Credential)
		if err != nil {
			return fmt.Errorf("failed to encode credential: %w", err)
		}

		rows = append(rows, schema.Stamp{
			PassportID: passportID,
			Hash:       stamp.Credential.CredentialSubject.Hash,
			Provider:   stamp.Provider,
			Credential: datatypes.JSON(credential),
		})

		expiresAt := stamp.Credential.ExpirationDate
		burns = append(burns, store.HashBurn{
			Hash:      stamp.Credential.CredentialSubject.Hash,
			ExpiresAt: &expiresAt,
		})
	}

	if err := e.store.ReplaceStamps(ctx, passportID, rows); err != nil {
		return fmt.Errorf("failed to replace stamps: %w", err)
	}

	if err := e.store.BurnHashes(ctx, communityID, domain.NormalizeAddress(address), burns); err != nil {
		return fmt.Errorf("failed to burn hashes: %w", err)
	}

	return nil
}

// ComputeAndSaveScore computes the weighted score and persists the DONE
// result
func (e *executor) ComputeAndSaveScore(ctx context.Context, passportID uint64, communityID uint64, address string, stamps []domain.Stamp) (*ScoreSummary, error) {
	result, err := e.scorer.Score(stamps)
	if err != nil {
		return nil, fmt.Errorf("failed to compute score: %w", err)
	}

	stampScores := make(map[string]string, len(result.StampScores))
	for provider, weight := range result.StampScores {
		stampScores[provider] = weight.String()
	}
	stampScoresJSON, err := e.json.Marshal(stampScores)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stamp scores: %w", err)
	}

	var evidenceJSON []byte
	if result.Evidence != nil {
		evidenceJSON, err = e.json.Marshal(result.Evidence)
		if err != nil {
			return nil, fmt.Errorf("failed to encode evidence: %w", err)
		}
	}

	now := e.clock.Now()
	saved, err := e.store.SaveScoreDone(ctx, store.SaveScoreDoneInput{
		PassportID:  passportID,
		CommunityID: communityID,
		Address:     domain.NormalizeAddress(address),
		Score:       result.Score,
		StampScores: datatypes.JSON(stampScoresJSON),
		Evidence:    datatypes.JSON(evidenceJSON),
		Timestamp:   now,
	})
	if err != nil {
		return nil, err
	}

	summary := &ScoreSummary{
		Score:     result.Score.String(),
		Status:    string(schema.ScoreStatusDone),
		Timestamp: now,
	}
	if saved.LastScoreTimestamp != nil {
		summary.Timestamp = *saved.LastScoreTimestamp
	}

	return summary, nil
}

// MarkScoreError sets the score to ERROR with a user-facing message
func (e *executor) MarkScoreError(ctx context.Context, passportID uint64, message string) error {
	if err := e.store.MarkScoreError(ctx, passportID, message); err != nil {
		return fmt.Errorf("failed to mark score error: %w", err)
	}
	return nil
}

// PublishScoreUpdate publishes the completed score to the broker feed
func (e *executor) PublishScoreUpdate(ctx context.Context, communityID uint64, address string, summary *ScoreSummary) error {
	msg := &messaging.ScoreUpdateMessage{
		EventID:     ulid.MustNewDefault(e.clock.Now()).String(),
		CommunityID: communityID,
		Address:     domain.NormalizeAddress(address),
		Score:       summary.Score,
		Status:      summary.Status,
		Timestamp:   summary.Timestamp,
	}

	if err := e.publisher.PublishScoreUpdate(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish score update: %w", err)
	}

	return nil
}
