package dedup

import (
	"context"
	"fmt"

	"github.com/gitcoinco/passport-scorer/internal/adapter"
	"github.com/gitcoinco/passport-scorer/internal/domain"
	"github.com/gitcoinco/passport-scorer/internal/store"
	"github.com/gitcoinco/passport-scorer/internal/store/schema"
)

// Deduplicator decides which candidate stamps an address may keep within a
// community
//
//go:generate mockgen -source=dedup.go -destination=../mocks/dedup.go -package=mocks -mock_names=Deduplicator=MockDeduplicator
type Deduplicator interface {
	Deduplicate(ctx context.Context, policy schema.DedupPolicy, communityID uint64, address string, stamps []domain.Stamp) ([]domain.Stamp, []store.HashClaim, error)
}

// Engine decides which candidate stamps an address may keep within a
// community. It only reads claim state; evicting displaced stamps and
// persisting the kept set is the caller's job, so a crashed scoring pass
// never leaves half-applied deduplication behind.
type Engine struct {
	store store.Store
	clock adapter.Clock
}

// NewEngine creates a deduplication engine
func NewEngine(s store.Store, clock adapter.Clock) Deduplicator {
	return &Engine{store: s, clock: clock}
}

// Deduplicate applies the community's policy to the candidate stamps.
//
// Under LIFO, candidates whose hash is already owned by another address are
// dropped and displaced is nil. Under FIFO every candidate is kept and the
// existing claims by other addresses are returned as displaced, for the
// caller to evict. Candidate order is preserved; a hash appearing twice in
// the candidates keeps only its first occurrence.
func (e *Engine) Deduplicate(ctx context.Context, policy schema.DedupPolicy, communityID uint64, address string, stamps []domain.Stamp) ([]domain.Stamp, []store.HashClaim, error) {
	if policy != schema.DedupPolicyLIFO && policy != schema.DedupPolicyFIFO {
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrUnknownDedupPolicy, policy)
	}

	// Collapse duplicate hashes within the candidate set first
	seen := make(map[string]bool, len(stamps))
	candidates := make([]domain.Stamp, 0, len(stamps))
	hashes := make([]string, 0, len(stamps))
	for _, stamp := range stamps {
		hash := stamp.Credential.CredentialSubject.Hash
		if seen[hash] {
			continue
		}
		seen[hash] = true
		candidates = append(candidates, stamp)
		hashes = append(hashes, hash)
	}

	claims, err := e.store.GetStampClaims(ctx, communityID, hashes, address, e.clock.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up stamp claims: %w", err)
	}

	if policy == schema.DedupPolicyFIFO {
		// Incoming stamps win; existing claims get displaced
		return candidates, claims, nil
	}

	// LIFO: existing claims win; burned hashes are dropped
	claimed := make(map[string]bool, len(claims))
	for _, claim := range claims {
		claimed[claim.Hash] = true
	}

	kept := make([]domain.Stamp, 0, len(candidates))
	for _, stamp := range candidates {
		if claimed[stamp.Credential.CredentialSubject.Hash] {
			continue
		}
		kept = append(kept, stamp)
	}

	return kept, nil, nil
}
