package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/gitcoinco/passport-scorer/internal/pagination"
	"github.com/gitcoinco/passport-scorer/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

const (
	addrAlice = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	addrBob   = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	addrCarol = "0xcccccccccccccccccccccccccccccccccccccccc"
)

// seedCommunity inserts a community directly; the store interface has no
// community writes because communities are provisioned out of band
func seedCommunity(t *testing.T, s Store, policy schema.DedupPolicy) *schema.Community {
	pg, ok := s.(*pgStore)
	require.True(t, ok, "store tests require the pg store")

	community := schema.Community{
		Name:        fmt.Sprintf("test-community-%s", policy),
		Description: "store test community",
		DedupPolicy: policy,
	}
	require.NoError(t, pg.db.Create(&community).Error)
	return &community
}

// seedPassportWithNullFlag inserts a passport row whose claim flag is NULL,
// matching rows created before the flag column existed
func seedPassportWithNullFlag(t *testing.T, s Store, communityID uint64, address string) *schema.Passport {
	pg, ok := s.(*pgStore)
	require.True(t, ok, "store tests require the pg store")

	passport := schema.Passport{
		Address:     address,
		CommunityID: communityID,
	}
	require.NoError(t, pg.db.Create(&passport).Error)
	return &passport
}

func buildStamp(hash, provider string) schema.Stamp {
	credential := fmt.Sprintf(`{"type":["VerifiableCredential"],"credentialSubject":{"provider":%q,"hash":%q}}`, provider, hash)
	return schema.Stamp{
		Hash:       hash,
		Provider:   provider,
		Credential: datatypes.JSON(credential),
	}
}

// scoreFixture drives a passport through claim, ensure and done so tests
// can build communities with known score timestamps
func scoreFixture(t *testing.T, store Store, communityID uint64, address string, score string, ts time.Time) *schema.Passport {
	ctx := context.Background()

	passport, claimed, err := store.ClaimPassport(ctx, communityID, address)
	require.NoError(t, err)
	require.True(t, claimed)

	_, err = store.EnsureScore(ctx, passport.ID, schema.ScoreStatusProcessing)
	require.NoError(t, err)

	_, err = store.SaveScoreDone(ctx, SaveScoreDoneInput{
		PassportID:  passport.ID,
		CommunityID: communityID,
		Address:     address,
		Score:       decimal.RequireFromString(score),
		StampScores: datatypes.JSON(`{}`),
		Evidence:    datatypes.JSON(`{"type":"ThresholdScoreCheck"}`),
		Timestamp:   ts,
	})
	require.NoError(t, err)

	return passport
}

// =============================================================================
// Test: GetCommunity
// =============================================================================

func testGetCommunity(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("returns the community by id", func(t *testing.T) {
		seeded := seedCommunity(t, store, schema.DedupPolicyLIFO)

		community, err := store.GetCommunity(ctx, seeded.ID)
		require.NoError(t, err)
		require.NotNil(t, community)
		assert.Equal(t, seeded.ID, community.ID)
		assert.Equal(t, seeded.Name, community.Name)
		assert.Equal(t, schema.DedupPolicyLIFO, community.DedupPolicy)
	})

	t.Run("returns nil without error when absent", func(t *testing.T) {
		community, err := store.GetCommunity(ctx, 999999999)
		require.NoError(t, err)
		assert.Nil(t, community)
	})
}

// =============================================================================
// Test: FlagPassportForCalculation
// =============================================================================

func testFlagPassportForCalculation(t *testing.T, store Store) {
	ctx := context.Background()
	community := seedCommunity(t, store, schema.DedupPolicyLIFO)

	t.Run("creates the passport row flagged", func(t *testing.T) {
		passport, err := store.FlagPassportForCalculation(ctx, community.ID, addrAlice)
		require.NoError(t, err)
		require.NotNil(t, passport)
		assert.NotZero(t, passport.ID)
		assert.Equal(t, addrAlice, passport.Address)
		assert.Equal(t, community.ID, passport.CommunityID)
		require.NotNil(t, passport.RequiresCalculation)
		assert.True(t, *passport.RequiresCalculation)
	})

	t.Run("re-flags an existing passport without duplicating it", func(t *testing.T) {
		first, err := store.FlagPassportForCalculation(ctx, community.ID, addrBob)
		require.NoError(t, err)

		// Claim the flag, then flag again
		_, claimed, err := store.ClaimPassport(ctx, community.ID, addrBob)
		require.NoError(t, err)
		require.True(t, claimed)

		second, err := store.FlagPassportForCalculation(ctx, community.ID, addrBob)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		require.NotNil(t, second.RequiresCalculation)
		assert.True(t, *second.RequiresCalculation)
	})

	t.Run("same address in another community gets its own passport", func(t *testing.T) {
		other := seedCommunity(t, store, schema.DedupPolicyFIFO)

		one, err := store.FlagPassportForCalculation(ctx, community.ID, addrCarol)
		require.NoError(t, err)
		two, err := store.FlagPassportForCalculation(ctx, other.ID, addrCarol)
		require.NoError(t, err)
		assert.NotEqual(t, one.ID, two.ID)
	})
}

// =============================================================================
// Test: ClaimPassport
// =============================================================================

func testClaimPassport(t *testing.T, store Store) {
	ctx := context.Background()
	community := seedCommunity(t, store, schema.DedupPolicyLIFO)

	t.Run("first claim creates the row already claimed", func(t *testing.T) {
		passport, claimed, err := store.ClaimPassport(ctx, community.ID, addrAlice)
		require.NoError(t, err)
		assert.True(t, claimed)
		require.NotNil(t, passport)
		assert.NotZero(t, passport.ID)
		require.NotNil(t, passport.RequiresCalculation)
		assert.False(t, *passport.RequiresCalculation)
	})

	t.Run("second claim loses", func(t *testing.T) {
		first, claimed, err := store.ClaimPassport(ctx, community.ID, addrBob)
		require.NoError(t, err)
		require.True(t, claimed)

		second, claimed, err := store.ClaimPassport(ctx, community.ID, addrBob)
		require.NoError(t, err)
		assert.False(t, claimed)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("flagging re-arms the claim", func(t *testing.T) {
		_, claimed, err := store.ClaimPassport(ctx, community.ID, addrCarol)
		require.NoError(t, err)
		require.True(t, claimed)

		_, err = store.FlagPassportForCalculation(ctx, community.ID, addrCarol)
		require.NoError(t, err)

		_, claimed, err = store.ClaimPassport(ctx, community.ID, addrCarol)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("a NULL flag is claimable", func(t *testing.T) {
		legacy := seedPassportWithNullFlag(t, store, community.ID, "0xdddddddddddddddddddddddddddddddddddddddd")
		require.Nil(t, legacy.RequiresCalculation)

		passport, claimed, err := store.ClaimPassport(ctx, community.ID, legacy.Address)
		require.NoError(t, err)
		assert.True(t, claimed)
		assert.Equal(t, legacy.ID, passport.ID)
		require.NotNil(t, passport.RequiresCalculation)
		assert.False(t, *passport.RequiresCalculation)
	})
}

// =============================================================================
// Test: EnsureScore / MarkScoreError
// =============================================================================

func testEnsureScore(t *testing.T, store Store) {
	ctx := context.Background()
	community := seedCommunity(t, store, schema.DedupPolicyLIFO)

	passport, _, err := store.ClaimPassport(ctx, community.ID, addrAlice)
	require.NoError(t, err)

	t.Run("creates the score row with the given status", func(t *testing.T) {
		score, err := store.EnsureScore(ctx, passport.ID, schema.ScoreStatusProcessing)
		require.NoError(t, err)
		require.NotNil(t, score)
		assert.NotZero(t, score.ID)
		assert.Equal(t, passport.ID, score.PassportID)
		require.NotNil(t, score.Status)
		assert.Equal(t, schema.ScoreStatusProcessing, *score.Status)
		assert.Nil(t, score.Score)
		assert.Nil(t, score.LastScoreTimestamp)
	})

	t.Run("upsert keeps one row per passport and clears the error", func(t *testing.T) {
		require.NoError(t, store.MarkScoreError(ctx, passport.ID, "registry unreachable"))

		score, err := store.EnsureScore(ctx, passport.ID, schema.ScoreStatusBulkProcessing)
		require.NoError(t, err)
		require.NotNil(t, score.Status)
		assert.Equal(t, schema.ScoreStatusBulkProcessing, *score.Status)
		assert.Nil(t, score.Error)

		existing, err := store.GetScoreByAddress(ctx, community.ID, addrAlice)
		require.NoError(t, err)
		require.NotNil(t, existing)
		assert.Equal(t, score.ID, existing.Score.ID)
	})
}

func testMarkScoreError(t *testing.T, store Store) {
	ctx := context.Background()
	community := seedCommunity(t, store, schema.DedupPolicyLIFO)

	doneAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	passport := scoreFixture(t, store, community.ID, addrAlice, "25.5", doneAt)

	require.NoError(t, store.MarkScoreError(ctx, passport.ID, "Unable to fetch passport"))

	score, err := store.GetScoreByAddress(ctx, community.ID, addrAlice)
	require.NoError(t, err)
	require.NotNil(t, score)
	require.NotNil(t, score.Status)
	assert.Equal(t, schema.ScoreStatusError, *score.Status)
	require.NotNil(t, score.Error)
	assert.Equal(t, "Unable to fetch passport", *score.Error)

	// A failed pass leaves the previous result intact
	require.NotNil(t, score.Score.Score)
	assert.True(t, score.Score.Score.Equal(decimal.RequireFromString("25.5")))
	require.NotNil(t, score.LastScoreTimestamp)
	assert.True(t, score.LastScoreTimestamp.Equal(doneAt))
}

// =============================================================================
// Test: SaveScoreDone
// =============================================================================

func testSaveScoreDone(t *testing.T, store Store) {
	ctx := context.Background()
	community := seedCommunity(t, store, schema.DedupPolicyLIFO)

	t.Run("persists the result and the score event together", func(t *testing.T) {
		passport, _, err := store.ClaimPassport(ctx, community.ID, addrAlice)
		require.NoError(t, err)
		_, err = store.EnsureScore(ctx, passport.ID, schema.ScoreStatusProcessing)
		require.NoError(t, err)

		doneAt := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
		saved, err := store.SaveScoreDone(ctx, SaveScoreDoneInput{
			PassportID:  passport.ID,
			CommunityID: community.ID,
			Address:     addrAlice,
			Score:       decimal.RequireFromString("31.25"),
			StampScores: datatypes.JSON(`{"Ens":"2.2","Google":"1.0"}`),
			Evidence:    datatypes.JSON(`{"type":"ThresholdScoreCheck","success":true}`),
			Timestamp:   doneAt,
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		require.NotNil(t, saved.Status)
		assert.Equal(t, schema.ScoreStatusDone, *saved.Status)
		require.NotNil(t, saved.Score)
		assert.True(t, saved.Score.Equal(decimal.RequireFromString("31.25")))
		require.NotNil(t, saved.LastScoreTimestamp)
		assert.True(t, saved.LastScoreTimestamp.Equal(doneAt))
		assert.Nil(t, saved.Error)
		assert.JSONEq(t, `{"Ens":"2.2","Google":"1.0"}`, string(saved.StampScores))

		events, err := store.ListEvents(ctx, community.ID, EventQuery{
			Action:  schema.EventActionScoreUpdate,
			Address: addrAlice,
		})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, schema.EventActionScoreUpdate, events[0].Action)
		assert.True(t, events[0].CreatedAt.Equal(doneAt))
		assert.Contains(t, string(events[0].Data), `"score":"31.25"`)
	})

	t.Run("clears a previous error", func(t *testing.T) {
		passport, _, err := store.ClaimPassport(ctx, community.ID, addrBob)
		require.NoError(t, err)
		_, err = store.EnsureScore(ctx, passport.ID, schema.ScoreStatusProcessing)
		require.NoError(t, err)
		require.NoError(t, store.MarkScoreError(ctx, passport.ID, "transient failure"))

		saved, err := store.SaveScoreDone(ctx, SaveScoreDoneInput{
			PassportID:  passport.ID,
			CommunityID: community.ID,
			Address:     addrBob,
			Score:       decimal.Zero,
			StampScores: datatypes.JSON(`{}`),
			Evidence:    datatypes.JSON(`{}`),
			Timestamp:   time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.Nil(t, saved.Error)
		require.NotNil(t, saved.Status)
		assert.Equal(t, schema.ScoreStatusDone, *saved.Status)
	})

	t.Run("fails when no score row exists", func(t *testing.T) {
		passport, _, err := store.ClaimPassport(ctx, community.ID, addrCarol)
		require.NoError(t, err)

		_, err = store.SaveScoreDone(ctx, SaveScoreDoneInput{
			PassportID:  passport.ID,
			CommunityID: community.ID,
			Address:     addrCarol,
			Score:       decimal.Zero,
			StampScores: datatypes.JSON(`{}`),
			Evidence:    datatypes.JSON(`{}`),
			Timestamp:   time.Now().UTC(),
		})
		assert.Error(t, err)
	})
}

// =============================================================================
// Test: GetScoreByAddress
// =============================================================================

func testGetScoreByAddress(t *testing.T, store Store) {
	ctx := context.Background()
	community := seedCommunity(t, store, schema.DedupPolicyLIFO)

	doneAt := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	scoreFixture(t, store, community.ID, addrAlice, "12.5", doneAt)

	t.Run("returns the score joined with its address", func(t *testing.T) {
		score, err := store.GetScoreByAddress(ctx, community.ID, addrAlice)
		require.NoError(t, err)
		require.NotNil(t, score)
		assert.Equal(t, addrAlice, score.Address)
		require.NotNil(t, score.Score.Score)
		assert.True(t, score.Score.Score.Equal(decimal.RequireFromString("12.5")))
	})

	t.Run("returns nil without error when the address has no passport", func(t *testing.T) {
		score, err := store.GetScoreByAddress(ctx, community.ID, addrBob)
		require.NoError(t, err)
		assert.Nil(t, score)
	})

	t.Run("is scoped to the community", func(t *testing.T) {
		other := seedCommunity(t, store, schema.DedupPolicyLIFO)
		score, err := store.GetScoreByAddress(ctx, other.ID, addrAlice)
		require.NoError(t, err)
		assert.Nil(t, score)
	})
}

// =============================================================================
// Test: ListScores
// =============================================================================

func testListScores(t *testing.T, store Store) {
	ctx := context.Background()
	community := seedCommunity(t, store, schema.DedupPolicyLIFO)

	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	t3 := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

	scoreFixture(t, store, community.ID, addrAlice, "10", t1)
	scoreFixture(t, store, community.ID, addrBob, "20", t2)
	scoreFixture(t, store, community.ID, addrCarol, "30", t3)

	// A row that never reached DONE keys on the epoch and sorts first
	pending, _, err := store.ClaimPassport(ctx, community.ID, "0xdddddddddddddddddddddddddddddddddddddddd")
	require.NoError(t, err)
	_, err = store.EnsureScore(ctx, pending.ID, schema.ScoreStatusProcessing)
	require.NoError(t, err)

	t.Run("orders oldest first with never-scored rows leading", func(t *testing.T) {
		scores, err := store.ListScores(ctx, community.ID, ScoreQuery{Limit: 10})
		require.NoError(t, err)
		require.Len(t, scores, 4)
		assert.Equal(t, pending.Address, scores[0].Address)
		assert.Equal(t, addrAlice, scores[1].Address)
		assert.Equal(t, addrBob, scores[2].Address)
		assert.Equal(t, addrCarol, scores[3].Address)
	})

	t.Run("pages forward from a cursor", func(t *testing.T) {
		first, err := store.ListScores(ctx, community.ID, ScoreQuery{Limit: 2})
		require.NoError(t, err)
		require.Len(t, first, 2)

		ts, id := first[1].CursorKey()
		second, err := store.ListScores(ctx, community.ID, ScoreQuery{
			Limit: 2,
			Cursor: &pagination.Cursor{
				Timestamp: ts,
				ID:        id,
				Direction: pagination.DirectionNext,
			},
		})
		require.NoError(t, err)
		require.Len(t, second, 2)
		assert.Equal(t, addrBob, second[0].Address)
		assert.Equal(t, addrCarol, second[1].Address)
	})

	t.Run("pages backward in presentation order", func(t *testing.T) {
		all, err := store.ListScores(ctx, community.ID, ScoreQuery{Limit: 10})
		require.NoError(t, err)
		require.Len(t, all, 4)

		ts, id := all[2].CursorKey()
		prev, err := store.ListScores(ctx, community.ID, ScoreQuery{
			Limit: 2,
			Cursor: &pagination.Cursor{
				Timestamp: ts,
				ID:        id,
				Direction: pagination.DirectionPrev,
			},
		})
		require.NoError(t, err)
		require.Len(t, prev, 2)
		assert.Equal(t, all[0].Address, prev[0].Address)
		assert.Equal(t, all[1].Address, prev[1].Address)
	})

	t.Run("pages are stable when rows share a timestamp", func(t *testing.T) {
		// Rescoring a batch stamps every row with the same time, so the
		// id tie-break alone keeps pages disjoint and reproducible
		dupes := seedCommunity(t, store, schema.DedupPolicyLIFO)
		shared := time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			scoreFixture(t, store, dupes.ID, fmt.Sprintf("0x%040d", i+1), "5", shared)
		}

		all, err := store.ListScores(ctx, dupes.ID, ScoreQuery{Limit: 10})
		require.NoError(t, err)
		require.Len(t, all, 5)

		// Walking forward two at a time reassembles the full set with no
		// row skipped or repeated
		var walked []string
		var cursor *pagination.Cursor
		for {
			page, err := store.ListScores(ctx, dupes.ID, ScoreQuery{Limit: 2, Cursor: cursor})
			require.NoError(t, err)
			if len(page) == 0 {
				break
			}
			for _, row := range page {
				walked = append(walked, row.Address)
			}
			ts, id := page[len(page)-1].CursorKey()
			cursor = &pagination.Cursor{Timestamp: ts, ID: id, Direction: pagination.DirectionNext}
		}
		expected := make([]string, 0, len(all))
		for _, row := range all {
			expected = append(expected, row.Address)
		}
		assert.Equal(t, expected, walked)

		// Backing up from the last page reproduces the middle page, and
		// from there the first page, item for item
		ts, id := all[4].CursorKey()
		middle, err := store.ListScores(ctx, dupes.ID, ScoreQuery{
			Limit:  2,
			Cursor: &pagination.Cursor{Timestamp: ts, ID: id, Direction: pagination.DirectionPrev},
		})
		require.NoError(t, err)
		require.Len(t, middle, 2)
		assert.Equal(t, all[2].Address, middle[0].Address)
		assert.Equal(t, all[3].Address, middle[1].Address)

		ts, id = middle[0].CursorKey()
		first, err := store.ListScores(ctx, dupes.ID, ScoreQuery{
			Limit:  2,
			Cursor: &pagination.Cursor{Timestamp: ts, ID: id, Direction: pagination.DirectionPrev},
		})
		require.NoError(t, err)
		require.Len(t, first, 2)
		assert.Equal(t, all[0].Address, first[0].Address)
		assert.Equal(t, all[1].Address, first[1].Address)
	})

	t.Run("filters by address", func(t *testing.T) {
		scores, err := store.ListScores(ctx, community.ID, ScoreQuery{Address: addrBob})
		require.NoError(t, err)
		require.Len(t, scores, 1)
		assert.Equal(t, addrBob, scores[0].Address)
	})

	t.Run("timestamp filters exclude never-scored rows", func(t *testing.T) {
		gte := t2
		scores, err := store.ListScores(ctx, community.ID, ScoreQuery{LastScoreTimestampGte: &gte})
		require.NoError(t, err)
		require.Len(t, scores, 2)
		assert.Equal(t, addrBob, scores[0].Address)
		assert.Equal(t, addrCarol, scores[1].Address)

		gt := t2
		scores, err = store.ListScores(ctx, community.ID, ScoreQuery{LastScoreTimestampGt: &gt})
		require.NoError(t, err)
		require.Len(t, scores, 1)
		assert.Equal(t, addrCarol, scores[0].Address)
	})

	t.Run("is scoped to the community", func(t *testing.T) {
		other := seedCommunity(t, store, schema.DedupPolicyLIFO)
		scores, err := store.ListScores(ctx, other.ID, ScoreQuery{})
		require.NoError(t, err)
		assert.Empty(t, scores)
	})
}

// =============================================================================
// Test: GetStampClaims
// =============================================================================

func testGetStampClaims(t *testing.T, store Store) {
	ctx := context.Background()
	community := seedCommunity(t, store, schema.DedupPolicyLIFO)
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	bob, _, err := store.ClaimPassport(ctx, community.ID, addrBob)
	require.NoError(t, err)
	require.NoError(t, store.ReplaceStamps(ctx, bob.ID, []schema.Stamp{
		buildStamp("hash-stamped", "Ens"),
	}))

	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)
	require.NoError(t, store.BurnHashes(ctx, community.ID, addrBob, []HashBurn{
		{Hash: "hash-linked", ExpiresAt: &future},
		{Hash: "hash-expired", ExpiresAt: &past},
		{Hash: "hash-forever", ExpiresAt: nil},
	}))

	t.Run("merges stamp and link claims", func(t *testing.T) {
		claims, err := store.GetStampClaims(ctx, community.ID,
			[]string{"hash-stamped", "hash-linked", "hash-forever", "hash-unknown"}, addrAlice, now)
		require.NoError(t, err)
		require.Len(t, claims, 3)

		byHash := make(map[string]string, len(claims))
		for _, claim := range claims {
			byHash[claim.Hash] = claim.Address
		}
		assert.Equal(t, addrBob, byHash["hash-stamped"])
		assert.Equal(t, addrBob, byHash["hash-linked"])
		assert.Equal(t, addrBob, byHash["hash-forever"])
	})

	t.Run("expired links do not claim", func(t *testing.T) {
		claims, err := store.GetStampClaims(ctx, community.ID, []string{"hash-expired"}, addrAlice, now)
		require.NoError(t, err)
		assert.Empty(t, claims)
	})

	t.Run("own claims are excluded", func(t *testing.T) {
		claims, err := store.GetStampClaims(ctx, community.ID,
			[]string{"hash-stamped", "hash-linked"}, addrBob, now)
		require.NoError(t, err)
		assert.Empty(t, claims)
	})

	t.Run("stamp owner wins over a conflicting link", func(t *testing.T) {
		// Carol holds a stale link for a hash Bob now has stamped
		require.NoError(t, store.BurnHashes(ctx, community.ID, addrCarol, []HashBurn{
			{Hash: "hash-contested", ExpiresAt: &future},
		}))
		require.NoError(t, store.ReplaceStamps(ctx, bob.ID, []schema.Stamp{
			buildStamp("hash-contested", "Google"),
		}))

		claims, err := store.GetStampClaims(ctx, community.ID, []string{"hash-contested"}, addrAlice, now)
		require.NoError(t, err)
		require.Len(t, claims, 1)
		assert.Equal(t, addrBob, claims[0].Address)
	})

	t.Run("empty hash list yields no claims", func(t *testing.T) {
		claims, err := store.GetStampClaims(ctx, community.ID, nil, addrAlice, now)
		require.NoError(t, err)
		assert.Empty(t, claims)
	})
}

// =============================================================================
// Test: ReplaceStamps
// =============================================================================

func testReplaceStamps(t *testing.T, store Store) {
	ctx := context.Background()
	community := seedCommunity(t, store, schema.DedupPolicyLIFO)

	passport, _, err := store.ClaimPassport(ctx, community.ID, addrAlice)
	require.NoError(t, err)

	now := time.Now().UTC()

	listStamps := func() []HashClaim {
		claims, err := store.GetStampClaims(ctx, community.ID,
			[]string{"hash-1", "hash-2", "hash-3"}, addrBob, now)
		require.NoError(t, err)
		return claims
	}

	require.NoError(t, store.ReplaceStamps(ctx, passport.ID, []schema.Stamp{
		buildStamp("hash-1", "Ens"),
		buildStamp("hash-2", "Google"),
	}))
	assert.Len(t, listStamps(), 2)

	// Replacement swaps the whole set
	require.NoError(t, store.ReplaceStamps(ctx, passport.ID, []schema.Stamp{
		buildStamp("hash-3", "Github"),
	}))
	claims := listStamps()
	require.Len(t, claims, 1)
	assert.Equal(t, "hash-3", claims[0].Hash)

	// Empty set clears every stamp
	require.NoError(t, store.ReplaceStamps(ctx, passport.ID, nil))
	assert.Empty(t, listStamps())
}

// =============================================================================
// Test: EvictStamps
// =============================================================================

func testEvictStamps(t *testing.T, store Store) {
	ctx := context.Background()
	community := seedCommunity(t, store, schema.DedupPolicyFIFO)

	bob, _, err := store.ClaimPassport(ctx, community.ID, addrBob)
	require.NoError(t, err)
	require.NoError(t, store.ReplaceStamps(ctx, bob.ID, []schema.Stamp{
		buildStamp("hash-shared", "Ens"),
		buildStamp("hash-keep", "Google"),
	}))

	carol, _, err := store.ClaimPassport(ctx, community.ID, addrCarol)
	require.NoError(t, err)
	require.NoError(t, store.ReplaceStamps(ctx, carol.ID, []schema.Stamp{
		buildStamp("hash-shared", "Ens"),
	}))

	t.Run("removes the hash from other passports and flags them", func(t *testing.T) {
		displaced, err := store.EvictStamps(ctx, community.ID, []string{"hash-shared"}, addrAlice)
		require.NoError(t, err)
		require.Len(t, displaced, 2)
		for _, d := range displaced {
			assert.Equal(t, "hash-shared", d.Hash)
			assert.Equal(t, "Ens", d.Provider)
		}

		now := time.Now().UTC()
		claims, err := store.GetStampClaims(ctx, community.ID, []string{"hash-shared", "hash-keep"}, addrAlice, now)
		require.NoError(t, err)
		require.Len(t, claims, 1)
		assert.Equal(t, "hash-keep", claims[0].Hash)

		// Both displaced passports are due for recalculation again
		refs, err := store.ListPassportsRequiringCalculation(ctx, now.Add(time.Hour), 10)
		require.NoError(t, err)
		addresses := make([]string, 0, len(refs))
		for _, ref := range refs {
			addresses = append(addresses, ref.Address)
		}
		assert.Contains(t, addresses, addrBob)
		assert.Contains(t, addresses, addrCarol)
	})

	t.Run("keeps the submitting address's own stamps", func(t *testing.T) {
		alice, _, err := store.ClaimPassport(ctx, community.ID, addrAlice)
		require.NoError(t, err)
		require.NoError(t, store.ReplaceStamps(ctx, alice.ID, []schema.Stamp{
			buildStamp("hash-mine", "Twitter"),
		}))

		displaced, err := store.EvictStamps(ctx, community.ID, []string{"hash-mine"}, addrAlice)
		require.NoError(t, err)
		assert.Empty(t, displaced)

		claims, err := store.GetStampClaims(ctx, community.ID, []string{"hash-mine"}, addrBob, time.Now().UTC())
		require.NoError(t, err)
		require.Len(t, claims, 1)
		assert.Equal(t, addrAlice, claims[0].Address)
	})

	t.Run("empty hash list is a no-op", func(t *testing.T) {
		displaced, err := store.EvictStamps(ctx, community.ID, nil, addrAlice)
		require.NoError(t, err)
		assert.Empty(t, displaced)
	})
}

// =============================================================================
// Test: BurnHashes
// =============================================================================

func testBurnHashes(t *testing.T, store Store) {
	ctx := context.Background()
	community := seedCommunity(t, store, schema.DedupPolicyLIFO)
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("creates links for the address", func(t *testing.T) {
		expiry := now.Add(48 * time.Hour)
		require.NoError(t, store.BurnHashes(ctx, community.ID, addrAlice, []HashBurn{
			{Hash: "burn-1", ExpiresAt: &expiry},
			{Hash: "burn-2", ExpiresAt: nil},
		}))

		claims, err := store.GetStampClaims(ctx, community.ID, []string{"burn-1", "burn-2"}, addrBob, now)
		require.NoError(t, err)
		require.Len(t, claims, 2)
		for _, claim := range claims {
			assert.Equal(t, addrAlice, claim.Address)
		}
	})

	t.Run("re-burning reassigns the link and refreshes the expiry", func(t *testing.T) {
		expired := now.Add(-time.Hour)
		require.NoError(t, store.BurnHashes(ctx, community.ID, addrAlice, []HashBurn{
			{Hash: "burn-moved", ExpiresAt: &expired},
		}))

		// Alice's claim lapsed, Bob burns the same hash with a live expiry
		fresh := now.Add(72 * time.Hour)
		require.NoError(t, store.BurnHashes(ctx, community.ID, addrBob, []HashBurn{
			{Hash: "burn-moved", ExpiresAt: &fresh},
		}))

		claims, err := store.GetStampClaims(ctx, community.ID, []string{"burn-moved"}, addrCarol, now)
		require.NoError(t, err)
		require.Len(t, claims, 1)
		assert.Equal(t, addrBob, claims[0].Address)
	})

	t.Run("empty burn list is a no-op", func(t *testing.T) {
		require.NoError(t, store.BurnHashes(ctx, community.ID, addrAlice, nil))
	})
}

// =============================================================================
// Test: RecordEvent / ListEvents
// =============================================================================

func testEvents(t *testing.T, store Store) {
	ctx := context.Background()
	community := seedCommunity(t, store, schema.DedupPolicyLIFO)

	base := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	record := func(action schema.EventAction, address string, offset time.Duration) {
		event := schema.Event{
			Action:      action,
			Address:     address,
			CommunityID: &community.ID,
			CreatedAt:   base.Add(offset),
			Data:        datatypes.JSON(`{"source":"test"}`),
		}
		require.NoError(t, store.RecordEvent(ctx, &event))
		require.NotZero(t, event.ID)
	}

	record(schema.EventActionScoreUpdate, addrAlice, 0)
	record(schema.EventActionLifoDeduplication, addrAlice, time.Minute)
	record(schema.EventActionScoreUpdate, addrAlice, 2*time.Minute)
	record(schema.EventActionScoreUpdate, addrBob, 3*time.Minute)

	t.Run("lists newest first", func(t *testing.T) {
		events, err := store.ListEvents(ctx, community.ID, EventQuery{})
		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, addrBob, events[0].Address)
		assert.True(t, events[0].CreatedAt.After(events[3].CreatedAt))
	})

	t.Run("filters by action and address", func(t *testing.T) {
		events, err := store.ListEvents(ctx, community.ID, EventQuery{
			Action:  schema.EventActionScoreUpdate,
			Address: addrAlice,
		})
		require.NoError(t, err)
		require.Len(t, events, 2)
		for _, event := range events {
			assert.Equal(t, schema.EventActionScoreUpdate, event.Action)
			assert.Equal(t, addrAlice, event.Address)
		}
	})

	t.Run("filters by created_at upper bound", func(t *testing.T) {
		cutoff := base.Add(time.Minute)
		events, err := store.ListEvents(ctx, community.ID, EventQuery{CreatedAtLte: &cutoff})
		require.NoError(t, err)
		require.Len(t, events, 2)
	})

	t.Run("pages forward from a cursor", func(t *testing.T) {
		first, err := store.ListEvents(ctx, community.ID, EventQuery{Limit: 2})
		require.NoError(t, err)
		require.Len(t, first, 2)

		ts, id := first[1].CursorKey()
		second, err := store.ListEvents(ctx, community.ID, EventQuery{
			Limit: 2,
			Cursor: &pagination.Cursor{
				Timestamp: ts,
				ID:        id,
				Direction: pagination.DirectionNext,
			},
		})
		require.NoError(t, err)
		require.Len(t, second, 2)
		// Continuation carries on where the first page stopped
		assert.True(t, second[0].CreatedAt.Before(first[1].CreatedAt))
	})

	t.Run("pages backward in presentation order", func(t *testing.T) {
		all, err := store.ListEvents(ctx, community.ID, EventQuery{})
		require.NoError(t, err)
		require.Len(t, all, 4)

		ts, id := all[2].CursorKey()
		prev, err := store.ListEvents(ctx, community.ID, EventQuery{
			Limit: 2,
			Cursor: &pagination.Cursor{
				Timestamp: ts,
				ID:        id,
				Direction: pagination.DirectionPrev,
			},
		})
		require.NoError(t, err)
		require.Len(t, prev, 2)
		assert.Equal(t, all[0].ID, prev[0].ID)
		assert.Equal(t, all[1].ID, prev[1].ID)
	})

	t.Run("pages are stable when events share a timestamp", func(t *testing.T) {
		// One scoring pass can emit several events in the same instant;
		// the id tie-break keeps their pages disjoint and reproducible
		dupes := seedCommunity(t, store, schema.DedupPolicyLIFO)
		shared := base.Add(time.Hour)
		for i := 0; i < 5; i++ {
			event := schema.Event{
				Action:      schema.EventActionScoreUpdate,
				Address:     addrAlice,
				CommunityID: &dupes.ID,
				CreatedAt:   shared,
				Data:        datatypes.JSON(fmt.Sprintf(`{"seq":%d}`, i)),
			}
			require.NoError(t, store.RecordEvent(ctx, &event))
		}

		all, err := store.ListEvents(ctx, dupes.ID, EventQuery{})
		require.NoError(t, err)
		require.Len(t, all, 5)

		var walked []uint64
		var cursor *pagination.Cursor
		for {
			page, err := store.ListEvents(ctx, dupes.ID, EventQuery{Limit: 2, Cursor: cursor})
			require.NoError(t, err)
			if len(page) == 0 {
				break
			}
			for _, event := range page {
				walked = append(walked, event.ID)
			}
			ts, id := page[len(page)-1].CursorKey()
			cursor = &pagination.Cursor{Timestamp: ts, ID: id, Direction: pagination.DirectionNext}
		}
		expected := make([]uint64, 0, len(all))
		for _, event := range all {
			expected = append(expected, event.ID)
		}
		assert.Equal(t, expected, walked)

		// Backing up from the last page reproduces the middle page exactly
		ts, id := all[4].CursorKey()
		middle, err := store.ListEvents(ctx, dupes.ID, EventQuery{
			Limit:  2,
			Cursor: &pagination.Cursor{Timestamp: ts, ID: id, Direction: pagination.DirectionPrev},
		})
		require.NoError(t, err)
		require.Len(t, middle, 2)
		assert.Equal(t, all[2].ID, middle[0].ID)
		assert.Equal(t, all[3].ID, middle[1].ID)
	})

	t.Run("is scoped to the community", func(t *testing.T) {
		other := seedCommunity(t, store, schema.DedupPolicyLIFO)
		events, err := store.ListEvents(ctx, other.ID, EventQuery{})
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

// =============================================================================
// Test: ListPassportsRequiringCalculation
// =============================================================================

func testListPassportsRequiringCalculation(t *testing.T, store Store) {
	ctx := context.Background()
	community := seedCommunity(t, store, schema.DedupPolicyLIFO)

	_, err := store.FlagPassportForCalculation(ctx, community.ID, addrAlice)
	require.NoError(t, err)
	_, err = store.FlagPassportForCalculation(ctx, community.ID, addrBob)
	require.NoError(t, err)

	// Carol's flag is already claimed
	_, _, err = store.ClaimPassport(ctx, community.ID, addrCarol)
	require.NoError(t, err)

	t.Run("returns flagged passports older than the grace period", func(t *testing.T) {
		refs, err := store.ListPassportsRequiringCalculation(ctx, time.Now().UTC().Add(time.Hour), 10)
		require.NoError(t, err)
		require.Len(t, refs, 2)
		for _, ref := range refs {
			assert.Equal(t, community.ID, ref.CommunityID)
		}
	})

	t.Run("excludes passports flagged after the cutoff", func(t *testing.T) {
		refs, err := store.ListPassportsRequiringCalculation(ctx, time.Now().UTC().Add(-time.Hour), 10)
		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("honors the batch limit", func(t *testing.T) {
		refs, err := store.ListPassportsRequiringCalculation(ctx, time.Now().UTC().Add(time.Hour), 1)
		require.NoError(t, err)
		assert.Len(t, refs, 1)
	})
}

// =============================================================================
// Test Runner
// =============================================================================

// RunStoreTests runs the full store suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"GetCommunity", testGetCommunity},
		{"FlagPassportForCalculation", testFlagPassportForCalculation},
		{"ClaimPassport", testClaimPassport},
		{"EnsureScore", testEnsureScore},
		{"MarkScoreError", testMarkScoreError},
		{"SaveScoreDone", testSaveScoreDone},
		{"GetScoreByAddress", testGetScoreByAddress},
		{"ListScores", testListScores},
		{"GetStampClaims", testGetStampClaims},
		{"ReplaceStamps", testReplaceStamps},
		{"EvictStamps", testEvictStamps},
		{"BurnHashes", testBurnHashes},
		{"Events", testEvents},
		{"ListPassportsRequiringCalculation", testListPassportsRequiringCalculation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
