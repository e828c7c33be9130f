package scoring

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gitcoinco/passport-scorer/internal/domain"
)

// Config holds the scoring weights and the optional binary threshold
type Config struct {
	// Weights maps provider name to the weight a stamp from that provider
	// contributes
	Weights map[string]decimal.Decimal
	// Threshold, when positive, turns the scorer binary: the score becomes
	// 1 when the weighted sum reaches the threshold, 0 otherwise
	Threshold decimal.Decimal
}

// ParseWeights converts configured weight strings into decimals
func ParseWeights(raw map[string]string) (map[string]decimal.Decimal, error) {
	weights := make(map[string]decimal.Decimal, len(raw))
	for provider, value := range raw {
		weight, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q for provider %s: %w", value, provider, err)
		}
		weights[provider] = weight
	}
	return weights, nil
}

// Evidence documents how a binary score was decided
type Evidence struct {
	Type      string `json:"type"`
	Success   bool   `json:"success"`
	RawScore  string `json:"rawScore"`
	Threshold string `json:"threshold"`
}

// Result is the outcome of scoring one stamp set
type Result struct {
	// Score is the final score: the weighted sum, or 1/0 for binary scorers
	Score decimal.Decimal
	// StampScores maps provider name to the weight it contributed
	StampScores map[string]decimal.Decimal
	// Evidence is set for binary scorers only
	Evidence *Evidence
}

// Scorer computes a score from a deduplicated stamp set
//
//go:generate mockgen -source=scorer.go -destination=../mocks/scorer.go -package=mocks -mock_names=Scorer=MockScorer
type Scorer interface {
	Score(stamps []domain.Stamp) (*Result, error)
}

type weightedScorer struct {
	config Config
}

// NewWeightedScorer creates a scorer that sums configured provider weights.
// Each provider counts once regardless of how many stamps carry it;
// providers without a configured weight contribute nothing.
func NewWeightedScorer(config Config) Scorer {
	return &weightedScorer{config: config}
}

func (s *weightedScorer) Score(stamps []domain.Stamp) (*Result, error) {
	sum := decimal.Zero
	stampScores := make(map[string]decimal.Decimal, len(stamps))

	for _, stamp := range stamps {
		if _, counted := stampScores[stamp.Provider]; counted {
			continue
		}

		weight, ok := s.config.Weights[stamp.Provider]
		if !ok {
			weight = decimal.Zero
		}
		stampScores[stamp.Provider] = weight
		sum = sum.Add(weight)
	}

	if !s.config.Threshold.IsPositive() {
		return &Result{Score: sum, StampScores: stampScores}, nil
	}

	success := sum.GreaterThanOrEqual(s.config.Threshold)
	score := decimal.Zero
	if success {
		score = decimal.NewFromInt(1)
	}

	return &Result{
		Score:       score,
		StampScores: stampScores,
		Evidence: &Evidence{
			Type:      "ThresholdScoreCheck",
			Success:   success,
			RawScore:  sum.String(),
			Threshold: s.config.Threshold.String(),
		},
	}, nil
}
