package patterns

import (
	"github.com/tradeinsight/analytics/internal/domain"
)

// AdjustmentFunc returns a multiplicative reliability factor (>= 0) for a
// pattern given the series it was detected in.
type AdjustmentFunc func(series domain.Series, p domain.Pattern) float64

// ReliabilityScorer adjusts raw pattern confidence by volume confirmation,
// market-context alignment and a completion check. The default factors are
// the contract placeholders (flat 1.1x volume boost, neutral context and
// completion); stronger policies can be injected without touching the
// detection engine.
type ReliabilityScorer struct {
	Volume     AdjustmentFunc
	Context    AdjustmentFunc
	Completion AdjustmentFunc
}

// NewReliabilityScorer creates a scorer with the default adjustment policy.
func NewReliabilityScorer() *ReliabilityScorer {
	return &ReliabilityScorer{
		Volume:     func(domain.Series, domain.Pattern) float64 { return 1.1 },
		Context:    func(domain.Series, domain.Pattern) float64 { return 1.0 },
		Completion: func(domain.Series, domain.Pattern) float64 { return 1.0 },
	}
}

// Score computes the reliability of a single pattern, clamped to [0, 1].
// The pattern itself is never mutated.
func (s *ReliabilityScorer) Score(series domain.Series, p domain.Pattern) float64 {
	score := p.Confidence
	score *= s.Volume(series, p)
	score *= s.Context(series, p)
	score *= s.Completion(series, p)

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// ScoreAll computes reliability for each pattern, keyed by pattern ID.
func (s *ReliabilityScorer) ScoreAll(series domain.Series, patterns []domain.Pattern) map[string]float64 {
	scores := make(map[string]float64, len(patterns))
	for _, p := range patterns {
		scores[p.ID] = s.Score(series, p)
	}
	return scores
}
