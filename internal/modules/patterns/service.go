package patterns

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/tradeinsight/analytics/internal/domain"
)

// Config holds pattern-detection parameters.
type Config struct {
	ProminenceFraction float64 // Peak prominence bar: fraction of series mean
	ClusterTolerance   float64 // Level clustering eps: fraction of mean level
	ShortWindow        int     // Short-term trend window
	MediumWindow       int     // Medium-term trend window
	DivergenceWindow   int     // Trailing candles scanned for divergence
	RSIPeriod          int
	ExtremaOrder       int     // Neighborhood for divergence extrema
	MinSlope           float64 // Minimum |slope| for a trend to register
}

// DefaultConfig returns the standard detection parameters.
func DefaultConfig() Config {
	return Config{
		ProminenceFraction: 0.001, // 0.1%
		ClusterTolerance:   0.001, // 0.1%
		ShortWindow:        20,
		MediumWindow:       50,
		DivergenceWindow:   50,
		RSIPeriod:          14,
		ExtremaOrder:       5,
		MinSlope:           0.0001,
	}
}

// Service orchestrates the detector families and merges their results
// into a single confidence-ranked pattern list.
type Service struct {
	cfg          Config
	candlesticks []namedMatcher
	formations   []namedDetector
	log          zerolog.Logger
}

// NewService creates a pattern-detection service with default parameters.
func NewService(log zerolog.Logger) *Service {
	return NewServiceWithConfig(DefaultConfig(), log)
}

// NewServiceWithConfig creates a pattern-detection service.
func NewServiceWithConfig(cfg Config, log zerolog.Logger) *Service {
	return &Service{
		cfg:          cfg,
		candlesticks: candlestickMatchers(),
		formations:   chartDetectors(),
		log:          log.With().Str("component", "patterns").Logger(),
	}
}

// Detect runs the requested detector families over the series and returns
// all matches sorted by confidence, highest first (stable for ties).
// An empty series yields an empty result: "no data" is not an error.
func (s *Service) Detect(series domain.Series, types []domain.PatternType) []domain.Pattern {
	if len(types) == 0 {
		types = []domain.PatternType{
			domain.PatternSupportResistance,
			domain.PatternTrends,
			domain.PatternCandlestick,
			domain.PatternTechnical,
		}
	}

	patterns := []domain.Pattern{}
	if series.IsEmpty() {
		return patterns
	}

	requested := make(map[domain.PatternType]bool, len(types))
	for _, t := range types {
		requested[t] = true
	}

	if requested[domain.PatternSupportResistance] {
		patterns = append(patterns, s.detectSupportResistance(series)...)
	}
	if requested[domain.PatternTrends] {
		patterns = append(patterns, s.detectTrends(series)...)
	}
	if requested[domain.PatternCandlestick] {
		for _, m := range s.candlesticks {
			patterns = append(patterns, m.match(series)...)
		}
	}
	if requested[domain.PatternTechnical] {
		for _, d := range s.formations {
			patterns = append(patterns, d.detect(series)...)
		}
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Confidence > patterns[j].Confidence
	})

	s.log.Debug().
		Str("symbol", series.Symbol).
		Int("candles", series.Len()).
		Int("patterns", len(patterns)).
		Msg("Pattern detection complete")

	return patterns
}
