package risk

import (
	"sync"
)

// Fallbacks for symbols absent from the profile tables.
const (
	DefaultVolatility  = 0.10
	DefaultCorrelation = 0.0
)

type pairKey struct {
	a, b string
}

// orderedPair canonicalizes a symbol pair so lookups are symmetric.
func orderedPair(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// ProfileStore holds per-symbol annualized volatilities and pairwise
// correlations. Seeded with static defaults for the major FX pairs and
// optionally refreshed from realized history by the background job.
// Reads vastly outnumber writes; guarded by an RWMutex.
type ProfileStore struct {
	mu           sync.RWMutex
	volatilities map[string]float64
	correlations map[pairKey]float64
}

// NewProfileStore creates a store seeded with the default tables.
func NewProfileStore() *ProfileStore {
	s := &ProfileStore{
		volatilities: map[string]float64{
			"EURUSD": 0.08,
			"GBPUSD": 0.10,
			"USDJPY": 0.09,
			"USDCHF": 0.08,
			"AUDUSD": 0.12,
			"USDCAD": 0.09,
			"NZDUSD": 0.13,
			"EURJPY": 0.11,
			"GBPJPY": 0.14,
			"CHFJPY": 0.11,
		},
		correlations: map[pairKey]float64{},
	}

	defaults := []struct {
		a, b string
		corr float64
	}{
		{"EURUSD", "GBPUSD", 0.7},
		{"EURUSD", "USDJPY", -0.3},
		{"EURUSD", "USDCHF", -0.8},
		{"EURUSD", "AUDUSD", 0.6},
		{"EURUSD", "USDCAD", -0.4},
		{"GBPUSD", "USDJPY", -0.2},
		{"GBPUSD", "USDCHF", -0.6},
		{"GBPUSD", "AUDUSD", 0.8},
		{"USDJPY", "USDCHF", 0.4},
		{"USDJPY", "AUDUSD", -0.1},
		{"USDCHF", "AUDUSD", -0.5},
	}
	for _, d := range defaults {
		s.correlations[orderedPair(d.a, d.b)] = d.corr
	}

	return s
}

// Volatility returns the annualized volatility for a symbol, falling back
// to the default for unknown symbols.
func (s *ProfileStore) Volatility(symbol string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if vol, ok := s.volatilities[symbol]; ok {
		return vol
	}
	return DefaultVolatility
}

// Correlation returns the pairwise correlation between two symbols.
// Symmetric by construction; a symbol correlates 1.0 with itself and
// unknown pairs fall back to the default.
func (s *ProfileStore) Correlation(a, b string) float64 {
	if a == b {
		return 1.0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if corr, ok := s.correlations[orderedPair(a, b)]; ok {
		return corr
	}
	return DefaultCorrelation
}

// SetVolatility stores a refreshed volatility estimate.
func (s *ProfileStore) SetVolatility(symbol string, vol float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volatilities[symbol] = vol
}

// SetCorrelation stores a refreshed correlation estimate for a pair.
func (s *ProfileStore) SetCorrelation(a, b string, corr float64) {
	if a == b {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.correlations[orderedPair(a, b)] = corr
}
