package risk

import (
	"math"
	"math/rand"
	"sync"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tradeinsight/analytics/internal/domain"
)

// Quoter supplies a current price for an open position. The default
// implementation simulates a small random walk off the entry price; a
// live-data quoter can be swapped in without touching the analyzer.
type Quoter interface {
	CurrentPrice(symbol string, entryPrice float64) float64
}

type simulatedQuoter struct {
	profiles *ProfileStore

	mu  sync.Mutex
	rng *rand.Rand
}

// CurrentPrice perturbs the entry price by one gaussian daily step at the
// symbol's volatility. Safe for concurrent callers.
func (q *simulatedQuoter) CurrentPrice(symbol string, entryPrice float64) float64 {
	dailyVol := q.profiles.Volatility(symbol) / math.Sqrt(252)

	q.mu.Lock()
	step := q.rng.NormFloat64()
	q.mu.Unlock()

	return entryPrice * (1 + step*dailyVol)
}

// NewSimulatedQuoter returns a quoter that perturbs the entry price with
// a gaussian step sized by the symbol's daily volatility.
func NewSimulatedQuoter(profiles *ProfileStore, rng *rand.Rand) Quoter {
	return &simulatedQuoter{profiles: profiles, rng: rng}
}

// Analyzer computes per-position risk figures against the profile store.
type Analyzer struct {
	profiles *ProfileStore
	quoter   Quoter
	log      zerolog.Logger
}

func NewAnalyzer(profiles *ProfileStore, quoter Quoter, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		profiles: profiles,
		quoter:   quoter,
		log:      log.With().Str("component", "position-analyzer").Logger(),
	}
}

// Analyze produces a risk breakdown for every position in the portfolio:
// market value, unrealized PnL, a one-day 95% position VaR, an
// equal-weight risk contribution, and the mean absolute correlation to
// the rest of the book.
func (a *Analyzer) Analyze(portfolio []domain.Position) []domain.PositionRisk {
	if len(portfolio) == 0 {
		return []domain.PositionRisk{}
	}

	z95 := distuv.UnitNormal.Quantile(0.95)
	n := float64(len(portfolio))

	out := make([]domain.PositionRisk, 0, len(portfolio))
	for _, pos := range portfolio {
		current := a.quoter.CurrentPrice(pos.Symbol, pos.EntryPrice)
		marketValue := math.Abs(pos.PositionSize) * current
		pnl := (current - pos.EntryPrice) * pos.PositionSize

		dailyVol := a.profiles.Volatility(pos.Symbol) / math.Sqrt(252)
		posVaR := marketValue * dailyVol * z95

		out = append(out, domain.PositionRisk{
			Symbol:        pos.Symbol,
			PositionSize:  pos.PositionSize,
			EntryPrice:    pos.EntryPrice,
			CurrentPrice:  current,
			MarketValue:   marketValue,
			UnrealizedPnL: pnl,
			PositionVaR:   posVaR,
			// Equal-weight approximation, not true marginal VaR.
			RiskContribution: posVaR / n,
			CorrelationRisk:  a.correlationRisk(pos.Symbol, portfolio),
		})
	}
	return out
}

// correlationRisk is the mean absolute correlation of a symbol against
// the other positions in the portfolio.
func (a *Analyzer) correlationRisk(symbol string, portfolio []domain.Position) float64 {
	if len(portfolio) < 2 {
		return 0
	}

	var total float64
	for _, other := range portfolio {
		if other.Symbol == symbol {
			continue
		}
		total += math.Abs(a.profiles.Correlation(symbol, other.Symbol))
	}
	return total / float64(len(portfolio)-1)
}
