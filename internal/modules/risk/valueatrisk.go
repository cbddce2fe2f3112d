package risk

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tradeinsight/analytics/internal/domain"
)

// historicalDraws is the number of simulated daily P&L observations used
// by the historical VaR method.
const historicalDraws = 252

// ShortfallFunc converts a VaR figure into an expected shortfall
// estimate. The default multiplies by a flat factor; a true conditional
// tail mean can be swapped in without touching the calculator.
type ShortfallFunc func(valueAtRisk float64) float64

// FlatShortfall returns a shortfall estimator that scales VaR by factor.
func FlatShortfall(factor float64) ShortfallFunc {
	return func(valueAtRisk float64) float64 {
		return valueAtRisk * factor
	}
}

// historicalVaR simulates independent per-symbol daily returns, ignoring
// correlation. Kept distinct from the Monte Carlo path so callers can
// compare the two estimates.
func (c *Calculator) historicalVaR(portfolio []domain.Position, days int, confidence float64, rng *rand.Rand) float64 {
	losses := make([]float64, historicalDraws)
	for t := 0; t < historicalDraws; t++ {
		var pnl float64
		for _, pos := range portfolio {
			dailyVol := c.profiles.Volatility(pos.Symbol) / math.Sqrt(252)
			pnl += pos.Notional() * rng.NormFloat64() * dailyVol
		}
		losses[t] = pnl * math.Sqrt(float64(days))
	}

	sort.Float64s(losses)
	return math.Abs(stat.Quantile(1-confidence, stat.Empirical, losses, nil))
}

// parametricVaR assumes jointly normal returns. Portfolio variance is the
// sum of squared position terms plus 2*corr*term_i*term_j for every
// unordered symbol pair, so two perfectly correlated positions carry the
// same VaR as one combined position.
func (c *Calculator) parametricVaR(portfolio []domain.Position, days int, confidence float64) float64 {
	terms := make([]float64, len(portfolio))
	for i, pos := range portfolio {
		terms[i] = pos.Notional() * c.profiles.Volatility(pos.Symbol) / math.Sqrt(252)
	}

	var variance float64
	for i := range terms {
		variance += terms[i] * terms[i]
		for j := i + 1; j < len(terms); j++ {
			corr := c.profiles.Correlation(portfolio[i].Symbol, portfolio[j].Symbol)
			variance += 2 * corr * terms[i] * terms[j]
		}
	}
	if variance < 0 {
		variance = 0
	}

	std := math.Sqrt(variance) * math.Sqrt(float64(days))
	return std * distuv.UnitNormal.Quantile(confidence)
}

// monteCarloVaR runs correlated return draws and takes the loss-tail
// percentile of signed portfolio P&L. This is the primary VaR estimate.
func (c *Calculator) monteCarloVaR(portfolio []domain.Position, days int, confidence float64, trials int, rng *rand.Rand) float64 {
	gen := NewGenerator(portfolio, c.profiles, rng)
	scale := math.Sqrt(float64(days))

	pnls := make([]float64, trials)
	for t := 0; t < trials; t++ {
		draws := gen.Draw()
		var pnl float64
		for i, pos := range portfolio {
			r := draws[i]
			if pos.IsShort() {
				r = -r
			}
			pnl += pos.Notional() * r * scale
		}
		pnls[t] = pnl
	}

	sort.Float64s(pnls)
	return math.Abs(stat.Quantile(1-confidence, stat.Empirical, pnls, nil))
}
