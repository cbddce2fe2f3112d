package risk

import (
	"math"
	"math/rand"

	"github.com/tradeinsight/analytics/internal/domain"
	"github.com/tradeinsight/analytics/pkg/formulas"
)

// simulationDays is the length of the simulated daily-return series the
// performance ratios are derived from.
const simulationDays = 252

// riskRatios bundles the performance metrics computed from one simulated
// return series.
type riskRatios struct {
	SharpeRatio      float64
	SortinoRatio     float64
	CalmarRatio      float64
	MaxDrawdown      float64 // percent
	VolatilityAnnual float64
}

// simulateReturns generates a one-year daily return series for the
// portfolio using the correlated draw engine, expressed as fractions of
// the account balance.
func (c *Calculator) simulateReturns(portfolio []domain.Position, rng *rand.Rand) []float64 {
	gen := NewGenerator(portfolio, c.profiles, rng)

	returns := make([]float64, simulationDays)
	for t := 0; t < simulationDays; t++ {
		draws := gen.Draw()
		var pnl float64
		for i, pos := range portfolio {
			r := draws[i]
			if pos.IsShort() {
				r = -r
			}
			pnl += pos.Notional() * r
		}
		returns[t] = pnl / c.accountBalance
	}
	return returns
}

// computeRatios derives the performance ratios from a daily return
// series. Degenerate inputs yield zeroed ratios rather than NaN.
func (c *Calculator) computeRatios(returns []float64) riskRatios {
	if len(returns) == 0 {
		return riskRatios{}
	}

	annualVol := formulas.AnnualizedVolatility(returns)
	annualReturn := formulas.Mean(returns) * 252

	cumulative := make([]float64, len(returns))
	value := 1.0
	for i, r := range returns {
		value *= 1 + r
		cumulative[i] = value
	}
	maxDD := formulas.CalculateMaxDrawdown(cumulative)

	calmar := 0.0
	if maxDD > 0 {
		calmar = annualReturn / maxDD
	}

	return riskRatios{
		SharpeRatio:      formulas.CalculateSharpeRatio(returns, c.riskFreeRate, 252),
		SortinoRatio:     formulas.CalculateSortinoRatio(returns, c.riskFreeRate, 252),
		CalmarRatio:      calmar,
		MaxDrawdown:      maxDD * 100,
		VolatilityAnnual: annualVol,
	}
}

// exposures sums signed and absolute market values across the analyzed
// positions.
func exposures(positions []domain.PositionRisk) (net, gross float64) {
	for _, pos := range positions {
		signed := pos.MarketValue
		if pos.PositionSize < 0 {
			signed = -signed
		}
		net += signed
		gross += math.Abs(pos.MarketValue)
	}
	return net, gross
}
