package risk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradeinsight/analytics/internal/domain"
	"github.com/tradeinsight/analytics/pkg/formulas"
	"github.com/tradeinsight/analytics/pkg/logger"
)

func testCalculator(profiles *ProfileStore) *Calculator {
	cfg := DefaultConfig()
	cfg.Seed = 42
	return NewCalculator(profiles, cfg, logger.New(logger.Config{Level: "error"}))
}

func TestHistoricalVaR(t *testing.T) {
	c := testCalculator(NewProfileStore())
	portfolio := testPortfolio()

	oneDay := c.historicalVaR(portfolio, 1, 0.95, rand.New(rand.NewSource(7)))
	assert.Greater(t, oneDay, 0.0)

	// Same draws, longer holding period: scales exactly by sqrt(days)
	tenDay := c.historicalVaR(portfolio, 10, 0.95, rand.New(rand.NewSource(7)))
	assert.InDelta(t, oneDay*math.Sqrt(10), tenDay, oneDay*1e-9)
}

func TestParametricVaR(t *testing.T) {
	c := testCalculator(NewProfileStore())

	valueAtRisk := c.parametricVaR(testPortfolio(), 1, 0.95)
	assert.Greater(t, valueAtRisk, 0.0)

	// Higher confidence demands a larger buffer
	assert.Greater(t, c.parametricVaR(testPortfolio(), 1, 0.99), valueAtRisk)
}

func TestParametricVaRPerfectCorrelationAdditivity(t *testing.T) {
	profiles := NewProfileStore()
	profiles.SetVolatility("AAA", 0.10)
	profiles.SetVolatility("BBB", 0.10)
	profiles.SetCorrelation("AAA", "BBB", 1.0)
	c := testCalculator(profiles)

	split := []domain.Position{
		{Symbol: "AAA", PositionSize: 10000, EntryPrice: 1.0},
		{Symbol: "BBB", PositionSize: 5000, EntryPrice: 1.0},
	}
	combined := []domain.Position{
		{Symbol: "AAA", PositionSize: 15000, EntryPrice: 1.0},
	}

	splitVaR := c.parametricVaR(split, 1, 0.95)
	combinedVaR := c.parametricVaR(combined, 1, 0.95)
	assert.InDelta(t, combinedVaR, splitVaR, combinedVaR*1e-9,
		"perfectly correlated positions must add like one position")
}

func TestMonteCarloVaR(t *testing.T) {
	c := testCalculator(NewProfileStore())

	valueAtRisk := c.monteCarloVaR(testPortfolio(), 1, 0.95, 5000, rand.New(rand.NewSource(3)))
	assert.Greater(t, valueAtRisk, 0.0)

	// Short-only portfolio still reports a positive loss figure
	shorts := []domain.Position{
		{Symbol: "EURUSD", PositionSize: -10000, EntryPrice: 1.10},
	}
	assert.Greater(t, c.monteCarloVaR(shorts, 1, 0.95, 5000, rand.New(rand.NewSource(3))), 0.0)
}

func TestMonteCarloVaRConvergence(t *testing.T) {
	c := testCalculator(NewProfileStore())
	portfolio := testPortfolio()

	relStdErr := func(trials int) float64 {
		var estimates []float64
		for seed := int64(1); seed <= 12; seed++ {
			rng := rand.New(rand.NewSource(seed))
			estimates = append(estimates, c.monteCarloVaR(portfolio, 1, 0.95, trials, rng))
		}
		return formulas.StdDev(estimates) / formulas.Mean(estimates)
	}

	assert.Less(t, relStdErr(10000), relStdErr(100),
		"more trials must tighten the VaR estimate")
}

func TestFlatShortfall(t *testing.T) {
	fn := FlatShortfall(1.3)
	assert.InDelta(t, 130.0, fn(100), 1e-9)
	assert.Equal(t, 0.0, fn(0))
}
