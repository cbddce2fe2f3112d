package risk

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradeinsight/analytics/internal/domain"
	"github.com/tradeinsight/analytics/pkg/formulas"
	"github.com/tradeinsight/analytics/pkg/logger"
)

func TestSimulatedQuoterStepSizedBySymbolVolatility(t *testing.T) {
	profiles := NewProfileStore()
	quoter := NewSimulatedQuoter(profiles, rand.New(rand.NewSource(7)))

	tests := []struct {
		symbol string
		annual float64
	}{
		{"EURUSD", 0.08},
		{"GBPJPY", 0.14},
		{"XAUUSD", DefaultVolatility},
	}

	const draws = 20000
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			changes := make([]float64, draws)
			for i := range changes {
				changes[i] = quoter.CurrentPrice(tt.symbol, 1.0) - 1.0
			}

			dailyVol := tt.annual / math.Sqrt(252)
			assert.InDelta(t, dailyVol, formulas.StdDev(changes), dailyVol*0.05)
		})
	}
}

func TestCalculateRiskConcurrent(t *testing.T) {
	c := testCalculator(NewProfileStore())
	portfolio := testPortfolio()

	var wg sync.WaitGroup
	reports := make([]domain.RiskReport, 8)
	for i := range reports {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i] = c.CalculateRisk(portfolio, "1d", 0.95)
		}(i)
	}
	wg.Wait()

	for _, report := range reports {
		assert.Greater(t, report.GrossExposure, 0.0)
		assert.Greater(t, report.VaR, 0.0)
		assert.Len(t, report.Positions, len(portfolio))
	}
}

func TestAnalyzeSinglePosition(t *testing.T) {
	profiles := NewProfileStore()
	a := NewAnalyzer(profiles, NewSimulatedQuoter(profiles, rand.New(rand.NewSource(1))),
		logger.New(logger.Config{Level: "error"}))

	risks := a.Analyze([]domain.Position{{Symbol: "EURUSD", PositionSize: 10000, EntryPrice: 1.10}})
	assert.Len(t, risks, 1)
	assert.Zero(t, risks[0].CorrelationRisk, "single position has no correlation risk")
	assert.InDelta(t, risks[0].PositionVaR, risks[0].RiskContribution, 1e-9)
}
