package risk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradeinsight/analytics/internal/domain"
)

func TestTimeframeDays(t *testing.T) {
	tests := []struct {
		timeframe string
		want      int
	}{
		{"1d", 1},
		{"5d", 5},
		{"10d", 10},
		{"1w", 7},
		{"2w", 14},
		{"1m", 22},
		{"3m", 66},
		{"6m", 132},
		{"1y", 252},
		{"4h", 1},
		{"", 1},
		{"bogus", 1},
	}

	for _, tt := range tests {
		t.Run(tt.timeframe, func(t *testing.T) {
			assert.Equal(t, tt.want, timeframeDays(tt.timeframe))
		})
	}
}

func TestCalculateRiskEmptyPortfolio(t *testing.T) {
	c := testCalculator(NewProfileStore())

	report := c.CalculateRisk(nil, "1d", 0.95)
	assert.Equal(t, domain.EmptyRiskReport(), report)
	assert.NotNil(t, report.Positions)
	assert.NotNil(t, report.Recommendations)
	assert.Zero(t, report.VaR)
	assert.Zero(t, report.Leverage)
}

func TestCalculateRiskReport(t *testing.T) {
	c := testCalculator(NewProfileStore())
	portfolio := testPortfolio()

	report := c.CalculateRisk(portfolio, "1d", 0.95)

	assert.Greater(t, report.GrossExposure, 0.0)
	assert.Greater(t, report.GrossExposure, report.NetExposure,
		"book with a short has gross above net")
	assert.InDelta(t, report.GrossExposure/10000, report.Leverage, 1e-9)
	assert.Greater(t, report.VaR, 0.0)
	assert.InDelta(t, report.VaR*1.3, report.ExpectedShortfall, 1e-9)
	assert.Greater(t, report.VolatilityAnnual, 0.0)
	assert.Len(t, report.Positions, len(portfolio))
	assert.NotEmpty(t, report.Recommendations)

	for _, pos := range report.Positions {
		assert.Greater(t, pos.MarketValue, 0.0)
		assert.Greater(t, pos.PositionVaR, 0.0)
		assert.InDelta(t, pos.PositionVaR/float64(len(portfolio)), pos.RiskContribution, 1e-9)
	}
}

func TestCalculateRiskDeterministicWithSeed(t *testing.T) {
	a := testCalculator(NewProfileStore())
	b := testCalculator(NewProfileStore())

	assert.Equal(t, a.CalculateRisk(testPortfolio(), "1d", 0.95),
		b.CalculateRisk(testPortfolio(), "1d", 0.95))
}

func TestCalculateRiskDefaultsConfidence(t *testing.T) {
	a := testCalculator(NewProfileStore())
	b := testCalculator(NewProfileStore())

	// Out-of-range confidence falls back to 0.95
	assert.Equal(t, a.CalculateRisk(testPortfolio(), "1d", 0),
		b.CalculateRisk(testPortfolio(), "1d", 0.95))
}

func TestVaRByMethod(t *testing.T) {
	c := testCalculator(NewProfileStore())

	estimates := c.VaRByMethod(testPortfolio(), "1d", 0.95)
	assert.Len(t, estimates, 3)
	for _, method := range []string{"historical", "parametric", "monte_carlo"} {
		assert.Greater(t, estimates[method], 0.0, method)
	}

	empty := c.VaRByMethod(nil, "1d", 0.95)
	for _, v := range empty {
		assert.Zero(t, v)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	c := testCalculator(NewProfileStore())

	tests := []struct {
		name     string
		leverage float64
		varAmt   float64
		ratios   riskRatios
		contains string
	}{
		{
			name:     "very high leverage",
			leverage: 6,
			ratios:   riskRatios{SharpeRatio: 1},
			contains: "reducing leverage",
		},
		{
			name:     "elevated var",
			varAmt:   600,
			ratios:   riskRatios{SharpeRatio: 1},
			contains: "VaR is elevated",
		},
		{
			name:     "excessive var",
			varAmt:   1500,
			ratios:   riskRatios{SharpeRatio: 1},
			contains: "exceeds 10%",
		},
		{
			name:     "poor sharpe",
			ratios:   riskRatios{SharpeRatio: 0.1},
			contains: "returns are low",
		},
		{
			name:     "deep drawdown",
			ratios:   riskRatios{SharpeRatio: 1, MaxDrawdown: 25},
			contains: "drawdown is concerning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := c.generateRecommendations(tt.leverage, tt.varAmt, tt.ratios)
			found := false
			for _, r := range recs {
				if strings.Contains(r, tt.contains) {
					found = true
				}
			}
			assert.True(t, found, "expected a recommendation containing %q, got %v", tt.contains, recs)
		})
	}

	t.Run("quiet portfolio gets the neutral statement", func(t *testing.T) {
		recs := c.generateRecommendations(1, 100, riskRatios{SharpeRatio: 1})
		assert.Equal(t, []string{"Portfolio risk levels are within acceptable ranges"}, recs)
	})
}
