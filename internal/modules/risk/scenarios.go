package risk

import (
	"fmt"
	"math"

	"github.com/tradeinsight/analytics/internal/domain"
)

// Named stress scenarios.
const (
	ScenarioMarketCrash          = "market_crash"
	ScenarioHighVolatility       = "high_volatility"
	ScenarioTrendReversal        = "trend_reversal"
	ScenarioCorrelationBreakdown = "correlation_breakdown"
)

// AllScenarios lists every supported scenario name.
func AllScenarios() []string {
	return []string{
		ScenarioMarketCrash,
		ScenarioHighVolatility,
		ScenarioTrendReversal,
		ScenarioCorrelationBreakdown,
	}
}

// scenarioMarketCrash stresses a broad 40% market decline. Long positions
// absorb the full move, shorts profit from it (negative loss).
func (c *Calculator) scenarioMarketCrash(portfolio []domain.Position) domain.ScenarioResult {
	const (
		crashSeverity   = -0.40
		probability     = 0.05
		worstMultiplier = 1.5
		recoveryDays    = 180
	)

	var totalLoss, worstCase float64
	affected := []domain.AffectedPosition{}

	for _, pos := range portfolio {
		var expectedLoss float64
		if pos.IsShort() {
			expectedLoss = pos.Notional() * crashSeverity
		} else {
			expectedLoss = pos.Notional() * math.Abs(crashSeverity)
		}

		totalLoss += expectedLoss
		worstCase += expectedLoss * worstMultiplier

		if expectedLoss > 0 {
			affected = append(affected, domain.AffectedPosition{
				Symbol: pos.Symbol,
				Details: map[string]interface{}{
					"expected_loss":   expectedLoss,
					"loss_percentage": math.Abs(crashSeverity) * 100,
				},
			})
		}
	}

	return domain.ScenarioResult{
		Probability:       probability,
		ExpectedLoss:      totalLoss,
		WorstCaseLoss:     worstCase,
		RecoveryTimeDays:  recoveryDays,
		AffectedPositions: affected,
	}
}

// scenarioHighVolatility stresses a 2.5x volatility regime and reports
// the one-month 95% adverse move per position.
func (c *Calculator) scenarioHighVolatility(portfolio []domain.Position) domain.ScenarioResult {
	const (
		volMultiplier   = 2.5
		probability     = 0.15
		worstMultiplier = 1.5
		recoveryDays    = 60
	)

	var totalRisk, worstCase float64
	affected := []domain.AffectedPosition{}

	for _, pos := range portfolio {
		highVol := c.profiles.Volatility(pos.Symbol) * volMultiplier
		dailyVaR := pos.Notional() * (highVol / math.Sqrt(252)) * 1.65
		monthlyVaR := dailyVaR * math.Sqrt(22)

		totalRisk += monthlyVaR
		worstCase += monthlyVaR * worstMultiplier

		affected = append(affected, domain.AffectedPosition{
			Symbol: pos.Symbol,
			Details: map[string]interface{}{
				"additional_risk":     monthlyVaR,
				"volatility_increase": fmt.Sprintf("%.0f%%", (volMultiplier-1)*100),
			},
		})
	}

	return domain.ScenarioResult{
		Probability:       probability,
		ExpectedLoss:      totalRisk,
		WorstCaseLoss:     worstCase,
		RecoveryTimeDays:  recoveryDays,
		AffectedPositions: affected,
	}
}

// scenarioTrendReversal stresses a 20% move against every position,
// regardless of direction.
func (c *Calculator) scenarioTrendReversal(portfolio []domain.Position) domain.ScenarioResult {
	const (
		reversalMagnitude = 0.20
		probability       = 0.25
		worstMultiplier   = 1.3
		recoveryDays      = 90
	)

	var totalLoss, worstCase float64
	affected := []domain.AffectedPosition{}

	for _, pos := range portfolio {
		expectedLoss := pos.Notional() * reversalMagnitude
		totalLoss += expectedLoss
		worstCase += expectedLoss * worstMultiplier

		affected = append(affected, domain.AffectedPosition{
			Symbol: pos.Symbol,
			Details: map[string]interface{}{
				"expected_loss":      expectedLoss,
				"reversal_magnitude": fmt.Sprintf("%.0f%%", reversalMagnitude*100),
			},
		})
	}

	return domain.ScenarioResult{
		Probability:       probability,
		ExpectedLoss:      totalLoss,
		WorstCaseLoss:     worstCase,
		RecoveryTimeDays:  recoveryDays,
		AffectedPositions: affected,
	}
}

// scenarioCorrelationBreakdown quantifies the diversification benefit by
// comparing portfolio volatility with and without correlation terms, then
// prices its loss against the account balance at 95% confidence.
func (c *Calculator) scenarioCorrelationBreakdown(portfolio []domain.Position) domain.ScenarioResult {
	const (
		probability  = 0.10
		recoveryDays = 120
	)

	withCorr := c.portfolioVolatility(portfolio, true)
	withoutCorr := c.portfolioVolatility(portfolio, false)
	diversificationLoss := withoutCorr - withCorr

	expectedLoss := c.accountBalance * diversificationLoss * 1.65
	worstCase := expectedLoss * 2

	affected := make([]domain.AffectedPosition, 0, len(portfolio))
	for _, pos := range portfolio {
		affected = append(affected, domain.AffectedPosition{
			Symbol: pos.Symbol,
			Details: map[string]interface{}{
				"correlation_impact":   "High",
				"diversification_loss": diversificationLoss,
			},
		})
	}

	return domain.ScenarioResult{
		Probability:       probability,
		ExpectedLoss:      expectedLoss,
		WorstCaseLoss:     worstCase,
		RecoveryTimeDays:  recoveryDays,
		AffectedPositions: affected,
	}
}

// portfolioVolatility computes weighted portfolio volatility, optionally
// including pairwise correlation terms.
func (c *Calculator) portfolioVolatility(portfolio []domain.Position, useCorrelations bool) float64 {
	if len(portfolio) == 0 {
		return 0
	}

	var totalValue float64
	for _, pos := range portfolio {
		totalValue += pos.Notional()
	}
	if totalValue == 0 {
		return 0
	}

	var variance float64
	for _, pos := range portfolio {
		weight := pos.Notional() / totalValue
		term := weight * c.profiles.Volatility(pos.Symbol)
		variance += term * term
	}

	if useCorrelations && len(portfolio) > 1 {
		for i, a := range portfolio {
			for j, b := range portfolio {
				if i == j {
					continue
				}
				corr := c.profiles.Correlation(a.Symbol, b.Symbol)
				wa := a.Notional() / totalValue
				wb := b.Notional() / totalValue
				variance += wa * wb * c.profiles.Volatility(a.Symbol) * c.profiles.Volatility(b.Symbol) * corr
			}
		}
	}

	if variance < 0 {
		return 0
	}
	return math.Sqrt(variance)
}
