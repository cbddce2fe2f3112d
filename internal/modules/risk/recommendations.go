package risk

// generateRecommendations evaluates the computed metrics against a fixed
// rule list and returns human-readable advisories. A portfolio that
// triggers no rule gets a single neutral statement.
func (c *Calculator) generateRecommendations(leverage, valueAtRisk float64, ratios riskRatios) []string {
	recommendations := []string{}

	if leverage > 5 {
		recommendations = append(recommendations, "Consider reducing leverage - current level is very high")
	} else if leverage > 3 {
		recommendations = append(recommendations, "Monitor leverage levels - approaching high risk territory")
	}

	varPercentage := 0.0
	if c.accountBalance > 0 {
		varPercentage = valueAtRisk / c.accountBalance * 100
	}
	if varPercentage > 10 {
		recommendations = append(recommendations, "Daily VaR exceeds 10% of account - consider reducing position sizes")
	} else if varPercentage > 5 {
		recommendations = append(recommendations, "Daily VaR is elevated - monitor risk closely")
	}

	if ratios.SharpeRatio < 0.5 {
		recommendations = append(recommendations, "Risk-adjusted returns are low - review trading strategy")
	} else if ratios.SharpeRatio > 2 {
		recommendations = append(recommendations, "Excellent risk-adjusted returns - maintain current strategy")
	}

	if ratios.MaxDrawdown > 20 {
		recommendations = append(recommendations, "Maximum drawdown is concerning - implement stricter stop losses")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Portfolio risk levels are within acceptable ranges")
	}

	return recommendations
}
