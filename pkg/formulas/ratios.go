package formulas

import (
	"math"
)

// CalculateSharpeRatio calculates the annualized Sharpe Ratio
//
// Sharpe Ratio Formula:
//
//	Sharpe = (Portfolio Return - Risk-free Rate) / Standard Deviation of Returns
//	Annualized: Sharpe x sqrt(252) for daily returns
//
// Args:
//
//	returns: Array of periodic returns (daily, monthly, etc.)
//	riskFreeRate: Risk-free rate (annual, as decimal, e.g., 0.02 for 2%)
//	periodsPerYear: Number of periods per year (252 for daily, 12 for monthly)
//
// Returns:
//
//	Sharpe ratio, or 0 if volatility is zero or data is insufficient
func CalculateSharpeRatio(returns []float64, riskFreeRate float64, periodsPerYear int) float64 {
	if len(returns) < 2 {
		return 0
	}

	meanReturn := Mean(returns)
	stdDev := StdDev(returns)
	if stdDev == 0 {
		return 0
	}

	periodicRiskFree := riskFreeRate / float64(periodsPerYear)
	sharpe := (meanReturn - periodicRiskFree) / stdDev

	return sharpe * math.Sqrt(float64(periodsPerYear))
}

// CalculateSortinoRatio calculates the annualized Sortino Ratio.
// The denominator is the annualized standard deviation of the negative
// returns only. When no negative returns exist the full annualized
// volatility is used instead, so the ratio stays defined.
func CalculateSortinoRatio(returns []float64, riskFreeRate float64, periodsPerYear int) float64 {
	if len(returns) < 2 {
		return 0
	}

	annualFactor := math.Sqrt(float64(periodsPerYear))
	annualReturn := Mean(returns) * float64(periodsPerYear)

	var negative []float64
	for _, r := range returns {
		if r < 0 {
			negative = append(negative, r)
		}
	}

	downside := StdDev(returns) * annualFactor
	if len(negative) > 0 {
		downside = StdDev(negative) * annualFactor
	}
	if downside == 0 {
		return 0
	}

	return (annualReturn - riskFreeRate) / downside
}

// CalculateMaxDrawdown calculates the maximum peak-to-trough decline of a
// cumulative value series. Returns a positive fraction (0.25 = 25% loss
// from peak), or 0 for series shorter than two points.
func CalculateMaxDrawdown(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	maxDrawdown := 0.0
	peak := values[0]

	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			drawdown := (peak - v) / peak
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	return maxDrawdown
}
