package patterns

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tradeinsight/analytics/internal/domain"
	"github.com/tradeinsight/analytics/pkg/formulas"
)

// trendStats holds the ordinary least-squares fit of a price window
// against a 0..n-1 time index.
type trendStats struct {
	Slope     float64
	Intercept float64
	RSquared  float64
	PValue    float64
	StdErr    float64
}

// fitTrend regresses the data against its index and reports slope,
// intercept, R-squared, two-sided slope p-value and slope standard error.
func fitTrend(data []float64) trendStats {
	n := len(data)
	if n < 3 {
		return trendStats{}
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	intercept, slope := stat.LinearRegression(xs, data, nil, false)
	r2 := stat.RSquared(xs, data, nil, intercept, slope)

	// Residual and x sums for the slope standard error
	var sse, sxx float64
	xMean := formulas.Mean(xs)
	for i, x := range xs {
		resid := data[i] - (intercept + slope*x)
		sse += resid * resid
		sxx += (x - xMean) * (x - xMean)
	}

	stats := trendStats{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
	}

	if sxx > 0 {
		stats.StdErr = math.Sqrt(sse / float64(n-2) / sxx)
	}

	if stats.StdErr > 0 {
		t := math.Abs(slope / stats.StdErr)
		tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
		stats.PValue = 2 * (1 - tDist.CDF(t))
	}

	return stats
}

// detectTrends finds short- and medium-term linear trends plus reversal
// divergence patterns.
func (s *Service) detectTrends(series domain.Series) []domain.Pattern {
	var patterns []domain.Pattern

	closes := series.Closes()
	lastTime := series.Candles[series.Len()-1].Timestamp

	emit := func(window int, idPrefix, namePrefix string) {
		if len(closes) < window {
			return
		}

		fit := fitTrend(closes[len(closes)-window:])
		if math.Abs(fit.Slope) <= s.cfg.MinSlope {
			return
		}

		direction := "Uptrend"
		signal := domain.SignalBullish
		if fit.Slope < 0 {
			direction = "Downtrend"
			signal = domain.SignalBearish
		}

		patterns = append(patterns, domain.Pattern{
			ID:          fmt.Sprintf("%s_%d", idPrefix, len(patterns)),
			Type:        domain.PatternTrends,
			Name:        fmt.Sprintf("%s %s", namePrefix, direction),
			StartTime:   series.Candles[series.Len()-window].Timestamp,
			EndTime:     lastTime,
			Confidence:  math.Min(0.9, fit.RSquared),
			Signal:      signal,
			Description: fmt.Sprintf("%s %s detected", namePrefix, direction),
			Parameters: map[string]interface{}{
				"slope":     fit.Slope,
				"r_squared": fit.RSquared,
				"p_value":   fit.PValue,
				"std_error": fit.StdErr,
				"period":    window,
			},
		})
	}

	emit(s.cfg.ShortWindow, "trend_short", "Short-term")
	emit(s.cfg.MediumWindow, "trend_medium", "Medium-term")

	patterns = append(patterns, s.detectTrendReversals(series)...)

	return patterns
}

// localMinIndices returns interior indices that are strict local minima
// within +-order neighbors (window clamped at the series edges).
func localMinIndices(data []float64, order int) []int {
	var mins []int
	for i := 1; i < len(data)-1; i++ {
		lo := i - order
		if lo < 0 {
			lo = 0
		}
		hi := i + order
		if hi > len(data)-1 {
			hi = len(data) - 1
		}

		isMin := true
		for j := lo; j <= hi; j++ {
			if j == i {
				continue
			}
			if !(data[i] < data[j]) {
				isMin = false
				break
			}
		}
		if isMin {
			mins = append(mins, i)
		}
	}
	return mins
}

// detectTrendReversals looks for bullish RSI divergence over the trailing
// window: price making a lower low while RSI makes a higher low.
func (s *Service) detectTrendReversals(series domain.Series) []domain.Pattern {
	var patterns []domain.Pattern

	closes := series.Closes()
	rsi := formulas.RSISeries(closes, s.cfg.RSIPeriod)
	if rsi == nil {
		return patterns
	}

	window := s.cfg.DivergenceWindow
	if len(closes) < window {
		window = len(closes)
	}

	recentClose := closes[len(closes)-window:]
	recentRSI := rsi[len(rsi)-window:]
	recentCandles := series.Candles[series.Len()-window:]

	priceLows := localMinIndices(recentClose, s.cfg.ExtremaOrder)
	rsiLows := localMinIndices(recentRSI, s.cfg.ExtremaOrder)

	if len(priceLows) >= 2 && len(rsiLows) >= 2 {
		last := priceLows[len(priceLows)-1]
		prev := priceLows[len(priceLows)-2]

		if recentClose[last] < recentClose[prev] && recentRSI[last] > recentRSI[prev] {
			patterns = append(patterns, domain.Pattern{
				ID:          fmt.Sprintf("bullish_divergence_%d", len(patterns)),
				Type:        domain.PatternTrends,
				Name:        "Bullish RSI Divergence",
				StartTime:   recentCandles[prev].Timestamp,
				EndTime:     recentCandles[last].Timestamp,
				Confidence:  0.7,
				Signal:      domain.SignalBullish,
				Description: "Price makes lower low while RSI makes higher low",
				Parameters: map[string]interface{}{
					"type":      "rsi_divergence",
					"direction": "bullish",
				},
			})
		}
	}

	return patterns
}
