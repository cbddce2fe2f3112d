package patterns

import (
	"fmt"
	"math"
	"sort"

	"github.com/tradeinsight/analytics/internal/domain"
	"github.com/tradeinsight/analytics/pkg/formulas"
)

// findPeaks returns indices of local maxima whose topographic prominence
// is at least minProminence. Flat or noisy runs that never clear the
// prominence bar are rejected.
func findPeaks(data []float64, minProminence float64) []int {
	var peaks []int
	for i := 1; i < len(data)-1; i++ {
		if data[i] > data[i-1] && data[i] > data[i+1] {
			if prominence(data, i) >= minProminence {
				peaks = append(peaks, i)
			}
		}
	}
	return peaks
}

// findValleys returns indices of local minima by negating the series.
func findValleys(data []float64, minProminence float64) []int {
	negated := make([]float64, len(data))
	for i, v := range data {
		negated[i] = -v
	}
	return findPeaks(negated, minProminence)
}

// prominence measures how far a peak rises above its surroundings: the
// peak height minus the higher of the two lowest points reachable before
// meeting taller terrain on each side.
func prominence(data []float64, peak int) float64 {
	height := data[peak]

	leftMin := height
	for i := peak - 1; i >= 0; i-- {
		if data[i] > height {
			break
		}
		if data[i] < leftMin {
			leftMin = data[i]
		}
	}

	rightMin := height
	for i := peak + 1; i < len(data); i++ {
		if data[i] > height {
			break
		}
		if data[i] < rightMin {
			rightMin = data[i]
		}
	}

	base := leftMin
	if rightMin > base {
		base = rightMin
	}
	return height - base
}

// populationStdDev is the uncorrected (n-divisor) standard deviation,
// used for cluster strength so tight clusters score near zero spread.
func populationStdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	mean := formulas.Mean(data)
	var sum float64
	for _, v := range data {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(data)))
}

// clusterLevels groups price values into density clusters. Values are
// neighbors when closer than eps = epsFraction x mean(values); chains of
// neighbors form one cluster (density clustering with minimum cluster
// size 2). Singleton/noise points are discarded.
func clusterLevels(values []float64, epsFraction float64) []domain.PriceLevel {
	if len(values) < 2 {
		return nil
	}

	eps := epsFraction * formulas.Mean(values)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var levels []domain.PriceLevel
	clusterStart := 0
	flush := func(end int) {
		cluster := sorted[clusterStart:end]
		if len(cluster) >= 2 {
			levels = append(levels, domain.PriceLevel{
				Level:    formulas.Mean(cluster),
				Strength: float64(len(cluster)) * populationStdDev(cluster),
				Touches:  len(cluster),
			})
		}
		clusterStart = end
	}

	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[i-1] > eps {
			flush(i)
		}
	}
	flush(len(sorted))

	return levels
}

// detectSupportResistance finds clustered support and resistance levels
// from significant highs and lows.
func (s *Service) detectSupportResistance(series domain.Series) []domain.Pattern {
	var patterns []domain.Pattern

	highs := series.Highs()
	lows := series.Lows()
	lastTime := series.Candles[series.Len()-1].Timestamp

	highIdx := findPeaks(highs, s.cfg.ProminenceFraction*formulas.Mean(highs))
	lowIdx := findValleys(lows, s.cfg.ProminenceFraction*formulas.Mean(lows))

	if len(highIdx) > 2 {
		values := make([]float64, len(highIdx))
		for i, idx := range highIdx {
			values[i] = highs[idx]
		}

		startIdx := highIdx[0] - 10
		if startIdx < 0 {
			startIdx = 0
		}

		for _, lvl := range clusterLevels(values, s.cfg.ClusterTolerance) {
			level := lvl.Level
			stopLoss := level * 1.005 // 0.5% above resistance
			patterns = append(patterns, domain.Pattern{
				ID:          fmt.Sprintf("resistance_%d", len(patterns)),
				Type:        domain.PatternSupportResistance,
				Name:        "Resistance Level",
				StartTime:   series.Candles[startIdx].Timestamp,
				EndTime:     lastTime,
				Confidence:  math.Min(0.9, lvl.Strength/10),
				Signal:      domain.SignalBearish,
				TargetPrice: &level,
				StopLoss:    &stopLoss,
				Description: fmt.Sprintf("Resistance at %.5f with %d touches", level, lvl.Touches),
				Parameters: map[string]interface{}{
					"level":    lvl.Level,
					"strength": lvl.Strength,
					"touches":  lvl.Touches,
					"type":     "resistance",
				},
			})
		}
	}

	if len(lowIdx) > 2 {
		values := make([]float64, len(lowIdx))
		for i, idx := range lowIdx {
			values[i] = lows[idx]
		}

		startIdx := lowIdx[0] - 10
		if startIdx < 0 {
			startIdx = 0
		}

		for _, lvl := range clusterLevels(values, s.cfg.ClusterTolerance) {
			level := lvl.Level
			stopLoss := level * 0.995 // 0.5% below support
			patterns = append(patterns, domain.Pattern{
				ID:          fmt.Sprintf("support_%d", len(patterns)),
				Type:        domain.PatternSupportResistance,
				Name:        "Support Level",
				StartTime:   series.Candles[startIdx].Timestamp,
				EndTime:     lastTime,
				Confidence:  math.Min(0.9, lvl.Strength/10),
				Signal:      domain.SignalBullish,
				TargetPrice: &level,
				StopLoss:    &stopLoss,
				Description: fmt.Sprintf("Support at %.5f with %d touches", level, lvl.Touches),
				Parameters: map[string]interface{}{
					"level":    lvl.Level,
					"strength": lvl.Strength,
					"touches":  lvl.Touches,
					"type":     "support",
				},
			})
		}
	}

	return patterns
}
