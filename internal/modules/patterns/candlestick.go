package patterns

import (
	"fmt"

	"github.com/tradeinsight/analytics/internal/domain"
)

// Matcher is a pure candlestick classifier. Each matcher evaluates
// candles (or adjacent pairs) independently; no shared state.
type Matcher func(series domain.Series) []domain.Pattern

type namedMatcher struct {
	name  string
	match Matcher
}

// candlestickMatchers is the matcher registry in evaluation order.
// Morning/evening star and three soldiers/crows are registered but
// intentionally inert: they are extension points with a stable signature,
// not silently dropped names.
func candlestickMatchers() []namedMatcher {
	return []namedMatcher{
		{"doji", matchDoji},
		{"hammer", matchHammer},
		{"shooting_star", matchShootingStar},
		{"engulfing_bullish", matchEngulfingBullish},
		{"engulfing_bearish", matchEngulfingBearish},
		{"morning_star", matchNone},
		{"evening_star", matchNone},
		{"three_white_soldiers", matchNone},
		{"three_black_crows", matchNone},
	}
}

// matchNone is the shared no-op matcher for registered-but-inert patterns.
func matchNone(domain.Series) []domain.Pattern { return nil }

// matchDoji flags candles whose body is under 10% of their range.
func matchDoji(series domain.Series) []domain.Pattern {
	var patterns []domain.Pattern

	for i, c := range series.Candles {
		rng := c.Range()
		if rng <= 0 {
			continue
		}
		bodyRatio := c.Body() / rng
		if bodyRatio < 0.10 {
			patterns = append(patterns, domain.Pattern{
				ID:          fmt.Sprintf("doji_%d", i),
				Type:        domain.PatternCandlestick,
				Name:        "Doji",
				StartTime:   c.Timestamp,
				EndTime:     c.Timestamp,
				Confidence:  0.6,
				Signal:      domain.SignalNeutral,
				Description: "Indecision candle - potential reversal",
				Parameters: map[string]interface{}{
					"body_ratio": bodyRatio,
					"type":       "doji",
				},
			})
		}
	}

	return patterns
}

// matchHammer flags candles with a small body, a lower shadow longer than
// twice the body and dominating the range, and a short upper shadow.
func matchHammer(series domain.Series) []domain.Pattern {
	var patterns []domain.Pattern

	for i, c := range series.Candles {
		body := c.Body()
		lower := c.LowerShadow()
		upper := c.UpperShadow()

		if body > 0 && lower > 2*body && upper < body && lower > 0.6*c.Range() {
			patterns = append(patterns, domain.Pattern{
				ID:          fmt.Sprintf("hammer_%d", i),
				Type:        domain.PatternCandlestick,
				Name:        "Hammer",
				StartTime:   c.Timestamp,
				EndTime:     c.Timestamp,
				Confidence:  0.75,
				Signal:      domain.SignalBullish,
				Description: "Potential bullish reversal pattern",
				Parameters: map[string]interface{}{
					"lower_shadow_ratio": lower / body,
					"type":               "hammer",
				},
			})
		}
	}

	return patterns
}

// matchShootingStar is the upper-shadow mirror of the hammer.
func matchShootingStar(series domain.Series) []domain.Pattern {
	var patterns []domain.Pattern

	for i, c := range series.Candles {
		body := c.Body()
		lower := c.LowerShadow()
		upper := c.UpperShadow()

		if body > 0 && upper > 2*body && lower < body && upper > 0.6*c.Range() {
			patterns = append(patterns, domain.Pattern{
				ID:          fmt.Sprintf("shooting_star_%d", i),
				Type:        domain.PatternCandlestick,
				Name:        "Shooting Star",
				StartTime:   c.Timestamp,
				EndTime:     c.Timestamp,
				Confidence:  0.75,
				Signal:      domain.SignalBearish,
				Description: "Potential bearish reversal pattern",
				Parameters: map[string]interface{}{
					"upper_shadow_ratio": upper / body,
					"type":               "shooting_star",
				},
			})
		}
	}

	return patterns
}

// matchEngulfingBullish flags a bullish candle whose body strictly
// contains the previous bearish candle's body.
func matchEngulfingBullish(series domain.Series) []domain.Pattern {
	var patterns []domain.Pattern

	for i := 1; i < series.Len(); i++ {
		prev := series.Candles[i-1]
		curr := series.Candles[i]

		if prev.IsBearish() && curr.IsBullish() &&
			curr.Open < prev.Close && curr.Close > prev.Open {
			patterns = append(patterns, domain.Pattern{
				ID:          fmt.Sprintf("bullish_engulfing_%d", i),
				Type:        domain.PatternCandlestick,
				Name:        "Bullish Engulfing",
				StartTime:   prev.Timestamp,
				EndTime:     curr.Timestamp,
				Confidence:  0.8,
				Signal:      domain.SignalBullish,
				Description: "Strong bullish reversal pattern",
				Parameters: map[string]interface{}{
					"engulfing_ratio": (curr.Close - curr.Open) / (prev.Open - prev.Close),
					"type":            "bullish_engulfing",
				},
			})
		}
	}

	return patterns
}

// matchEngulfingBearish is the mirror of matchEngulfingBullish.
func matchEngulfingBearish(series domain.Series) []domain.Pattern {
	var patterns []domain.Pattern

	for i := 1; i < series.Len(); i++ {
		prev := series.Candles[i-1]
		curr := series.Candles[i]

		if prev.IsBullish() && curr.IsBearish() &&
			curr.Open > prev.Close && curr.Close < prev.Open {
			patterns = append(patterns, domain.Pattern{
				ID:          fmt.Sprintf("bearish_engulfing_%d", i),
				Type:        domain.PatternCandlestick,
				Name:        "Bearish Engulfing",
				StartTime:   prev.Timestamp,
				EndTime:     curr.Timestamp,
				Confidence:  0.8,
				Signal:      domain.SignalBearish,
				Description: "Strong bearish reversal pattern",
				Parameters: map[string]interface{}{
					"engulfing_ratio": (curr.Open - curr.Close) / (prev.Close - prev.Open),
					"type":            "bearish_engulfing",
				},
			})
		}
	}

	return patterns
}
