package patterns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tradeinsight/analytics/internal/domain"
)

func candleAt(i int, open, high, low, close float64) domain.Candle {
	return domain.Candle{
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    1000,
	}
}

func seriesOf(candles ...domain.Candle) domain.Series {
	return domain.Series{Symbol: "EURUSD", Candles: candles}
}

func TestMatchDoji(t *testing.T) {
	tests := []struct {
		name   string
		candle domain.Candle
		want   int
	}{
		{
			name:   "tiny body is a doji",
			candle: candleAt(0, 1.1000, 1.1050, 1.0950, 1.1001),
			want:   1,
		},
		{
			name:   "large body is not a doji",
			candle: candleAt(0, 1.1000, 1.1050, 1.0950, 1.1040),
			want:   0,
		},
		{
			name:   "zero range candle is skipped",
			candle: candleAt(0, 1.1000, 1.1000, 1.1000, 1.1000),
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchDoji(seriesOf(tt.candle))
			assert.Len(t, got, tt.want)
			if tt.want > 0 {
				assert.Equal(t, domain.SignalNeutral, got[0].Signal)
				assert.Equal(t, 0.6, got[0].Confidence)
				assert.Equal(t, "doji_0", got[0].ID)
			}
		})
	}
}

func TestMatchHammer(t *testing.T) {
	// Small body near the top, long lower shadow
	hammer := candleAt(0, 1.1000, 1.1015, 1.0950, 1.1010)

	got := matchHammer(seriesOf(hammer))
	assert.Len(t, got, 1)
	assert.Equal(t, domain.SignalBullish, got[0].Signal)
	assert.Equal(t, 0.75, got[0].Confidence)

	// Long upper shadow disqualifies it
	notHammer := candleAt(0, 1.1000, 1.1060, 1.0950, 1.1010)
	assert.Empty(t, matchHammer(seriesOf(notHammer)))
}

func TestMatchShootingStar(t *testing.T) {
	// Small body near the bottom, long upper shadow
	star := candleAt(0, 1.1010, 1.1060, 1.0995, 1.1000)

	got := matchShootingStar(seriesOf(star))
	assert.Len(t, got, 1)
	assert.Equal(t, domain.SignalBearish, got[0].Signal)

	// Hammer shape must not match
	hammer := candleAt(0, 1.1000, 1.1015, 1.0950, 1.1010)
	assert.Empty(t, matchShootingStar(seriesOf(hammer)))
}

func TestMatchEngulfing(t *testing.T) {
	red := candleAt(0, 1.1010, 1.1012, 1.0998, 1.1000)
	green := candleAt(1, 1.0995, 1.1022, 1.0993, 1.1020)

	bullish := matchEngulfingBullish(seriesOf(red, green))
	assert.Len(t, bullish, 1)
	assert.Equal(t, domain.SignalBullish, bullish[0].Signal)
	assert.Equal(t, 0.8, bullish[0].Confidence)
	assert.Empty(t, matchEngulfingBearish(seriesOf(red, green)))
}

func TestEngulfingExclusivity(t *testing.T) {
	// Swapping the candle roles must never yield both patterns on the
	// same pair.
	pairs := [][2]domain.Candle{
		{
			candleAt(0, 1.1010, 1.1012, 1.0998, 1.1000),
			candleAt(1, 1.0995, 1.1022, 1.0993, 1.1020),
		},
		{
			candleAt(0, 1.1000, 1.1021, 1.0999, 1.1020),
			candleAt(1, 1.1025, 1.1026, 1.0994, 1.0995),
		},
	}

	for _, pair := range pairs {
		forward := seriesOf(pair[0], pair[1])
		reversed := seriesOf(pair[1], pair[0])

		for _, s := range []domain.Series{forward, reversed} {
			bullish := matchEngulfingBullish(s)
			bearish := matchEngulfingBearish(s)
			assert.False(t, len(bullish) > 0 && len(bearish) > 0,
				"bullish and bearish engulfing matched the same pair")
		}
	}
}

func TestInertMatchersRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, m := range candlestickMatchers() {
		names[m.name] = true
		// Every registered matcher must be callable
		assert.NotPanics(t, func() { m.match(seriesOf()) })
	}

	for _, want := range []string{"morning_star", "evening_star", "three_white_soldiers", "three_black_crows"} {
		assert.True(t, names[want], "matcher %s missing from registry", want)
	}
}
