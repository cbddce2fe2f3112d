package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradeinsight/analytics/internal/domain"
	"github.com/tradeinsight/analytics/pkg/logger"
)

func TestFindPeaks(t *testing.T) {
	tests := []struct {
		name          string
		data          []float64
		minProminence float64
		want          []int
	}{
		{
			name:          "two clear peaks",
			data:          []float64{1, 2, 1, 2, 1},
			minProminence: 0.5,
			want:          []int{1, 3},
		},
		{
			name:          "prominence bar rejects shallow peaks",
			data:          []float64{1, 2, 1, 2, 1},
			minProminence: 2,
			want:          nil,
		},
		{
			name:          "monotonic series has no peaks",
			data:          []float64{1, 2, 3, 4, 5},
			minProminence: 0,
			want:          nil,
		},
		{
			name:          "endpoints are never peaks",
			data:          []float64{5, 1, 5},
			minProminence: 0,
			want:          nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findPeaks(tt.data, tt.minProminence))
		})
	}
}

func TestFindValleys(t *testing.T) {
	data := []float64{2, 1, 2, 1, 2}
	assert.Equal(t, []int{1, 3}, findValleys(data, 0.5))
}

func TestProminence(t *testing.T) {
	// Peak at index 3 rises 4 above the higher of its surrounding minima
	data := []float64{0, 3, 1, 5, 2, 6, 0}
	assert.Equal(t, 4.0, prominence(data, 3))
}

func TestClusterLevels(t *testing.T) {
	tests := []struct {
		name        string
		values      []float64
		epsFraction float64
		wantLevels  int
	}{
		{
			name:        "close values cluster, singleton dropped",
			values:      []float64{100.0, 100.05, 110.0},
			epsFraction: 0.001,
			wantLevels:  1,
		},
		{
			name:        "all singletons yields nothing",
			values:      []float64{100, 120, 140},
			epsFraction: 0.001,
			wantLevels:  0,
		},
		{
			name:        "two separate clusters",
			values:      []float64{100.0, 100.05, 120.0, 120.05},
			epsFraction: 0.001,
			wantLevels:  2,
		},
		{
			name:        "too few values",
			values:      []float64{100},
			epsFraction: 0.001,
			wantLevels:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels := clusterLevels(tt.values, tt.epsFraction)
			assert.Len(t, levels, tt.wantLevels)
			for _, lvl := range levels {
				assert.GreaterOrEqual(t, lvl.Touches, 2, "clusters must have at least two touches")
				assert.GreaterOrEqual(t, lvl.Strength, 0.0)
			}
		})
	}
}

func TestClusterLevelsValues(t *testing.T) {
	levels := clusterLevels([]float64{100.0, 100.05, 110.0}, 0.001)
	assert.Len(t, levels, 1)
	assert.InDelta(t, 100.025, levels[0].Level, 1e-9)
	assert.Equal(t, 2, levels[0].Touches)
	// Strength = cluster size x population std dev
	assert.InDelta(t, 2*0.025, levels[0].Strength, 1e-9)
}

// zigzagSeries oscillates between a resistance band and a support band so
// both sides produce enough significant extrema to cluster.
func zigzagSeries(cycles int) domain.Series {
	var candles []domain.Candle
	i := 0
	for c := 0; c < cycles; c++ {
		wobble := float64(c%3) * 0.0002
		candles = append(candles,
			candleAt(i, 1.0800, 1.0820, 1.0780, 1.0810),
			candleAt(i+1, 1.0900, 1.1048+wobble, 1.0890, 1.1040),
			candleAt(i+2, 1.0900, 1.0920, 1.0880, 1.0890),
			candleAt(i+3, 1.0700, 1.0720, 1.0652-wobble, 1.0660),
		)
		i += 4
	}
	return domain.Series{Symbol: "EURUSD", Candles: candles}
}

func TestDetectSupportResistance(t *testing.T) {
	log := logger.New(logger.Config{Level: "error"})
	svc := NewService(log)

	patterns := svc.detectSupportResistance(zigzagSeries(8))
	assert.NotEmpty(t, patterns)

	var resistance, support int
	for _, p := range patterns {
		assert.Equal(t, domain.PatternSupportResistance, p.Type)
		assert.GreaterOrEqual(t, p.Confidence, 0.0)
		assert.LessOrEqual(t, p.Confidence, 0.9)
		assert.GreaterOrEqual(t, p.Parameters["touches"].(int), 2)
		assert.NotNil(t, p.TargetPrice)
		assert.NotNil(t, p.StopLoss)

		switch p.Signal {
		case domain.SignalBearish:
			resistance++
			assert.Greater(t, *p.StopLoss, *p.TargetPrice, "resistance stop sits above the level")
		case domain.SignalBullish:
			support++
			assert.Less(t, *p.StopLoss, *p.TargetPrice, "support stop sits below the level")
		default:
			t.Fatalf("unexpected signal %s", p.Signal)
		}
	}

	assert.Greater(t, resistance, 0, "expected at least one resistance level")
	assert.Greater(t, support, 0, "expected at least one support level")
}
