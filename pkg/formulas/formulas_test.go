package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, 0.0, Mean(nil))
}

func TestStdDev(t *testing.T) {
	assert.InDelta(t, 1.0, StdDev([]float64{1, 2, 3}), 1e-9)
	assert.Equal(t, 0.0, StdDev([]float64{1}))
}

func TestCalculateReturns(t *testing.T) {
	returns := CalculateReturns([]float64{100, 110, 99})
	assert.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)

	assert.Empty(t, CalculateReturns([]float64{100}))
}

func TestAnnualizedVolatility(t *testing.T) {
	returns := []float64{0.01, -0.01, 0.02, -0.02, 0.01}
	want := StdDev(returns) * math.Sqrt(252)
	assert.InDelta(t, want, AnnualizedVolatility(returns), 1e-9)
	assert.Equal(t, 0.0, AnnualizedVolatility(nil))
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.0, Correlation(x, x), 1e-9)

	y := []float64{4, 3, 2, 1}
	assert.InDelta(t, -1.0, Correlation(x, y), 1e-9)

	assert.Equal(t, 0.0, Correlation(x, []float64{1, 2}), "mismatched lengths")
}

func TestCalculateSharpeRatio(t *testing.T) {
	// Constant positive returns have zero volatility
	assert.Equal(t, 0.0, CalculateSharpeRatio([]float64{0.01, 0.01, 0.01}, 0.02, 252))

	returns := []float64{0.01, -0.005, 0.02, -0.01, 0.015}
	got := CalculateSharpeRatio(returns, 0.02, 252)
	want := (Mean(returns) - 0.02/252) / StdDev(returns) * math.Sqrt(252)
	assert.InDelta(t, want, got, 1e-9)
}

func TestCalculateSortinoRatio(t *testing.T) {
	returns := []float64{0.01, -0.005, 0.02, -0.01, 0.015}
	got := CalculateSortinoRatio(returns, 0.02, 252)
	downside := StdDev([]float64{-0.005, -0.01}) * math.Sqrt(252)
	want := (Mean(returns)*252 - 0.02) / downside
	assert.InDelta(t, want, got, 1e-9)

	// No negative returns: falls back to full volatility
	positive := []float64{0.01, 0.02, 0.015}
	fallback := (Mean(positive)*252 - 0.02) / (StdDev(positive) * math.Sqrt(252))
	assert.InDelta(t, fallback, CalculateSortinoRatio(positive, 0.02, 252), 1e-9)
}

func TestCalculateMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"single drawdown", []float64{1.0, 1.2, 0.9, 1.1}, 0.25},
		{"monotonic rise has none", []float64{1, 2, 3}, 0},
		{"too short", []float64{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateMaxDrawdown(tt.values), 1e-9)
		})
	}
}

func TestRSISeries(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i%4)
	}

	rsi := RSISeries(closes, 14)
	assert.Len(t, rsi, len(closes))

	assert.Nil(t, RSISeries(closes[:10], 14), "insufficient data returns nil")
}

func TestCalculateRSI(t *testing.T) {
	// Strictly rising closes push RSI to the ceiling
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	rsi := CalculateRSI(closes, 14)
	if assert.NotNil(t, rsi) {
		assert.InDelta(t, 100, *rsi, 1e-6)
	}

	assert.Nil(t, CalculateRSI(closes[:5], 14))
}
