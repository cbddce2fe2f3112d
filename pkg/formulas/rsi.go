package formulas

import (
	"github.com/markcheno/go-talib"
)

// RSISeries calculates the Relative Strength Index for every point of a
// close-price series.
//
// RSI Formula:
//
//	RSI = 100 - (100 / (1 + RS))
//	where RS = Average Gain / Average Loss over N periods
//
// The returned slice has the same length as the input; entries before the
// warmup period are zero. Returns nil if there is not enough data.
func RSISeries(closes []float64, length int) []float64 {
	if len(closes) < length+1 {
		return nil
	}

	return talib.Rsi(closes, length)
}

// CalculateRSI calculates the current RSI value (0-100) for a close-price
// series, or nil if there is insufficient data.
func CalculateRSI(closes []float64, length int) *float64 {
	rsi := RSISeries(closes, length)
	if len(rsi) == 0 {
		return nil
	}

	last := rsi[len(rsi)-1]
	if last != last { // NaN
		return nil
	}
	return &last
}
