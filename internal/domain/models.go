package domain

import "time"

// Signal represents the directional bias of a detected pattern.
type Signal string

const (
	SignalBullish Signal = "bullish"
	SignalBearish Signal = "bearish"
	SignalNeutral Signal = "neutral"
)

// PatternType categorizes detected patterns by detector family.
type PatternType string

const (
	PatternSupportResistance PatternType = "support_resistance"
	PatternTrends            PatternType = "trends"
	PatternCandlestick       PatternType = "candlestick"
	PatternTechnical         PatternType = "technical"
)

// Candle represents a single OHLCV price bar.
// Invariant: Low <= min(Open, Close) <= max(Open, Close) <= High, Volume >= 0.
// Candles are produced by the market-data layer and never mutated here.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// Body returns the absolute size of the candle body.
func (c Candle) Body() float64 {
	body := c.Close - c.Open
	if body < 0 {
		return -body
	}
	return body
}

// Range returns the full high-low range of the candle.
func (c Candle) Range() float64 {
	return c.High - c.Low
}

// UpperShadow returns the distance from the body top to the high.
func (c Candle) UpperShadow() float64 {
	top := c.Open
	if c.Close > top {
		top = c.Close
	}
	return c.High - top
}

// LowerShadow returns the distance from the low to the body bottom.
func (c Candle) LowerShadow() float64 {
	bottom := c.Open
	if c.Close < bottom {
		bottom = c.Close
	}
	return bottom - c.Low
}

// IsBullish reports whether the candle closed above its open.
func (c Candle) IsBullish() bool { return c.Close > c.Open }

// IsBearish reports whether the candle closed below its open.
func (c Candle) IsBearish() bool { return c.Close < c.Open }

// Series is an ordered (time-ascending, unique timestamps) candle sequence.
// Constructed per analysis request and discarded afterwards.
type Series struct {
	Symbol  string   `json:"symbol"`
	Candles []Candle `json:"candles"`
}

// Len returns the number of candles in the series.
func (s Series) Len() int { return len(s.Candles) }

// IsEmpty reports whether the series holds no data. An empty series is a
// valid "no data" case, not an error.
func (s Series) IsEmpty() bool { return len(s.Candles) == 0 }

// Closes extracts the close prices of the series.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = c.Close
	}
	return out
}

// Highs extracts the high prices of the series.
func (s Series) Highs() []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = c.High
	}
	return out
}

// Lows extracts the low prices of the series.
func (s Series) Lows() []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = c.Low
	}
	return out
}

// Pattern represents a detected chart, trend or candlestick formation.
// Created by a detector and immutable afterwards; reliability scores live
// in a separate map keyed by pattern ID.
type Pattern struct {
	ID          string                 `json:"id"`
	Type        PatternType            `json:"type"`
	Name        string                 `json:"name"`
	StartTime   time.Time              `json:"start_time"`
	EndTime     time.Time              `json:"end_time"`
	Confidence  float64                `json:"confidence"` // 0..1
	Signal      Signal                 `json:"signal"`
	TargetPrice *float64               `json:"target_price,omitempty"`
	StopLoss    *float64               `json:"stop_loss,omitempty"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// PriceLevel is a clustered support or resistance level.
// Strength = cluster size x intra-cluster standard deviation.
type PriceLevel struct {
	Level    float64 `json:"level"`
	Strength float64 `json:"strength"`
	Touches  int     `json:"touches"`
}

// Position is a portfolio position owned by the caller, read-only here.
// PositionSize is signed: long > 0, short < 0.
type Position struct {
	Symbol       string  `json:"symbol"`
	PositionSize float64 `json:"position"`
	EntryPrice   float64 `json:"entry_price"`
}

// Notional returns the absolute position value at entry price.
func (p Position) Notional() float64 {
	size := p.PositionSize
	if size < 0 {
		size = -size
	}
	return size * p.EntryPrice
}

// IsShort reports whether the position is short.
func (p Position) IsShort() bool { return p.PositionSize < 0 }

// PositionRisk holds per-position exposure and risk metrics.
type PositionRisk struct {
	Symbol           string  `json:"symbol"`
	PositionSize     float64 `json:"position"`
	EntryPrice       float64 `json:"entry_price"`
	CurrentPrice     float64 `json:"current_price"`
	MarketValue      float64 `json:"market_value"`
	UnrealizedPnL    float64 `json:"unrealized_pnl"`
	PositionVaR      float64 `json:"position_var"`
	RiskContribution float64 `json:"risk_contribution"`
	CorrelationRisk  float64 `json:"correlation_risk"`
}

// RiskReport is the full portfolio risk analysis result.
// A failed calculation yields the all-zero report, never an error.
type RiskReport struct {
	NetExposure       float64        `json:"net_exposure"`
	GrossExposure     float64        `json:"gross_exposure"`
	Leverage          float64        `json:"leverage"`
	VaR               float64        `json:"var"`
	ExpectedShortfall float64        `json:"expected_shortfall"`
	MaxDrawdown       float64        `json:"max_drawdown"`
	SharpeRatio       float64        `json:"sharpe_ratio"`
	SortinoRatio      float64        `json:"sortino_ratio"`
	CalmarRatio       float64        `json:"calmar_ratio"`
	VolatilityAnnual  float64        `json:"volatility_annual"`
	Positions         []PositionRisk `json:"positions"`
	Recommendations   []string       `json:"recommendations"`
}

// EmptyRiskReport returns the zeroed report used for empty portfolios and
// total calculation failure.
func EmptyRiskReport() RiskReport {
	return RiskReport{
		Positions:       []PositionRisk{},
		Recommendations: []string{},
	}
}

// AffectedPosition describes a position's exposure under a stress scenario.
type AffectedPosition struct {
	Symbol  string                 `json:"symbol"`
	Details map[string]interface{} `json:"details"`
}

// ScenarioResult is the outcome of a single stress scenario.
// Produced fresh per scenario-analysis call; not persisted.
type ScenarioResult struct {
	Probability       float64            `json:"probability"`
	ExpectedLoss      float64            `json:"expected_loss"`
	WorstCaseLoss     float64            `json:"worst_case_loss"`
	RecoveryTimeDays  int                `json:"recovery_time_days"`
	AffectedPositions []AffectedPosition `json:"affected_positions"`
}

// EmptyScenarioResult returns the zeroed scenario result.
func EmptyScenarioResult() ScenarioResult {
	return ScenarioResult{AffectedPositions: []AffectedPosition{}}
}
