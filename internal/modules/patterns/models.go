package patterns

import (
	"fmt"

	"github.com/tradeinsight/analytics/internal/domain"
)

// AnalyzeRequest is the typed pattern-analysis request body. Optional
// fields get defaults applied before validation.
type AnalyzeRequest struct {
	Symbol       string   `json:"symbol"`
	Timeframe    string   `json:"timeframe"`
	LookbackDays int      `json:"lookback_days"`
	PatternTypes []string `json:"pattern_types"`
}

// ApplyDefaults fills unset optional fields.
func (r *AnalyzeRequest) ApplyDefaults() {
	if r.Timeframe == "" {
		r.Timeframe = "4h"
	}
	if r.LookbackDays == 0 {
		r.LookbackDays = 30
	}
	if len(r.PatternTypes) == 0 {
		r.PatternTypes = []string{"support_resistance", "trends", "candlestick"}
	}
}

// Validate checks the request before it enters the core.
func (r *AnalyzeRequest) Validate() error {
	if r.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if r.LookbackDays < 0 {
		return fmt.Errorf("lookback_days must not be negative")
	}
	for _, t := range r.PatternTypes {
		switch domain.PatternType(t) {
		case domain.PatternSupportResistance, domain.PatternTrends,
			domain.PatternCandlestick, domain.PatternTechnical:
		default:
			return fmt.Errorf("unknown pattern type: %s", t)
		}
	}
	return nil
}

// Types converts the requested type strings to domain pattern types.
func (r *AnalyzeRequest) Types() []domain.PatternType {
	types := make([]domain.PatternType, 0, len(r.PatternTypes))
	for _, t := range r.PatternTypes {
		types = append(types, domain.PatternType(t))
	}
	return types
}

// PatternResponse is a single detected pattern with its reliability score.
type PatternResponse struct {
	Type             domain.PatternType     `json:"type"`
	Name             string                 `json:"name"`
	StartTime        string                 `json:"start_time"`
	EndTime          string                 `json:"end_time"`
	Confidence       float64                `json:"confidence"`
	ReliabilityScore float64                `json:"reliability_score"`
	Signal           domain.Signal          `json:"signal"`
	TargetPrice      *float64               `json:"target_price"`
	StopLoss         *float64               `json:"stop_loss"`
	Description      string                 `json:"description"`
	Parameters       map[string]interface{} `json:"parameters"`
}

// Summary aggregates signal counts across the detected patterns.
type Summary struct {
	BullishPatterns int           `json:"bullish_patterns"`
	BearishPatterns int           `json:"bearish_patterns"`
	NeutralPatterns int           `json:"neutral_patterns"`
	AvgConfidence   float64       `json:"avg_confidence"`
	StrongestSignal domain.Signal `json:"strongest_signal"`
}

// AnalyzeResponse is the full pattern-analysis response payload.
type AnalyzeResponse struct {
	AnalysisID       string            `json:"analysis_id"`
	Symbol           string            `json:"symbol"`
	Timeframe        string            `json:"timeframe"`
	AnalysisPeriod   string            `json:"analysis_period"`
	PatternsDetected int               `json:"patterns_detected"`
	Patterns         []PatternResponse `json:"patterns"`
	Summary          Summary           `json:"summary"`
	Timestamp        string            `json:"timestamp"`
}
