package risk

import (
	"fmt"

	"github.com/tradeinsight/analytics/internal/domain"
)

// CalculateRequest is the typed portfolio-risk request body.
type CalculateRequest struct {
	Portfolio        []domain.Position `json:"portfolio"`
	Timeframe        string            `json:"timeframe"`
	ConfidenceLevel  float64           `json:"confidence_level"`
	ScenarioAnalysis *bool             `json:"scenario_analysis"`
}

// ApplyDefaults fills unset optional fields.
func (r *CalculateRequest) ApplyDefaults() {
	if r.Timeframe == "" {
		r.Timeframe = "1d"
	}
	if r.ConfidenceLevel == 0 {
		r.ConfidenceLevel = 0.95
	}
	if r.ScenarioAnalysis == nil {
		enabled := true
		r.ScenarioAnalysis = &enabled
	}
}

// Validate checks the request before it enters the core. An empty
// portfolio is valid and yields the all-zero report.
func (r *CalculateRequest) Validate() error {
	if r.ConfidenceLevel <= 0 || r.ConfidenceLevel >= 1 {
		return fmt.Errorf("confidence_level must be in (0, 1)")
	}
	for i, pos := range r.Portfolio {
		if pos.Symbol == "" {
			return fmt.Errorf("portfolio[%d]: symbol is required", i)
		}
		if pos.EntryPrice <= 0 {
			return fmt.Errorf("portfolio[%d]: entry_price must be positive", i)
		}
	}
	return nil
}

// ScenariosRequest is the typed scenario-analysis request body.
type ScenariosRequest struct {
	Portfolio []domain.Position `json:"portfolio"`
	Scenarios []string          `json:"scenarios"`
}

// ApplyDefaults fills unset optional fields.
func (r *ScenariosRequest) ApplyDefaults() {
	if len(r.Scenarios) == 0 {
		r.Scenarios = AllScenarios()
	}
}

// Validate checks the request before it enters the core.
func (r *ScenariosRequest) Validate() error {
	for i, pos := range r.Portfolio {
		if pos.Symbol == "" {
			return fmt.Errorf("portfolio[%d]: symbol is required", i)
		}
		if pos.EntryPrice <= 0 {
			return fmt.Errorf("portfolio[%d]: entry_price must be positive", i)
		}
	}
	return nil
}

// CalculateResponse is the full portfolio-risk response payload.
type CalculateResponse struct {
	AnalysisID       string                           `json:"analysis_id"`
	Timeframe        string                           `json:"timeframe"`
	ConfidenceLevel  float64                          `json:"confidence_level"`
	RiskReport       domain.RiskReport                `json:"risk_report"`
	VaRByMethod      map[string]float64               `json:"var_by_method"`
	ScenarioAnalysis map[string]domain.ScenarioResult `json:"scenario_analysis,omitempty"`
	Timestamp        string                           `json:"timestamp"`
}

// ScenariosResponse is the scenario-analysis response payload.
type ScenariosResponse struct {
	AnalysisID string                           `json:"analysis_id"`
	Scenarios  map[string]domain.ScenarioResult `json:"scenarios"`
	Timestamp  string                           `json:"timestamp"`
}
