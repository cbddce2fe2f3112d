package risk

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Handler handles portfolio-risk HTTP requests
type Handler struct {
	calculator *Calculator
	log        zerolog.Logger
}

// NewHandler creates a new risk handler
func NewHandler(calculator *Calculator, log zerolog.Logger) *Handler {
	return &Handler{
		calculator: calculator,
		log:        log.With().Str("handler", "risk").Logger(),
	}
}

// HandleCalculate computes the full risk report for a portfolio
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := CalculateResponse{
		AnalysisID:      uuid.NewString(),
		Timeframe:       req.Timeframe,
		ConfidenceLevel: req.ConfidenceLevel,
		RiskReport:      h.calculator.CalculateRisk(req.Portfolio, req.Timeframe, req.ConfidenceLevel),
		VaRByMethod:     h.calculator.VaRByMethod(req.Portfolio, req.Timeframe, req.ConfidenceLevel),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
	if *req.ScenarioAnalysis {
		resp.ScenarioAnalysis = h.calculator.RunScenarios(req.Portfolio, nil)
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// HandleScenarios runs the named stress scenarios against a portfolio
func (h *Handler) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	var req ScenariosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, ScenariosResponse{
		AnalysisID: uuid.NewString(),
		Scenarios:  h.calculator.RunScenarios(req.Portfolio, req.Scenarios),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
