package patterns

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tradeinsight/analytics/internal/domain"
	"github.com/tradeinsight/analytics/internal/marketdata"
)

// Handler handles pattern-analysis HTTP requests
type Handler struct {
	service *Service
	scorer  *ReliabilityScorer
	data    *marketdata.Service
	log     zerolog.Logger
}

// NewHandler creates a new pattern-analysis handler
func NewHandler(service *Service, scorer *ReliabilityScorer, data *marketdata.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		scorer:  scorer,
		data:    data,
		log:     log.With().Str("handler", "patterns").Logger(),
	}
}

// HandleAnalyze detects patterns for a symbol over a lookback window
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	series := h.data.GetSeries(r.Context(), req.Symbol, req.Timeframe, req.LookbackDays)

	detected := h.service.Detect(series, req.Types())
	reliability := h.scorer.ScoreAll(series, detected)

	resp := AnalyzeResponse{
		AnalysisID:       uuid.NewString(),
		Symbol:           req.Symbol,
		Timeframe:        req.Timeframe,
		AnalysisPeriod:   fmt.Sprintf("%d days", req.LookbackDays),
		PatternsDetected: len(detected),
		Patterns:         make([]PatternResponse, 0, len(detected)),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}

	var confidenceSum float64
	for _, p := range detected {
		confidenceSum += p.Confidence

		switch p.Signal {
		case domain.SignalBullish:
			resp.Summary.BullishPatterns++
		case domain.SignalBearish:
			resp.Summary.BearishPatterns++
		default:
			resp.Summary.NeutralPatterns++
		}

		resp.Patterns = append(resp.Patterns, PatternResponse{
			Type:             p.Type,
			Name:             p.Name,
			StartTime:        p.StartTime.UTC().Format(time.RFC3339),
			EndTime:          p.EndTime.UTC().Format(time.RFC3339),
			Confidence:       p.Confidence,
			ReliabilityScore: reliability[p.ID],
			Signal:           p.Signal,
			TargetPrice:      p.TargetPrice,
			StopLoss:         p.StopLoss,
			Description:      p.Description,
			Parameters:       p.Parameters,
		})
	}

	resp.Summary.StrongestSignal = domain.SignalNeutral
	if len(detected) > 0 {
		resp.Summary.AvgConfidence = confidenceSum / float64(len(detected))
		// Patterns are sorted by confidence, so the first holds the
		// strongest signal.
		resp.Summary.StrongestSignal = detected[0].Signal
	}

	h.writeJSON(w, http.StatusOK, resp)
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
