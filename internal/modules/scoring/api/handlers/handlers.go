// Package handlers provides HTTP handlers for scoring API.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristath/fundadvisor/internal/domain"
	"github.com/aristath/fundadvisor/internal/modules/scoring/scorers"
	"github.com/rs/zerolog"
)

// Handlers provides HTTP handlers for scoring module
type Handlers struct {
	scorer *scorers.FundScorer
	log    zerolog.Logger
}

// NewHandlers creates a new scoring handlers instance
func NewHandlers(log zerolog.Logger) *Handlers {
	return &Handlers{
		scorer: scorers.NewFundScorer(),
		log:    log.With().Str("module", "scoring_handlers").Logger(),
	}
}

// ScoreResponse represents the response from scoring
type ScoreResponse struct {
	Score *scorers.FundScore `json:"score,omitempty"`
	Error *string            `json:"error,omitempty"`
}

// HandleScoreFund handles POST /api/scoring/score
// Scores an ad-hoc fund record. Missing metrics take their usual defaults.
func (h *Handlers) HandleScoreFund(w http.ResponseWriter, r *http.Request) {
	var fund domain.FundRecord
	if err := json.NewDecoder(r.Body).Decode(&fund); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode score request")
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	score := h.scorer.Calculate(fund)
	h.writeJSON(w, ScoreResponse{Score: &score})
}

// HandleGetCurrentWeights handles GET /api/scoring/weights/current
func (h *Handlers) HandleGetCurrentWeights(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"data": map[string]interface{}{
			"weights":                scorers.DefaultWeights(),
			"baseline_expense_ratio": domain.BaselineExpenseRatio,
			"description":            "0.4*return_5y + 0.25*(10*sharpe) + 0.15*(2.0-expense_ratio) + 0.2*alpha",
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSONV2(w, http.StatusOK, response)
}

// HandleWhatIfScore handles POST /api/scoring/score/what-if
func (h *Handlers) HandleWhatIfScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Fund    domain.FundRecord `json:"fund"`
		Weights scorers.Weights   `json:"weights"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorV2(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Validate weights sum to 1.0
	var sum float64
	for _, weight := range req.Weights {
		sum += weight
	}

	if sum < 0.99 || sum > 1.01 {
		h.writeErrorV2(w, "Weights must sum to 1.0", http.StatusBadRequest)
		return
	}

	original := h.scorer.Calculate(req.Fund)
	custom := h.scorer.CalculateWithWeights(req.Fund, req.Weights)

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"fund_id":        req.Fund.ID,
			"custom_weights": req.Weights,
			"original_score": original.Score,
			"custom_score":   custom.Score,
			"delta":          custom.Score - original.Score,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSONV2(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (h *Handlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handlers) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	errMsg := message
	h.writeJSON(w, ScoreResponse{Error: &errMsg})
}

// writeJSONV2 writes a JSON response with status code
func (h *Handlers) writeJSONV2(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeErrorV2 writes an error response (v2 format)
func (h *Handlers) writeErrorV2(w http.ResponseWriter, message string, status int) {
	h.writeJSONV2(w, status, map[string]string{"error": message})
}
