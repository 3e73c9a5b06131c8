// Package handlers provides the HTTP API for fund analysis and lookups.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/fundadvisor/internal/domain"
	"github.com/aristath/fundadvisor/internal/modules/advisor"
)

// Defaults for POST /top-funds.
const (
	DefaultTopFundsCategory = domain.CategoryLargeCap
	DefaultTopFundsN        = 5
)

// Handler handles advisor HTTP requests
type Handler struct {
	service *advisor.Service
	log     zerolog.Logger
}

// NewHandler creates a new advisor handler
func NewHandler(service *advisor.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "advisor").Logger(),
	}
}

// RegisterRoutes registers advisor routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze", h.HandleAnalyze)
	r.Post("/top-funds", h.HandleTopFunds)

	r.Route("/funds", func(r chi.Router) {
		r.Get("/categories", h.HandleGetCategories)
		r.Get("/{id}", h.HandleGetFund)
	})
}

// HandleAnalyze builds a recommendation and narrative for a profile
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req domain.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	analysis, err := h.service.Analyze(r.Context(), req.Resolve())
	if err != nil {
		h.log.Error().Err(err).Msg("Analysis failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"analysis_id":     analysis.ID,
		"recommendations": analysis.Result,
		"llm_analysis":    analysis.Narrative,
		"user_info":       analysis.Profile,
	})
}

// TopFundsRequest is the body of POST /top-funds
type TopFundsRequest struct {
	Category string `json:"category"`
	TopN     *int   `json:"top_n"`
}

// HandleTopFunds ranks the funds of one category
func (h *Handler) HandleTopFunds(w http.ResponseWriter, r *http.Request) {
	var req TopFundsRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	category := req.Category
	if category == "" {
		category = DefaultTopFundsCategory
	}
	topN := DefaultTopFundsN
	if req.TopN != nil {
		topN = *req.TopN
	}

	top, err := h.service.TopFunds(category, topN)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTopN) {
			h.writeError(w, http.StatusBadRequest, "top_n must not be negative")
			return
		}
		h.log.Error().Err(err).Str("category", category).Msg("Failed to rank funds")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Debug().Str("category", category).Int("count", len(top)).Msg("Ranked top funds")
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"category": domain.NormalizeCategory(category),
		"funds":    top,
	})
}

// HandleGetFund returns a single fund
func (h *Handler) HandleGetFund(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	fund, err := h.service.Fund(id)
	if err != nil {
		if errors.Is(err, domain.ErrFundNotFound) {
			h.writeError(w, http.StatusNotFound, "Fund not found")
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"fund":    fund,
	})
}

// HandleGetCategories returns per-category dataset statistics
func (h *Handler) HandleGetCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": h.service.Categories(),
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
	h.writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
