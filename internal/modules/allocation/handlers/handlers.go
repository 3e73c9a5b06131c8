// Package handlers provides HTTP handlers for allocation planning.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aristath/fundadvisor/internal/domain"
	"github.com/aristath/fundadvisor/internal/modules/allocation"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles allocation HTTP requests
type Handler struct {
	planner *allocation.Planner
	log     zerolog.Logger
}

// NewHandler creates a new allocation handler
func NewHandler(planner *allocation.Planner, log zerolog.Logger) *Handler {
	return &Handler{
		planner: planner,
		log:     log.With().Str("handler", "allocation").Logger(),
	}
}

// RegisterRoutes registers allocation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/allocation", func(r chi.Router) {
		r.Post("/plan", h.HandlePlan)
		r.Post("/chart", h.HandleChart)
		r.Get("/tiers", h.HandleGetTiers)
	})
}

// HandlePlan returns the allocation for a profile without ranking funds
func (h *Handler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"risk_profile": profile.RiskTolerance,
		"allocations":  h.planner.Plan(profile),
		"weights":      h.planner.AdjustedWeights(profile),
	})
}

// HandleChart renders the allocation for a profile as a PNG pie chart
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	png, err := allocation.RenderChart(h.planner.Plan(profile), "")
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to render allocation chart")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.log.Error().Err(err).Msg("Failed to write chart response")
	}
}

// HandleGetTiers returns the base weight table for every risk tier
func (h *Handler) HandleGetTiers(w http.ResponseWriter, r *http.Request) {
	tiers := make(map[domain.RiskTier]map[string]float64)
	for _, tier := range []domain.RiskTier{domain.RiskLow, domain.RiskModerate, domain.RiskHigh} {
		tiers[tier] = allocation.BaseWeights(tier)
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"tiers": tiers,
	})
}

func (h *Handler) decodeProfile(w http.ResponseWriter, r *http.Request) (domain.UserProfile, bool) {
	var req domain.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return domain.UserProfile{}, false
	}
	return req.Resolve(), true
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
