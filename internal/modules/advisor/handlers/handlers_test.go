package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/fundadvisor/internal/domain"
	"github.com/aristath/fundadvisor/internal/modules/advisor"
	"github.com/aristath/fundadvisor/internal/modules/funds"
	"github.com/aristath/fundadvisor/internal/modules/narrative"
	"github.com/aristath/fundadvisor/internal/modules/recommendation"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	ds, err := funds.NewDataset([]domain.FundRecord{
		{ID: "F001", Name: "Sample Large Cap Fund", Category: "large_cap", Returns5Y: domain.Float(10.2), SharpeRatio: domain.Float(0.8), ExpenseRatio: domain.Float(0.8), Alpha: domain.Float(1.2)},
		{ID: "F002", Name: "Sample Mid Cap Fund", Category: "mid_cap", Returns5Y: domain.Float(12.8), SharpeRatio: domain.Float(0.75), ExpenseRatio: domain.Float(1.2), Alpha: domain.Float(1.5)},
		{ID: "F003", Name: "Steady Debt Fund", Category: "debt", Returns5Y: domain.Float(7)},
		{ID: "F004", Name: "Bluechip Fund", Category: "large_cap", Returns5Y: domain.Float(11.6), SharpeRatio: domain.Float(0.95)},
	})
	require.NoError(t, err)

	log := zerolog.Nop()
	engine := recommendation.NewEngine(ds, nil, nil)
	svc := advisor.NewService(engine, narrative.NewService(nil, narrative.Config{}, nil, log), 3, nil, log)

	r := chi.NewRouter()
	NewHandler(svc, log).RegisterRoutes(r)
	return r
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleAnalyze(t *testing.T) {
	router := newTestRouter(t)

	body := `{"name": "Asha", "age": "34", "risk_tolerance": "low", "investment_amount": "100000", "investment_horizon": "5-10 years"}`
	w := do(router, http.MethodPost, "/analyze", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success         bool                        `json:"success"`
		AnalysisID      string                      `json:"analysis_id"`
		Recommendations domain.RecommendationResult `json:"recommendations"`
		LLMAnalysis     narrative.NarrativeReport   `json:"llm_analysis"`
		UserInfo        domain.UserProfile          `json:"user_info"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Len(t, resp.AnalysisID, 36)
	assert.Equal(t, domain.RiskLow, resp.Recommendations.RiskProfile)
	assert.Equal(t, 60.0, resp.Recommendations.Allocations["debt"].Percentage)
	assert.Equal(t, 60000.0, resp.Recommendations.Allocations["debt"].Amount)
	require.NotEmpty(t, resp.Recommendations.Recommendations["large_cap"])
	assert.Equal(t, "F004", resp.Recommendations.Recommendations["large_cap"][0].ID)
	assert.Contains(t, resp.Recommendations.Recommendations["large_cap"][0].SearchURL, "Bluechip+Fund+mutual+fund")

	// narrative disabled: fallback mirrors the allocation
	assert.Empty(t, resp.LLMAnalysis.KeyInsights)
	assert.Equal(t, 60.0, resp.LLMAnalysis.SuggestedAllocations["debt"].Percentage)

	assert.Equal(t, "Asha", resp.UserInfo.Name)
	assert.Equal(t, 34, resp.UserInfo.Age)
	assert.Equal(t, "5-10", resp.UserInfo.InvestmentHorizon)
}

func TestHandleAnalyze_InvalidBody(t *testing.T) {
	w := do(newTestRouter(t), http.MethodPost, "/analyze", "{broken")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestHandleTopFunds(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name     string
		body     string
		status   int
		expected []string
	}{
		{"defaults to large_cap", "", http.StatusOK, []string{"F004", "F001"}},
		{"explicit category", `{"category": "debt"}`, http.StatusOK, []string{"F003"}},
		{"unknown category ranks everything", `{"category": "gold", "top_n": 2}`, http.StatusOK, []string{"F002", "F004"}},
		{"top_n limits", `{"category": "large_cap", "top_n": 1}`, http.StatusOK, []string{"F004"}},
		{"zero top_n", `{"top_n": 0}`, http.StatusOK, []string{}},
		{"negative top_n", `{"top_n": -1}`, http.StatusBadRequest, nil},
		{"invalid body", `{"top_n": "x"}`, http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/top-funds", tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.expected == nil {
				return
			}

			var resp struct {
				Success bool                `json:"success"`
				Funds   []domain.ScoredFund `json:"funds"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Success)

			ids := make([]string, 0, len(resp.Funds))
			for _, f := range resp.Funds {
				ids = append(ids, f.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestHandleGetFund(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodGet, "/funds/F002", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Fund domain.ScoredFund `json:"fund"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Sample Mid Cap Fund", resp.Fund.Name)
	assert.InDelta(t, 12.8*0.4+0.75*10*0.25+(2-1.2)*0.15+1.5*0.2, resp.Fund.Score, 1e-9)
	assert.Equal(t, "https://www.google.com/search?q=Sample+Mid+Cap+Fund+mutual+fund", resp.Fund.SearchURL)
}

func TestHandleGetFund_NotFound(t *testing.T) {
	w := do(newTestRouter(t), http.MethodGet, "/funds/NOPE", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Fund not found")
}

func TestHandleGetCategories(t *testing.T) {
	w := do(newTestRouter(t), http.MethodGet, "/funds/categories", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []funds.CategoryStats `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Categories, 3)
	assert.Equal(t, "debt", resp.Categories[0].Category)
	assert.Equal(t, 2, resp.Categories[1].Count)
}
