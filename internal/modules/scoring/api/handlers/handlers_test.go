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
)

func newTestRouter() *chi.Mux {
	r := chi.NewRouter()
	NewHandlers(zerolog.Nop()).RegisterRoutes(r)
	return r
}

func TestHandleScoreFund(t *testing.T) {
	router := newTestRouter()

	body := `{"id":"F001","category":"large_cap","returns_5y":10,"sharpe_ratio":1,"expense_ratio":1,"alpha":1}`
	req := httptest.NewRequest(http.MethodPost, "/scoring/score", strings.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ScoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Score)
	assert.InDelta(t, 4.0+2.5+0.15+0.2, resp.Score.Score, 1e-9)
}

func TestHandleScoreFund_InvalidBody(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/scoring/score", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleWhatIfScore_RejectsBadWeights(t *testing.T) {
	router := newTestRouter()

	body := `{"fund":{"id":"F001"},"weights":{"return_5y":0.5}}`
	req := httptest.NewRequest(http.MethodPost, "/scoring/score/what-if", strings.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Weights must sum to 1.0")
}

func TestHandleWhatIfScore(t *testing.T) {
	router := newTestRouter()

	body := `{"fund":{"id":"F001","returns_5y":10},"weights":{"return_5y":1.0}}`
	req := httptest.NewRequest(http.MethodPost, "/scoring/score/what-if", strings.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			OriginalScore float64 `json:"original_score"`
			CustomScore   float64 `json:"custom_score"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 4.0, resp.Data.OriginalScore, 1e-9)
	assert.InDelta(t, 10.0, resp.Data.CustomScore, 1e-9)
}

func TestHandleGetCurrentWeights(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/scoring/weights/current", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"return_5y":0.4`)
}
