// Package recommendation combines allocation planning and fund ranking into a
// single recommendation for an investor profile.
package recommendation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aristath/fundadvisor/internal/domain"
	"github.com/aristath/fundadvisor/internal/modules/allocation"
	"github.com/aristath/fundadvisor/internal/modules/funds"
	"github.com/aristath/fundadvisor/internal/modules/ranking"
)

// DefaultTopN is the number of funds recommended per allocation category.
const DefaultTopN = 3

// Engine produces recommendations over an immutable dataset. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	dataset *funds.Dataset
	planner *allocation.Planner
	ranker  *ranking.Ranker
}

// NewEngine creates a new recommendation engine. Nil planner or ranker get defaults.
func NewEngine(dataset *funds.Dataset, planner *allocation.Planner, ranker *ranking.Ranker) *Engine {
	if planner == nil {
		planner = allocation.NewPlanner()
	}
	if ranker == nil {
		ranker = ranking.NewRanker(nil)
	}
	return &Engine{dataset: dataset, planner: planner, ranker: ranker}
}

// Dataset returns the dataset the engine reads from
func (e *Engine) Dataset() *funds.Dataset {
	return e.dataset
}

// Recommend plans an allocation for profile and ranks the top topN funds of
// every allocated category. An empty dataset yields empty fund lists next to
// a complete allocation.
func (e *Engine) Recommend(profile domain.UserProfile, topN int) (domain.RecommendationResult, error) {
	allocations := e.planner.Plan(profile)

	recommendations := make(map[string][]domain.ScoredFund, len(allocations))
	for _, category := range allocations.Categories() {
		top, err := e.TopFunds(category, topN)
		if err != nil {
			return domain.RecommendationResult{}, fmt.Errorf("recommend: %w", err)
		}
		recommendations[category] = top
	}

	return domain.RecommendationResult{
		Allocations:     allocations,
		Recommendations: recommendations,
		RiskProfile:     domain.ParseRiskTier(string(profile.RiskTolerance)),
	}, nil
}

// TopFunds ranks one category (or the whole dataset for an unknown
// category) and attaches a search link to every fund.
func (e *Engine) TopFunds(category string, topN int) ([]domain.ScoredFund, error) {
	top, err := e.ranker.TopFunds(e.records(), category, topN)
	if err != nil {
		return nil, err
	}
	for i := range top {
		top[i].SearchURL = SearchURL(top[i].Name)
	}
	return top, nil
}

// Score returns a single fund's score.
func (e *Engine) Score(fund domain.FundRecord) float64 {
	return e.ranker.Score(fund)
}

// Fund looks up a single fund by id.
func (e *Engine) Fund(id string) (domain.FundRecord, error) {
	if e.dataset == nil {
		return domain.FundRecord{}, fmt.Errorf("fund %q: %w", id, domain.ErrFundNotFound)
	}
	return e.dataset.Get(id)
}

func (e *Engine) records() []domain.FundRecord {
	if e.dataset == nil {
		return nil
	}
	return e.dataset.Funds()
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// SearchURL builds a web search link for a fund name.
func SearchURL(name string) string {
	query := whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "+")
	return "https://www.google.com/search?q=" + query + "+mutual+fund"
}
