// Package ranking selects the best-scoring funds within a category.
package ranking

import (
	"fmt"
	"sort"

	"github.com/aristath/fundadvisor/internal/domain"
	"github.com/aristath/fundadvisor/internal/modules/scoring/scorers"
)

// Ranker ranks funds by FundScorer score.
type Ranker struct {
	scorer *scorers.FundScorer
}

// NewRanker creates a new ranker
func NewRanker(scorer *scorers.FundScorer) *Ranker {
	if scorer == nil {
		scorer = scorers.NewFundScorer()
	}
	return &Ranker{scorer: scorer}
}

// Score returns the score the ranker orders funds by.
func (r *Ranker) Score(fund domain.FundRecord) float64 {
	return r.scorer.Score(fund)
}

// TopFunds returns up to topN funds of the given category, best score first.
//
// If category is empty or no fund carries it, the whole dataset is ranked
// instead. Equal scores keep their dataset order. funds is never modified.
func (r *Ranker) TopFunds(funds []domain.FundRecord, category string, topN int) ([]domain.ScoredFund, error) {
	if topN < 0 {
		return nil, fmt.Errorf("top funds for %q: %w", category, domain.ErrInvalidTopN)
	}

	working := filterByCategory(funds, domain.NormalizeCategory(category))
	if len(working) == 0 || topN == 0 {
		return []domain.ScoredFund{}, nil
	}

	scored := make([]domain.ScoredFund, len(working))
	for i, fund := range working {
		scored[i] = domain.ScoredFund{
			FundRecord: fund,
			Score:      r.scorer.Score(fund),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored, nil
}

// filterByCategory returns the funds in category, or all funds when the
// category is empty or unknown.
func filterByCategory(funds []domain.FundRecord, category string) []domain.FundRecord {
	if category == "" {
		return funds
	}

	var matched []domain.FundRecord
	for _, fund := range funds {
		if domain.NormalizeCategory(fund.Category) == category {
			matched = append(matched, fund)
		}
	}

	if len(matched) == 0 {
		return funds
	}
	return matched
}
