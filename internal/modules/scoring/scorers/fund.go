// Package scorers provides fund scoring implementations.
package scorers

import (
	"github.com/aristath/fundadvisor/internal/domain"
)

// Fixed component weights. They are not configurable.
const (
	WeightReturn5Y = 0.40
	WeightSharpe   = 0.25
	WeightExpense  = 0.15
	WeightAlpha    = 0.20

	// sharpeScale brings a Sharpe ratio (typically 0-2) onto the same
	// order of magnitude as a percentage return.
	sharpeScale = 10.0
)

// FundScorer calculates a suitability score for a single fund.
//
// score = 0.40 * return_5y
//       + 0.25 * (10 * sharpe_ratio)
//       + 0.15 * (2.0 - expense_ratio)
//       + 0.20 * alpha
//
// Missing metrics count as 0, except expense_ratio which counts as the 2.0
// baseline so an unknown cost neither helps nor hurts.
type FundScorer struct{}

// FundScore is a score together with its weighted components.
type FundScore struct {
	Components map[string]float64 `json:"components"`
	Score      float64            `json:"score"`
}

// NewFundScorer creates a new fund scorer
func NewFundScorer() *FundScorer {
	return &FundScorer{}
}

// Score returns the fund's score. It never fails.
func (fs *FundScorer) Score(fund domain.FundRecord) float64 {
	return returnComponent(fund) + sharpeComponent(fund) + expenseComponent(fund) + alphaComponent(fund)
}

// Calculate returns the score with a per-component breakdown.
func (fs *FundScorer) Calculate(fund domain.FundRecord) FundScore {
	components := map[string]float64{
		"return_5y":     returnComponent(fund),
		"sharpe_ratio":  sharpeComponent(fund),
		"expense_ratio": expenseComponent(fund),
		"alpha":         alphaComponent(fund),
	}

	return FundScore{
		Score:      fs.Score(fund),
		Components: components,
	}
}

func returnComponent(fund domain.FundRecord) float64 {
	return WeightReturn5Y * fund.Return5YOrZero()
}

func sharpeComponent(fund domain.FundRecord) float64 {
	return WeightSharpe * (sharpeScale * fund.SharpeOrZero())
}

// expenseComponent is positive for cheaper-than-baseline funds.
func expenseComponent(fund domain.FundRecord) float64 {
	return WeightExpense * (domain.BaselineExpenseRatio - fund.ExpenseRatioOrBaseline())
}

func alphaComponent(fund domain.FundRecord) float64 {
	return WeightAlpha * fund.AlphaOrZero()
}

// Weights is a set of component weights keyed like FundScore.Components.
type Weights map[string]float64

// DefaultWeights returns the weights used for ranking.
func DefaultWeights() Weights {
	return Weights{
		"return_5y":     WeightReturn5Y,
		"sharpe_ratio":  WeightSharpe,
		"expense_ratio": WeightExpense,
		"alpha":         WeightAlpha,
	}
}

// CalculateWithWeights rescores a fund under alternative weights. Ranking
// always uses the defaults; this only backs what-if analysis.
// Components missing from weights contribute nothing.
func (fs *FundScorer) CalculateWithWeights(fund domain.FundRecord, weights Weights) FundScore {
	base := fs.Calculate(fund)
	defaults := DefaultWeights()

	components := make(map[string]float64, len(base.Components))
	var total float64
	for name, value := range base.Components {
		weighted := value / defaults[name] * weights[name]
		components[name] = weighted
		total += weighted
	}

	return FundScore{Score: total, Components: components}
}
