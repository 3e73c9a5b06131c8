// Package allocation turns an investor profile into a category allocation.
package allocation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/aristath/fundadvisor/internal/domain"
)

// Adjustment constants applied on top of the tier table.
const (
	shortHorizonDebtBoost = 0.20
	longHorizonDebtCut    = 0.10
	taxSavingBoost        = 0.15
)

// baseWeights is the fixed allocation table per risk tier.
var baseWeights = map[domain.RiskTier]map[string]float64{
	domain.RiskLow: {
		domain.CategoryDebt:     0.60,
		domain.CategoryLargeCap: 0.30,
		domain.CategoryFlexiCap: 0.10,
	},
	domain.RiskModerate: {
		domain.CategoryDebt:     0.20,
		domain.CategoryLargeCap: 0.40,
		domain.CategoryFlexiCap: 0.25,
		domain.CategoryMidCap:   0.15,
	},
	domain.RiskHigh: {
		domain.CategoryLargeCap: 0.30,
		domain.CategoryFlexiCap: 0.30,
		domain.CategoryMidCap:   0.20,
		domain.CategorySmallCap: 0.20,
	},
}

// BaseWeights returns a copy of the tier's base weights.
func BaseWeights(tier domain.RiskTier) map[string]float64 {
	base, ok := baseWeights[tier]
	if !ok {
		base = baseWeights[domain.RiskModerate]
	}

	weights := make(map[string]float64, len(base))
	for category, w := range base {
		weights[category] = w
	}
	return weights
}

// Planner maps a profile to a normalized allocation. It holds no state.
type Planner struct{}

// NewPlanner creates a new allocation planner
func NewPlanner() *Planner {
	return &Planner{}
}

// AdjustedWeights returns the tier weights after horizon and goal
// adjustments, with non-positive categories removed. They are not normalized.
func (p *Planner) AdjustedWeights(profile domain.UserProfile) map[string]float64 {
	weights := BaseWeights(domain.ParseRiskTier(string(profile.RiskTolerance)))

	switch {
	case domain.IsShortHorizon(profile.InvestmentHorizon):
		weights[domain.CategoryDebt] += shortHorizonDebtBoost
		delete(weights, domain.CategorySmallCap)
		if w, ok := weights[domain.CategoryMidCap]; ok {
			weights[domain.CategoryMidCap] = w / 2
		}
	case domain.IsLongHorizon(profile.InvestmentHorizon):
		if w, ok := weights[domain.CategoryDebt]; ok {
			weights[domain.CategoryDebt] = math.Max(0, w-longHorizonDebtCut)
		}
	}

	if domain.NormalizeCategory(profile.InvestmentGoal) == domain.GoalTaxSaving {
		weights[domain.CategoryTaxSaving] += taxSavingBoost
	}

	for category, w := range weights {
		if w <= 0 {
			delete(weights, category)
		}
	}
	return weights
}

// Plan returns the category allocation for profile.
//
// Percentages are whole numbers summing to exactly 100; amounts are
// weight * investment_amount rounded to the nearest currency unit. There is
// no error path: unknown risk, horizon or goal values take their defaults,
// and a negative investment amount yields negative amounts.
func (p *Planner) Plan(profile domain.UserProfile) domain.CategoryAllocation {
	weights := p.AdjustedWeights(profile)
	allocation := make(domain.CategoryAllocation, len(weights))
	if len(weights) == 0 {
		return allocation
	}

	categories := sortedCategories(weights)
	values := make([]float64, len(categories))
	for i, category := range categories {
		values[i] = weights[category]
	}

	total := floats.Sum(values)
	if total <= 0 {
		return allocation
	}
	floats.Scale(1/total, values)

	percentages := wholePercentages(values)
	for i, category := range categories {
		allocation[category] = domain.AllocationEntry{
			Percentage: percentages[i],
			Amount:     round(profile.InvestmentAmount*values[i], 0),
		}
	}

	return allocation
}

// wholePercentages converts normalized weights into whole percentages that
// sum to 100 using the largest-remainder method. Ties in the remainder go to
// the earlier index.
func wholePercentages(weights []float64) []float64 {
	percentages := make([]float64, len(weights))
	remainders := make([]float64, len(weights))

	assigned := 0.0
	for i, w := range weights {
		exact := w * 100
		percentages[i] = math.Floor(exact)
		remainders[i] = exact - percentages[i]
		assigned += percentages[i]
	}

	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})

	leftover := int(math.Round(100 - assigned))
	for k := 0; k < leftover && k < len(order); k++ {
		percentages[order[k]]++
	}

	return percentages
}

func sortedCategories(weights map[string]float64) []string {
	categories := make([]string, 0, len(weights))
	for category := range weights {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// round rounds a float64 to n decimal places
func round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
