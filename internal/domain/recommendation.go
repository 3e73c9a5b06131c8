package domain

import "sort"

// AllocationEntry is one category's share of an investment.
type AllocationEntry struct {
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// CategoryAllocation maps category to its share. Only categories with a
// positive weight are present; percentages sum to 100.
type CategoryAllocation map[string]AllocationEntry

// Categories returns the allocation's categories, largest share first and
// then by name, so iteration order is deterministic.
func (a CategoryAllocation) Categories() []string {
	categories := make([]string, 0, len(a))
	for category := range a {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		pi, pj := a[categories[i]].Percentage, a[categories[j]].Percentage
		if pi != pj {
			return pi > pj
		}
		return categories[i] < categories[j]
	})
	return categories
}

// TotalPercentage sums all percentages.
func (a CategoryAllocation) TotalPercentage() float64 {
	var total float64
	for _, entry := range a {
		total += entry.Percentage
	}
	return total
}

// TotalAmount sums all amounts.
func (a CategoryAllocation) TotalAmount() float64 {
	var total float64
	for _, entry := range a {
		total += entry.Amount
	}
	return total
}

// RecommendationResult is the deterministic output of the recommendation engine.
type RecommendationResult struct {
	Allocations     CategoryAllocation      `json:"allocations"`
	Recommendations map[string][]ScoredFund `json:"recommendations"`
	RiskProfile     RiskTier                `json:"risk_profile"`
}
