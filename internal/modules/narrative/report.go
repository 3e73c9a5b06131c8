// Package narrative produces the written analysis that accompanies a
// recommendation. Generation is delegated to an external model; every
// failure degrades to a deterministic fallback report.
package narrative

import (
	"encoding/json"

	"github.com/aristath/fundadvisor/internal/domain"
)

// Well-known report sections.
const (
	SectionInvestmentThesis    = "investment_thesis"
	SectionRiskAnalysis        = "risk_analysis"
	SectionImplementationSteps = "implementation_steps"
	SectionTaxNotes            = "tax_notes"
)

// NarrativeReport is the structured analysis layered on top of a recommendation.
type NarrativeReport struct {
	Summary              string                         `json:"summary"`
	KeyInsights          []string                       `json:"key_insights"`
	SuggestedAllocations map[string]SuggestedAllocation `json:"suggested_allocations"`
	Sections             map[string]string              `json:"sections"`
}

// SuggestedAllocation is the narrated view of one allocation entry.
type SuggestedAllocation struct {
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
	Note       string  `json:"note,omitempty"`
}

// UnmarshalJSON accepts numbers given as JSON numbers or numeric strings.
func (s *SuggestedAllocation) UnmarshalJSON(data []byte) error {
	var raw struct {
		Percentage domain.FlexFloat `json:"percentage"`
		Amount     domain.FlexFloat `json:"amount"`
		Note       string           `json:"note"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Percentage = raw.Percentage.Or(0)
	s.Amount = raw.Amount.Or(0)
	s.Note = raw.Note
	return nil
}

// normalize replaces nil collections so the report always serializes with
// arrays and objects rather than nulls.
func (r *NarrativeReport) normalize() {
	if r.KeyInsights == nil {
		r.KeyInsights = []string{}
	}
	if r.SuggestedAllocations == nil {
		r.SuggestedAllocations = map[string]SuggestedAllocation{}
	}
	if r.Sections == nil {
		r.Sections = map[string]string{}
	}
}

const (
	fallbackSummary = "A written analysis is not available right now. " +
		"The allocation and fund picks below were computed directly from your profile."
	fallbackThesis = "Diversify across the suggested categories in the listed proportions " +
		"and review the allocation as your goals change."
)

// Fallback builds the placeholder report used whenever generation fails. Its
// suggested allocations mirror the deterministic allocation exactly.
func Fallback(result domain.RecommendationResult) NarrativeReport {
	suggested := make(map[string]SuggestedAllocation, len(result.Allocations))
	for category, entry := range result.Allocations {
		suggested[category] = SuggestedAllocation{Percentage: entry.Percentage, Amount: entry.Amount}
	}

	return NarrativeReport{
		Summary:              fallbackSummary,
		KeyInsights:          []string{},
		SuggestedAllocations: suggested,
		Sections: map[string]string{
			SectionInvestmentThesis: fallbackThesis,
		},
	}
}
