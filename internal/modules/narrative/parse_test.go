package narrative

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/fundadvisor/internal/domain"
)

func TestExtractJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"summary":"ok"}`,
			want:  `{"summary":"ok"}`,
		},
		{
			name:  "surrounded by prose",
			input: "Here is your analysis:\n{\"summary\": \"ok\", \"sections\": {\"a\": \"b\"}}\nThanks!",
			want:  `{"summary": "ok", "sections": {"a": "b"}}`,
		},
		{
			name:  "code fence",
			input: "```json\n{\"summary\": \"fenced\"}\n```",
			want:  `{"summary": "fenced"}`,
		},
		{
			name:  "braces and escaped quotes inside strings",
			input: `note {"summary": "use {curly} and \"quotes\" \\", "key_insights": []} trailing }`,
			want:  `{"summary": "use {curly} and \"quotes\" \\", "key_insights": []}`,
		},
		{
			name:  "invalid candidate skipped",
			input: `{not json} then {"summary":"second"}`,
			want:  `{"summary":"second"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONBlock(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONBlock_NoBlock(t *testing.T) {
	for _, input := range []string{"", "plain prose", `{"unterminated": "x"`, "} {"} {
		t.Run(input, func(t *testing.T) {
			_, err := ExtractJSONBlock(input)
			assert.True(t, errors.Is(err, domain.ErrNoStructuredBlock))
		})
	}
}

func TestParseReport(t *testing.T) {
	text := "Sure!\n```json\n" + `{
		"summary": "Balanced plan",
		"key_insights": ["Diversify", "Stay invested"],
		"suggested_allocations": {
			"debt": {"percentage": "60", "amount": 60000, "note": "stability"},
			"large_cap": {"percentage": 40, "amount": "40000"}
		},
		"sections": {"tax_notes": "Consult a tax advisor."}
	}` + "\n```"

	report, err := ParseReport(text)
	require.NoError(t, err)

	assert.Equal(t, "Balanced plan", report.Summary)
	assert.Equal(t, []string{"Diversify", "Stay invested"}, report.KeyInsights)
	assert.Equal(t, SuggestedAllocation{Percentage: 60, Amount: 60000, Note: "stability"}, report.SuggestedAllocations["debt"])
	assert.Equal(t, SuggestedAllocation{Percentage: 40, Amount: 40000}, report.SuggestedAllocations["large_cap"])
	assert.Equal(t, "Consult a tax advisor.", report.Sections[SectionTaxNotes])
}

func TestParseReport_FillsMissingCollections(t *testing.T) {
	report, err := ParseReport(`{"summary": "short"}`)
	require.NoError(t, err)

	assert.NotNil(t, report.KeyInsights)
	assert.NotNil(t, report.SuggestedAllocations)
	assert.NotNil(t, report.Sections)
}

func TestParseReport_Malformed(t *testing.T) {
	_, err := ParseReport(`{"summary": ""}`)
	assert.True(t, errors.Is(err, ErrMalformedReport))

	_, err = ParseReport(`{"summary": "x", "key_insights": "not a list"}`)
	assert.True(t, errors.Is(err, ErrMalformedReport))

	_, err = ParseReport("no json here")
	assert.True(t, errors.Is(err, domain.ErrNoStructuredBlock))
}

func TestFallback_MirrorsAllocation(t *testing.T) {
	result := domain.RecommendationResult{
		Allocations: domain.CategoryAllocation{
			"debt":      {Percentage: 60, Amount: 60000},
			"large_cap": {Percentage: 40, Amount: 40000},
		},
		RiskProfile: domain.RiskLow,
	}

	report := Fallback(result)

	assert.NotEmpty(t, report.Summary)
	assert.Empty(t, report.KeyInsights)
	assert.NotNil(t, report.KeyInsights)
	assert.Equal(t, map[string]SuggestedAllocation{
		"debt":      {Percentage: 60, Amount: 60000},
		"large_cap": {Percentage: 40, Amount: 40000},
	}, report.SuggestedAllocations)
	assert.NotEmpty(t, report.Sections[SectionInvestmentThesis])
}
