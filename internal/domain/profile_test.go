package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRiskTier(t *testing.T) {
	tests := []struct {
		input    string
		expected RiskTier
	}{
		{"low", RiskLow},
		{" HIGH ", RiskHigh},
		{"moderate", RiskModerate},
		{"", RiskModerate},
		{"aggressive", RiskModerate},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseRiskTier(tt.input))
		})
	}
}

func TestNormalizeHorizon(t *testing.T) {
	assert.Equal(t, "5-10", NormalizeHorizon("5-10 years"))
	assert.Equal(t, "1-3", NormalizeHorizon(" 1-3 "))
	assert.Equal(t, "10+", NormalizeHorizon("10+ Years"))
	assert.Equal(t, "forever", NormalizeHorizon("forever"))

	assert.True(t, IsShortHorizon("1-3"))
	assert.True(t, IsShortHorizon("3-5 years"))
	assert.False(t, IsShortHorizon("5-10"))
	assert.True(t, IsLongHorizon("10+"))
	assert.False(t, IsLongHorizon("5-10"))
}

func TestProfileRequest_Resolve_Defaults(t *testing.T) {
	var req ProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))

	p := req.Resolve()
	assert.Equal(t, RiskModerate, p.RiskTolerance)
	assert.Equal(t, Horizon5To10, p.InvestmentHorizon)
	assert.Equal(t, GoalWealthCreation, p.InvestmentGoal)
	assert.Equal(t, 0.0, p.InvestmentAmount)
	assert.Equal(t, 20, p.TaxBracket)
	assert.Equal(t, "direct", p.FundTypePreference)
}

func TestProfileRequest_Resolve_DerivesAmountFromLumpsumAndSIP(t *testing.T) {
	var req ProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"lumpsum_investment": "40000", "sip_investment": 10000}`), &req))

	assert.Equal(t, 50000.0, req.Resolve().InvestmentAmount)
}

func TestProfileRequest_Resolve_ExplicitAmountWins(t *testing.T) {
	var req ProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"investment_amount": "100000", "lumpsum_investment": 5}`), &req))

	assert.Equal(t, 100000.0, req.Resolve().InvestmentAmount)
}

func TestProfileRequest_Resolve_NonNumericAmountIsAbsent(t *testing.T) {
	var req ProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"investment_amount": "lots", "sip_investment": 700}`), &req))

	assert.False(t, req.InvestmentAmount.Valid)
	assert.Equal(t, 700.0, req.Resolve().InvestmentAmount)
}

func TestProfileRequest_Resolve_NegativeAmountPassesThrough(t *testing.T) {
	var req ProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"investment_amount": -500}`), &req))

	assert.Equal(t, -500.0, req.Resolve().InvestmentAmount)
}

func TestFundRecord_Defaults(t *testing.T) {
	var f FundRecord
	assert.Equal(t, 0.0, f.Return5YOrZero())
	assert.Equal(t, 0.0, f.SharpeOrZero())
	assert.Equal(t, 0.0, f.AlphaOrZero())
	assert.Equal(t, BaselineExpenseRatio, f.ExpenseRatioOrBaseline())

	f.ExpenseRatio = Float(0.8)
	assert.Equal(t, 0.8, f.ExpenseRatioOrBaseline())
}

func TestCategoryAllocation_Categories(t *testing.T) {
	alloc := CategoryAllocation{
		"debt":      {Percentage: 60, Amount: 600},
		"flexi_cap": {Percentage: 10, Amount: 100},
		"large_cap": {Percentage: 30, Amount: 300},
		"mid_cap":   {Percentage: 10, Amount: 100},
	}

	assert.Equal(t, []string{"debt", "large_cap", "flexi_cap", "mid_cap"}, alloc.Categories())
	assert.Equal(t, 110.0, alloc.TotalPercentage())
	assert.Equal(t, 1100.0, alloc.TotalAmount())
}
