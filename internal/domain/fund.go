package domain

import "strings"

// BaselineExpenseRatio is the "typical" expense ratio (percent) a fund is
// compared against when scoring. A fund with no known expense ratio is
// treated as exactly baseline.
const BaselineExpenseRatio = 2.0

// Well-known fund categories. The set is open: datasets may carry others.
const (
	CategoryLargeCap  = "large_cap"
	CategoryMidCap    = "mid_cap"
	CategorySmallCap  = "small_cap"
	CategoryFlexiCap  = "flexi_cap"
	CategoryDebt      = "debt"
	CategoryTaxSaving = "tax_saving"
)

// FundRecord is one row of the fund dataset.
// Metrics are optional; use the accessor methods to read them with defaults applied.
type FundRecord struct {
	ID            string   `json:"id" msgpack:"id"`
	Name          string   `json:"name" msgpack:"name"`
	Category      string   `json:"category" msgpack:"category"`
	NAV           *float64 `json:"nav,omitempty" msgpack:"nav"`
	AUM           *float64 `json:"aum,omitempty" msgpack:"aum"`
	ExpenseRatio  *float64 `json:"expense_ratio,omitempty" msgpack:"expense_ratio"`
	Returns1Y     *float64 `json:"returns_1y,omitempty" msgpack:"returns_1y"`
	Returns3Y     *float64 `json:"returns_3y,omitempty" msgpack:"returns_3y"`
	Returns5Y     *float64 `json:"returns_5y,omitempty" msgpack:"returns_5y"`
	SharpeRatio   *float64 `json:"sharpe_ratio,omitempty" msgpack:"sharpe_ratio"`
	Alpha         *float64 `json:"alpha,omitempty" msgpack:"alpha"`
	Beta          *float64 `json:"beta,omitempty" msgpack:"beta"`
	Sortino       *float64 `json:"sortino,omitempty" msgpack:"sortino"`
	ESGScore      *float64 `json:"esg_score,omitempty" msgpack:"esg_score"`
	MinInvestment *float64 `json:"min_investment,omitempty" msgpack:"min_investment"`
}

// Return5YOrZero returns the 5-year (or SIP 5-year) return percentage, 0 if unknown.
func (f FundRecord) Return5YOrZero() float64 { return valueOr(f.Returns5Y, 0) }

// SharpeOrZero returns the Sharpe ratio, 0 if unknown.
func (f FundRecord) SharpeOrZero() float64 { return valueOr(f.SharpeRatio, 0) }

// AlphaOrZero returns alpha, 0 if unknown.
func (f FundRecord) AlphaOrZero() float64 { return valueOr(f.Alpha, 0) }

// ExpenseRatioOrBaseline returns the expense ratio, BaselineExpenseRatio if unknown.
func (f FundRecord) ExpenseRatioOrBaseline() float64 {
	return valueOr(f.ExpenseRatio, BaselineExpenseRatio)
}

// ScoredFund is a FundRecord with its derived score. It is a view; the score
// is never written back to the dataset.
type ScoredFund struct {
	FundRecord
	Score     float64 `json:"score"`
	SearchURL string  `json:"search_url,omitempty"`
}

// NormalizeCategory lower-cases and trims a category label.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// Float returns a pointer to v. Handy for building records in code and tests.
func Float(v float64) *float64 { return &v }

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
