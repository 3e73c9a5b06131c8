package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// RiskTier is the resolved risk tolerance of an investor.
type RiskTier string

const (
	RiskLow      RiskTier = "low"
	RiskModerate RiskTier = "moderate"
	RiskHigh     RiskTier = "high"
)

// ParseRiskTier maps a free-form risk label to a tier. Anything unrecognized is moderate.
func ParseRiskTier(s string) RiskTier {
	switch RiskTier(strings.ToLower(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskHigh:
		return RiskHigh
	default:
		return RiskModerate
	}
}

// Horizon bucket labels.
const (
	Horizon1To3  = "1-3"
	Horizon3To5  = "3-5"
	Horizon5To10 = "5-10"
	Horizon10Up  = "10+"
)

// NormalizeHorizon trims a horizon label and drops a trailing "years"/"yrs"
// suffix, so "5-10 years" and "5-10" name the same bucket. Unknown labels are
// returned trimmed and lower-cased; they simply match no adjustment.
func NormalizeHorizon(s string) string {
	h := strings.ToLower(strings.TrimSpace(s))
	for _, suffix := range []string{"years", "year", "yrs", "yr"} {
		if strings.HasSuffix(h, suffix) {
			h = strings.TrimSpace(strings.TrimSuffix(h, suffix))
			break
		}
	}
	return strings.ReplaceAll(h, " ", "")
}

// IsShortHorizon reports whether the bucket is 1-3 or 3-5 years.
func IsShortHorizon(h string) bool {
	h = NormalizeHorizon(h)
	return h == Horizon1To3 || h == Horizon3To5
}

// IsLongHorizon reports whether the bucket is 10+ years.
func IsLongHorizon(h string) bool {
	return NormalizeHorizon(h) == Horizon10Up
}

// Investment goals with special handling.
const (
	GoalWealthCreation = "wealth_creation"
	GoalTaxSaving      = "tax_saving"
)

// UserProfile is one request's fully-resolved investor profile.
// Only the first four fields drive allocation; the rest are forwarded downstream.
type UserProfile struct {
	RiskTolerance       RiskTier `json:"risk_tolerance"`
	InvestmentHorizon   string   `json:"investment_horizon"`
	InvestmentGoal      string   `json:"investment_goal"`
	InvestmentAmount    float64  `json:"investment_amount"`
	Name                string   `json:"name,omitempty"`
	Age                 int      `json:"age,omitempty"`
	AnnualIncome        float64  `json:"annual_income,omitempty"`
	MonthlySIP          float64  `json:"monthly_sip"`
	ExistingInvestments float64  `json:"existing_investments"`
	TaxBracket          int      `json:"tax_bracket"`
	EmergencyFund       string   `json:"emergency_fund"`
	FundTypePreference  string   `json:"fund_type_preference"`
	ESGPreference       string   `json:"esg_preference"`
	DividendPreference  string   `json:"dividend_preference"`
	LumpsumInvestment   float64  `json:"lumpsum_investment"`
	SIPInvestment       float64  `json:"sip_investment"`
}

// ProfileRequest is the loosely-typed profile as it arrives from a client.
// Numeric fields accept JSON numbers or numeric strings.
type ProfileRequest struct {
	Name                string    `json:"name"`
	Age                 FlexFloat `json:"age"`
	AnnualIncome        FlexFloat `json:"annual_income"`
	InvestmentAmount    FlexFloat `json:"investment_amount"`
	RiskTolerance       string    `json:"risk_tolerance"`
	InvestmentGoal      string    `json:"investment_goal"`
	InvestmentHorizon   string    `json:"investment_horizon"`
	MonthlySIP          FlexFloat `json:"monthly_sip"`
	ExistingInvestments FlexFloat `json:"existing_investments"`
	TaxBracket          FlexFloat `json:"tax_bracket"`
	EmergencyFund       string    `json:"emergency_fund"`
	FundTypePreference  string    `json:"fund_type_preference"`
	ESGPreference       string    `json:"esg_preference"`
	DividendPreference  string    `json:"dividend_preference"`
	LumpsumInvestment   FlexFloat `json:"lumpsum_investment"`
	SIPInvestment       FlexFloat `json:"sip_investment"`
}

// Resolve applies every defaulting rule once and returns the typed profile.
// investment_amount, when absent, is lumpsum_investment + sip_investment.
// Negative amounts are passed through unchanged.
func (r ProfileRequest) Resolve() UserProfile {
	p := UserProfile{
		RiskTolerance:       ParseRiskTier(r.RiskTolerance),
		InvestmentHorizon:   orDefault(NormalizeHorizon(r.InvestmentHorizon), Horizon5To10),
		InvestmentGoal:      orDefault(strings.ToLower(strings.TrimSpace(r.InvestmentGoal)), GoalWealthCreation),
		Name:                strings.TrimSpace(r.Name),
		Age:                 int(r.Age.Or(0)),
		AnnualIncome:        r.AnnualIncome.Or(0),
		MonthlySIP:          r.MonthlySIP.Or(0),
		ExistingInvestments: r.ExistingInvestments.Or(0),
		TaxBracket:          int(r.TaxBracket.Or(20)),
		EmergencyFund:       orDefault(r.EmergencyFund, "yes"),
		FundTypePreference:  orDefault(r.FundTypePreference, "direct"),
		ESGPreference:       orDefault(r.ESGPreference, "no_preference"),
		DividendPreference:  orDefault(r.DividendPreference, "growth"),
		LumpsumInvestment:   r.LumpsumInvestment.Or(0),
		SIPInvestment:       r.SIPInvestment.Or(0),
	}

	if r.InvestmentAmount.Valid {
		p.InvestmentAmount = r.InvestmentAmount.Value
	} else {
		p.InvestmentAmount = p.LumpsumInvestment + p.SIPInvestment
	}

	return p
}

// FlexFloat is an optional float64 that unmarshals from a JSON number or a
// numeric string. Null, empty and non-numeric input leave it invalid.
type FlexFloat struct {
	Value float64
	Valid bool
}

// Or returns the value, or fallback when f is not set.
func (f FlexFloat) Or(fallback float64) float64 {
	if !f.Valid {
		return fallback
	}
	return f.Value
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	f.Value, f.Valid = v, true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}
