package testing

import "github.com/aristath/fundadvisor/internal/domain"

// NewFundFixtures returns a small dataset covering every well-known
// category. Some metrics are missing on purpose so scoring defaults are
// exercised.
//
// Scores (return*0.4 + sharpe*2.5 + (2-expense)*0.15 + alpha*0.2):
//
//	LC1 7.32, LC2 6.475, MC1 8.415, SC1 9.3, FX1 7.37, DB1 3.99, DB2 3.1, TS1 7.28
func NewFundFixtures() []domain.FundRecord {
	return []domain.FundRecord{
		{
			ID:           "LC1",
			Name:         "Bluechip Equity Fund",
			Category:     domain.CategoryLargeCap,
			NAV:          domain.Float(412.7),
			AUM:          domain.Float(32000),
			ExpenseRatio: domain.Float(0.8),
			Returns1Y:    domain.Float(14.1),
			Returns3Y:    domain.Float(12.3),
			Returns5Y:    domain.Float(12),
			SharpeRatio:  domain.Float(0.8),
			Alpha:        domain.Float(1.7),
			Beta:         domain.Float(0.92),
		},
		{
			ID:           "LC2",
			Name:         "Index Nifty 50 Fund",
			Category:     domain.CategoryLargeCap,
			ExpenseRatio: domain.Float(0.1),
			Returns5Y:    domain.Float(11),
			SharpeRatio:  domain.Float(0.7),
			Alpha:        domain.Float(0.2),
		},
		{
			ID:           "MC1",
			Name:         "Emerging Leaders Fund",
			Category:     domain.CategoryMidCap,
			ExpenseRatio: domain.Float(0.9),
			Returns5Y:    domain.Float(15),
			SharpeRatio:  domain.Float(0.8),
			Alpha:        domain.Float(1.25),
		},
		{
			ID:           "SC1",
			Name:         "Smallcap Discovery Fund",
			Category:     domain.CategorySmallCap,
			ExpenseRatio: domain.Float(1.2),
			Returns5Y:    domain.Float(18),
			SharpeRatio:  domain.Float(0.6),
			Alpha:        domain.Float(2.4),
		},
		{
			ID:           "FX1",
			Name:         "Flexi Opportunities Fund",
			Category:     domain.CategoryFlexiCap,
			ExpenseRatio: domain.Float(0.7),
			Returns5Y:    domain.Float(13),
			SharpeRatio:  domain.Float(0.75),
			Alpha:        domain.Float(0.5),
		},
		{
			ID:           "DB1",
			Name:         "Corporate Bond Fund",
			Category:     domain.CategoryDebt,
			ExpenseRatio: domain.Float(0.4),
			Returns5Y:    domain.Float(7.5),
			SharpeRatio:  domain.Float(0.3),
		},
		{
			ID:          "DB2",
			Name:        "Liquid Fund",
			Category:    domain.CategoryDebt,
			Returns5Y:   domain.Float(6.5),
			SharpeRatio: domain.Float(0.2),
		},
		{
			ID:           "TS1",
			Name:         "Tax Saver ELSS Fund",
			Category:     domain.CategoryTaxSaving,
			ExpenseRatio: domain.Float(1.0),
			Returns5Y:    domain.Float(14),
			SharpeRatio:  domain.Float(0.6),
			Alpha:        domain.Float(0.15),
		},
	}
}
