// Package funds holds the immutable fund dataset and the sources it can be loaded from.
package funds

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/aristath/fundadvisor/internal/domain"
)

// Dataset is a read-only snapshot of the fund universe. It is built once at
// startup and shared by every request without locking; nothing mutates it.
type Dataset struct {
	funds      []domain.FundRecord
	byID       map[string]int
	categories []string
}

// NewDataset validates records and builds an immutable snapshot. Row order is
// preserved; it is the canonical tie-break order for ranking. Categories are
// normalized to lower case. Duplicate ids and empty categories are rejected.
func NewDataset(records []domain.FundRecord) (*Dataset, error) {
	funds := make([]domain.FundRecord, len(records))
	byID := make(map[string]int, len(records))
	seen := make(map[string]bool)

	for i, record := range records {
		if record.ID == "" {
			return nil, fmt.Errorf("fund at row %d has no id", i+1)
		}
		if _, dup := byID[record.ID]; dup {
			return nil, fmt.Errorf("duplicate fund id %q at row %d", record.ID, i+1)
		}

		record.Category = domain.NormalizeCategory(record.Category)
		if record.Category == "" {
			return nil, fmt.Errorf("fund %q has no category", record.ID)
		}

		funds[i] = record
		byID[record.ID] = i
		seen[record.Category] = true
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	return &Dataset{funds: funds, byID: byID, categories: categories}, nil
}

// Funds returns the records in dataset order. Callers must not modify the slice.
func (d *Dataset) Funds() []domain.FundRecord {
	return d.funds
}

// Len returns the number of funds
func (d *Dataset) Len() int {
	return len(d.funds)
}

// Categories returns the distinct categories, sorted
func (d *Dataset) Categories() []string {
	out := make([]string, len(d.categories))
	copy(out, d.categories)
	return out
}

// HasCategory reports whether any fund carries the category
func (d *Dataset) HasCategory(category string) bool {
	category = domain.NormalizeCategory(category)
	i := sort.SearchStrings(d.categories, category)
	return i < len(d.categories) && d.categories[i] == category
}

// Get returns the fund with the given id, or domain.ErrFundNotFound.
func (d *Dataset) Get(id string) (domain.FundRecord, error) {
	i, ok := d.byID[id]
	if !ok {
		return domain.FundRecord{}, fmt.Errorf("fund %q: %w", id, domain.ErrFundNotFound)
	}
	return d.funds[i], nil
}

// CategoryStats summarizes one category of the dataset.
type CategoryStats struct {
	Category        string  `json:"category"`
	Count           int     `json:"count"`
	MeanReturn5Y    float64 `json:"mean_return_5y"`
	MeanSharpe      float64 `json:"mean_sharpe_ratio"`
	MeanExpenseRate float64 `json:"mean_expense_ratio"`
}

// Stats returns per-category summaries, ordered by category name. Missing
// metrics take the same defaults as scoring.
func (d *Dataset) Stats() []CategoryStats {
	type columns struct{ returns, sharpe, expense []float64 }
	byCategory := make(map[string]*columns, len(d.categories))

	for _, fund := range d.funds {
		c, ok := byCategory[fund.Category]
		if !ok {
			c = &columns{}
			byCategory[fund.Category] = c
		}
		c.returns = append(c.returns, fund.Return5YOrZero())
		c.sharpe = append(c.sharpe, fund.SharpeOrZero())
		c.expense = append(c.expense, fund.ExpenseRatioOrBaseline())
	}

	stats := make([]CategoryStats, 0, len(d.categories))
	for _, category := range d.categories {
		c := byCategory[category]
		stats = append(stats, CategoryStats{
			Category:        category,
			Count:           len(c.returns),
			MeanReturn5Y:    stat.Mean(c.returns, nil),
			MeanSharpe:      stat.Mean(c.sharpe, nil),
			MeanExpenseRate: stat.Mean(c.expense, nil),
		})
	}
	return stats
}
