package funds

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aristath/fundadvisor/internal/domain"
)

// columnAliases maps accepted source column names to canonical field names.
var columnAliases = map[string]string{
	"id":             "id",
	"fund_id":        "id",
	"scheme_code":    "id",
	"name":           "name",
	"fund_name":      "name",
	"scheme_name":    "name",
	"category":       "category",
	"nav":            "nav",
	"aum":            "aum",
	"aum_cr":         "aum",
	"expense_ratio":  "expense_ratio",
	"returns_1y":     "returns_1y",
	"returns_3y":     "returns_3y",
	"returns_5y":     "returns_5y",
	"return_5y":      "returns_5y",
	"sip_5yr_return": "returns_5y",
	"sharpe_ratio":   "sharpe_ratio",
	"sharpe":         "sharpe_ratio",
	"alpha":          "alpha",
	"beta":           "beta",
	"sortino":        "sortino",
	"esg_score":      "esg_score",
	"min_investment": "min_investment",
}

// ParseCSV reads a header-prefixed CSV of funds. Unknown columns are ignored;
// metric cells that are empty or non-numeric are treated as absent.
func ParseCSV(r io.Reader) ([]domain.FundRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = canonicalColumn(name)
	}
	if err := requireColumns(columns); err != nil {
		return nil, err
	}

	var records []domain.FundRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		fields := make(map[string]string, len(columns))
		for i, value := range row {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			// aliases of one field: an empty cell never overwrites a filled one
			if strings.TrimSpace(value) == "" && fields[columns[i]] != "" {
				continue
			}
			fields[columns[i]] = value
		}
		records = append(records, recordFromFields(fields))
	}

	return records, nil
}

// ParseJSON reads a JSON array of fund objects. Keys follow the same aliases
// as CSV columns, and numbers may be given as numbers or strings.
func ParseJSON(r io.Reader) ([]domain.FundRecord, error) {
	var rows []map[string]interface{}
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrEmptyDataset
		}
		return nil, fmt.Errorf("failed to decode JSON funds: %w", err)
	}

	records := make([]domain.FundRecord, 0, len(rows))
	for _, row := range rows {
		fields := make(map[string]string, len(row))
		for key, value := range row {
			column := canonicalColumn(key)
			if column == "" || value == nil {
				continue
			}
			switch v := value.(type) {
			case string:
				fields[column] = v
			case float64:
				fields[column] = strconv.FormatFloat(v, 'f', -1, 64)
			default:
				fields[column] = fmt.Sprint(v)
			}
		}
		records = append(records, recordFromFields(fields))
	}

	return records, nil
}

func canonicalColumn(name string) string {
	return columnAliases[strings.ToLower(strings.TrimSpace(name))]
}

func requireColumns(columns []string) error {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[c] = true
	}
	for _, required := range []string{"id", "category"} {
		if !have[required] {
			return fmt.Errorf("dataset is missing required column %q", required)
		}
	}
	return nil
}

func recordFromFields(fields map[string]string) domain.FundRecord {
	return domain.FundRecord{
		ID:            strings.TrimSpace(fields["id"]),
		Name:          strings.TrimSpace(fields["name"]),
		Category:      domain.NormalizeCategory(fields["category"]),
		NAV:           parseMetric(fields["nav"]),
		AUM:           parseMetric(fields["aum"]),
		ExpenseRatio:  parseMetric(fields["expense_ratio"]),
		Returns1Y:     parseMetric(fields["returns_1y"]),
		Returns3Y:     parseMetric(fields["returns_3y"]),
		Returns5Y:     parseMetric(fields["returns_5y"]),
		SharpeRatio:   parseMetric(fields["sharpe_ratio"]),
		Alpha:         parseMetric(fields["alpha"]),
		Beta:          parseMetric(fields["beta"]),
		Sortino:       parseMetric(fields["sortino"]),
		ESGScore:      parseMetric(fields["esg_score"]),
		MinInvestment: parseMetric(fields["min_investment"]),
	}
}

// parseMetric parses a numeric cell. "12.5%", "1,200" and " 3 " are accepted;
// anything else, including NaN and infinities, is absent.
func parseMetric(raw string) *float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
