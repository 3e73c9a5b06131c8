package funds

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/fundadvisor/internal/domain"
)

func TestParseCSV_Aliases(t *testing.T) {
	input := `id,name,category,aum_cr,expense_ratio,sip_5yr_return,sharpe,alpha,notes
F001,Sample Large Cap Fund,Large_Cap,5000,0.8,10.2,0.8,1.2,ignored
F002,Sample Debt Fund,debt,1200,,n/a,"1,100",-0.5,
`
	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "F001", first.ID)
	assert.Equal(t, "large_cap", first.Category)
	require.NotNil(t, first.AUM)
	assert.Equal(t, 5000.0, *first.AUM)
	require.NotNil(t, first.Returns5Y)
	assert.Equal(t, 10.2, *first.Returns5Y)
	require.NotNil(t, first.SharpeRatio)
	assert.Equal(t, 0.8, *first.SharpeRatio)

	second := records[1]
	assert.Nil(t, second.ExpenseRatio)
	assert.Nil(t, second.Returns5Y)
	require.NotNil(t, second.SharpeRatio)
	assert.Equal(t, 1100.0, *second.SharpeRatio)
	require.NotNil(t, second.Alpha)
	assert.Equal(t, -0.5, *second.Alpha)
}

func TestParseCSV_EmptyAliasCellKeepsValue(t *testing.T) {
	input := `id,category,returns_5y,sip_5yr_return,sharpe_ratio,sharpe
F001,large_cap,10.2,,0.8,
F002,debt,,7.5,,0.3
F003,debt,6,6.5,,
`
	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.NotNil(t, records[0].Returns5Y)
	assert.Equal(t, 10.2, *records[0].Returns5Y)
	require.NotNil(t, records[0].SharpeRatio)
	assert.Equal(t, 0.8, *records[0].SharpeRatio)

	require.NotNil(t, records[1].Returns5Y)
	assert.Equal(t, 7.5, *records[1].Returns5Y)
	require.NotNil(t, records[1].SharpeRatio)
	assert.Equal(t, 0.3, *records[1].SharpeRatio)

	// both filled: the later column wins
	require.NotNil(t, records[2].Returns5Y)
	assert.Equal(t, 6.5, *records[2].Returns5Y)
	assert.Nil(t, records[2].SharpeRatio)
}

func TestParseCSV_MissingRequiredColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("name,returns_5y\nX,10\n"))
	assert.Error(t, err)
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.True(t, errors.Is(err, domain.ErrEmptyDataset))
}

func TestParseJSON(t *testing.T) {
	input := `[
		{"id": "F001", "category": "large_cap", "returns_5y": 10.2, "sharpe": "0.8", "expense_ratio": null},
		{"fund_id": "F002", "category": "debt", "aum_cr": "n/a"}
	]`
	records, err := ParseJSON(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.NotNil(t, records[0].Returns5Y)
	assert.Equal(t, 10.2, *records[0].Returns5Y)
	require.NotNil(t, records[0].SharpeRatio)
	assert.Equal(t, 0.8, *records[0].SharpeRatio)
	assert.Nil(t, records[0].ExpenseRatio)

	assert.Equal(t, "F002", records[1].ID)
	assert.Nil(t, records[1].AUM)
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		input string
		want  *float64
	}{
		{"12.5", domain.Float(12.5)},
		{" 12.5% ", domain.Float(12.5)},
		{"1,200", domain.Float(1200)},
		{"-3", domain.Float(-3)},
		{"", nil},
		{"n/a", nil},
		{"NaN", nil},
		{"Inf", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseMetric(tt.input))
		})
	}
}
