package allocation

import (
	"fmt"
	"strings"

	"github.com/vicanso/go-charts/v2"

	"github.com/aristath/fundadvisor/internal/domain"
)

// RenderChart draws the allocation as a PNG pie chart.
func RenderChart(allocation domain.CategoryAllocation, title string) ([]byte, error) {
	if len(allocation) == 0 {
		return nil, fmt.Errorf("no allocation to render")
	}

	var values []float64
	var labels []string
	for _, category := range allocation.Categories() {
		entry := allocation[category]
		values = append(values, entry.Percentage)
		labels = append(labels, fmt.Sprintf("%s (%.0f%%)", displayName(category), entry.Percentage))
	}

	if title == "" {
		title = "Suggested Allocation"
	}

	p, err := charts.PieRender(
		values,
		charts.TitleTextOptionFunc(title),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: labels,
			Top:  charts.PositionTop,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(800),
		charts.HeightOptionFunc(600),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render allocation chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode allocation chart: %w", err)
	}
	return buf, nil
}

// displayName turns "large_cap" into "Large Cap".
func displayName(category string) string {
	words := strings.Fields(strings.ReplaceAll(category, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
