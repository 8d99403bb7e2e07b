package view

import (
	"strconv"

	"merchdash/internal/models"
)

// Chart renders any chart payload as a table with one column per dataset and
// a proportional bar for the first dataset. Pie charts also get each slice's
// share of the total.
func (r *Renderer) Chart(title string, c *models.ChartData) {
	r.title(title)
	if c == nil || len(c.Labels) == 0 || len(c.Datasets) == 0 {
		r.Empty("No chart data")
		return
	}

	pie := c.ChartType == "pie" || c.ChartType == "doughnut"
	var total float64
	if pie {
		for i := range c.Labels {
			total += c.Value(0, i)
		}
	}

	header := []string{"Label"}
	for _, ds := range c.Datasets {
		header = append(header, orDash(ds.Label))
	}
	if pie {
		header = append(header, "Share")
	}
	header = append(header, "")

	max := c.Max()
	t := r.table(header...)
	for i, label := range c.Labels {
		row := []string{label}
		for d := range c.Datasets {
			row = append(row, formatValue(c.Value(d, i)))
		}
		if pie {
			share := 0.0
			if total > 0 {
				share = c.Value(0, i) / total * 100
			}
			row = append(row, percent(share))
		}
		row = append(row, bar(c.Value(0, i), max))
		t.Append(row)
	}
	t.Render()
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return count(int64(v))
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
