package view

import (
	"fmt"
	"sort"

	"merchdash/internal/models"
	"merchdash/internal/pages"
)

func (r *Renderer) Analytics(dates models.DateRange, a pages.AnalyticsData) {
	r.printf("Analytics for %s\n", dates)
	r.StatCards(a.Volume, a.SuccessRate)
	if a.CardDistribution != nil {
		r.CardDistribution(*a.CardDistribution)
	}
	if a.PeakTimes != nil {
		r.PeakTimes(*a.PeakTimes)
	}
	if a.Trends != nil {
		r.Trends(*a.Trends)
	}
}

// StatCards renders the headline numbers.
func (r *Renderer) StatCards(v *models.TransactionVolume, s *models.SuccessRate) {
	r.title("Overview")
	t := r.table("Metric", "Value")
	if v != nil {
		t.Append([]string{"Total Transactions", count(v.TotalTransactions)})
		t.Append([]string{"Total Volume", money(v.TotalAmount)})
		t.Append([]string{"Average Amount", money(v.AverageAmount)})
	}
	if s != nil {
		t.Append([]string{"Success Rate", percent(s.SuccessRate)})
		t.Append([]string{"Completed", count(s.CompletedCount)})
		t.Append([]string{"Pending", count(s.PendingCount)})
		t.Append([]string{"Failed", count(s.FailedCount)})
		if s.ReversedCount > 0 {
			t.Append([]string{"Reversed", count(s.ReversedCount)})
		}
	}
	t.Render()
}

func (r *Renderer) CardDistribution(c models.CardDistribution) {
	r.title("Card Distribution")
	shares := c.CardShares()
	if len(shares) == 0 {
		r.Empty("No card data")
		return
	}
	var max float64
	for _, s := range shares {
		if s.Percentage > max {
			max = s.Percentage
		}
	}
	t := r.table("Card", "Count", "Share", "Amount", "")
	for _, s := range shares {
		t.Append([]string{s.CardType, count(s.Count), percent(s.Percentage), money(s.TotalAmount), bar(s.Percentage, max)})
	}
	t.Render()
}

func (r *Renderer) PeakTimes(p models.PeakTimes) {
	r.title("Peak Times")
	r.printf("Peak hour: %02d:00  Peak day: %s\n", p.PeakHour, orDash(p.PeakDay))

	if len(p.HourlyData) > 0 {
		hours := append([]models.HourlyActivity(nil), p.HourlyData...)
		sort.Slice(hours, func(i, j int) bool { return hours[i].Hour < hours[j].Hour })
		var max int64
		for _, h := range hours {
			if h.TransactionCount > max {
				max = h.TransactionCount
			}
		}
		t := r.table("Hour", "Transactions", "Avg Amount", "")
		for _, h := range hours {
			t.Append([]string{fmt.Sprintf("%02d:00", h.Hour), count(h.TransactionCount), money(h.AverageAmount), bar(float64(h.TransactionCount), float64(max))})
		}
		t.Render()
	}

	if len(p.DailyData) > 0 {
		var max int64
		for _, d := range p.DailyData {
			if d.TransactionCount > max {
				max = d.TransactionCount
			}
		}
		t := r.table("Day", "Transactions", "Avg Amount", "")
		for _, d := range p.DailyData {
			t.Append([]string{d.DayOfWeek, count(d.TransactionCount), money(d.AverageAmount), bar(float64(d.TransactionCount), float64(max))})
		}
		t.Render()
	}
}

func (r *Renderer) Trends(tr models.TransactionTrends) {
	r.title("Trends")
	if len(tr.Trends) == 0 {
		r.Empty("No trend data")
		return
	}
	var max int64
	for _, p := range tr.Trends {
		if p.TransactionCount > max {
			max = p.TransactionCount
		}
	}
	t := r.table("Date", "Transactions", "Amount", "Success %", "")
	for _, p := range tr.Trends {
		t.Append([]string{p.Date, count(p.TransactionCount), money(p.TotalAmount), percent(p.SuccessRate), bar(float64(p.TransactionCount), float64(max))})
	}
	t.Render()
}
