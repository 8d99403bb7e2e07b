package view

import (
	"strconv"

	"merchdash/internal/pages"
)

func (r *Renderer) Reports(opts pages.ReportOptions, d pages.ReportData) {
	r.printf("Revenue report for %s\n", opts.Range)

	if p := d.ByPeriod; p != nil {
		r.title("Revenue by Period (" + p.GroupBy + ")")
		t := r.table("Period", "Revenue", "Transactions", "Avg Transaction")
		for _, row := range p.Periods {
			t.Append([]string{row.Period, money(row.Revenue), count(row.TransactionCount), money(row.AverageTransaction)})
		}
		t.Footer("Total", money(p.TotalRevenue), count(p.TotalTransactions), "")
		t.Render()
	}

	if m := d.ByMerchant; m != nil {
		r.title("Revenue by Merchant")
		t := r.table("Rank", "Merchant", "Revenue", "Transactions", "Avg Transaction", "Share")
		for _, row := range m.Merchants {
			t.Append([]string{strconv.Itoa(row.Rank), row.MerchantID, money(row.Revenue), count(row.TransactionCount), money(row.AverageTransaction), percent(row.PercentageOfTotal)})
		}
		t.Render()
		r.printf("Total revenue %s across %d merchants\n", money(m.TotalRevenue), m.TotalMerchants)
	}

	if f := d.Forecast; f != nil {
		r.title("Forecast")
		t := r.table("Period", "Predicted", "Lower", "Upper")
		for _, p := range f.Forecast {
			t.Append([]string{p.Period, money(p.PredictedRevenue), money(p.LowerBound), money(p.UpperBound)})
		}
		t.Render()
		if f.Method != "" {
			r.printf("Method: %s  Confidence: %s\n", f.Method, percent(f.Confidence*100))
		}
	}

	if g := d.Growth; g != nil {
		r.title("Growth " + strconv.Itoa(g.CurrentYear) + " vs " + strconv.Itoa(g.ComparisonYear))
		t := r.table("Month", strconv.Itoa(g.CurrentYear), strconv.Itoa(g.ComparisonYear), "Growth")
		for _, m := range g.MonthlyComparison {
			t.Append([]string{m.MonthName, money(m.CurrentYearRevenue), money(m.PreviousYearRevenue), percent(m.GrowthRate)})
		}
		t.Footer("Total", money(g.CurrentYearTotal), money(g.ComparisonYearTotal), percent(g.OverallGrowthRate))
		t.Render()
	}

	if tp := d.TopPerformers; tp != nil {
		r.title("Top Performers by " + orDash(tp.SortedBy))
		t := r.table("Rank", "Merchant", "Revenue", "Transactions", "Share")
		for i, m := range tp.TopMerchants {
			rank := m.Rank
			if rank == 0 {
				rank = i + 1
			}
			t.Append([]string{strconv.Itoa(rank), m.MerchantID, money(m.Revenue), count(m.TransactionCount), percent(m.PercentageOfTotal)})
		}
		t.Render()
	}
}
