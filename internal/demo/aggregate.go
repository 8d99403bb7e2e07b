package demo

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"merchdash/internal/models"
)

// bucket accumulates one group of transactions. Revenue counts completed
// transactions only; amount counts all of them.
type bucket struct {
	key       string
	count     int64
	completed int64
	pending   int64
	failed    int64
	reversed  int64
	amount    decimal.Decimal
	revenue   decimal.Decimal
}

func (b *bucket) add(t txn) {
	b.count++
	b.amount = b.amount.Add(t.Amount)
	switch t.Status {
	case models.StatusCompleted:
		b.completed++
		b.revenue = b.revenue.Add(t.Amount)
	case models.StatusPending:
		b.pending++
	case models.StatusFailed:
		b.failed++
	case models.StatusReversed:
		b.reversed++
	}
}

func (b *bucket) averageAmount() decimal.Decimal {
	if b.count == 0 {
		return decimal.Zero
	}
	return b.amount.Div(decimal.NewFromInt(b.count)).Round(2)
}

func (b *bucket) averageRevenue() decimal.Decimal {
	if b.completed == 0 {
		return decimal.Zero
	}
	return b.revenue.Div(decimal.NewFromInt(b.completed)).Round(2)
}

func (b *bucket) successRate() float64 {
	return round2(models.Percent(b.completed, b.count))
}

// groupBy buckets txns by key, keeping the order in which keys first appear.
func groupBy(txns []txn, key func(txn) string) []*bucket {
	index := make(map[string]*bucket)
	var out []*bucket
	for _, t := range txns {
		k := key(t)
		b, ok := index[k]
		if !ok {
			b = &bucket{key: k, amount: decimal.Zero, revenue: decimal.Zero}
			index[k] = b
			out = append(out, b)
		}
		b.add(t)
	}
	return out
}

func total(txns []txn) *bucket {
	b := &bucket{amount: decimal.Zero, revenue: decimal.Zero}
	for _, t := range txns {
		b.add(t)
	}
	return b
}

// periodKey labels t by day, ISO week or month.
func periodKey(t time.Time, period string) string {
	switch period {
	case "weekly", "week":
		y, w := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	case "monthly", "month":
		return t.Format("2006-01")
	default:
		return t.Format(models.DateLayout)
	}
}

func byPeriod(period string) func(txn) string {
	return func(t txn) string { return periodKey(t.at, period) }
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func volume(txns []txn, r models.DateRange) models.TransactionVolume {
	b := total(txns)
	return models.TransactionVolume{
		TotalTransactions: b.count,
		TotalAmount:       b.amount,
		AverageAmount:     b.averageAmount(),
		Period:            r.String(),
	}
}

func successRate(txns []txn) models.SuccessRate {
	b := total(txns)
	return models.SuccessRate{
		TotalTransactions: b.count,
		CompletedCount:    b.completed,
		PendingCount:      b.pending,
		FailedCount:       b.failed,
		ReversedCount:     b.reversed,
		SuccessRate:       b.successRate(),
		StatusBreakdown: map[string]int64{
			string(models.StatusCompleted): b.completed,
			string(models.StatusPending):   b.pending,
			string(models.StatusFailed):    b.failed,
			string(models.StatusReversed):  b.reversed,
		},
	}
}

func trends(txns []txn, r models.DateRange) models.TransactionTrends {
	out := models.TransactionTrends{
		Trends:    []models.TrendPoint{},
		Period:    "daily",
		StartDate: r.StartDate(),
		EndDate:   r.EndDate(),
	}
	for _, b := range groupBy(txns, byPeriod("daily")) {
		out.Trends = append(out.Trends, models.TrendPoint{
			Date:             b.key,
			TransactionCount: b.count,
			TotalAmount:      b.amount,
			SuccessRate:      b.successRate(),
		})
	}
	return out
}

func peakTimes(txns []txn) models.PeakTimes {
	var hours [24]bucket
	var days [7]bucket
	for _, t := range txns {
		hours[t.at.Hour()].add(t)
		days[t.at.Weekday()].add(t)
	}

	out := models.PeakTimes{}
	var peakHour, peakDay int64 = -1, -1
	for h := range hours {
		out.HourlyData = append(out.HourlyData, models.HourlyActivity{
			Hour:             h,
			TransactionCount: hours[h].count,
			AverageAmount:    hours[h].averageAmount(),
		})
		if hours[h].count > peakHour {
			peakHour = hours[h].count
			out.PeakHour = h
		}
	}
	// Monday first
	for i := 1; i <= 7; i++ {
		d := time.Weekday(i % 7)
		out.DailyData = append(out.DailyData, models.DailyActivity{
			DayOfWeek:        strings.ToUpper(d.String()),
			TransactionCount: days[d].count,
			AverageAmount:    days[d].averageAmount(),
		})
		if days[d].count > peakDay {
			peakDay = days[d].count
			out.PeakDay = strings.ToUpper(d.String())
		}
	}
	return out
}

func cardDistribution(txns []txn, r models.DateRange) models.CardDistribution {
	groups := groupBy(txns, func(t txn) string { return t.CardType })
	sort.Slice(groups, func(i, j int) bool { return groups[i].count > groups[j].count })

	out := models.CardDistribution{
		Distribution:      []models.CardTypeShare{},
		TotalTransactions: int64(len(txns)),
		Period:            r.String(),
	}
	for _, b := range groups {
		out.Distribution = append(out.Distribution, models.CardTypeShare{
			CardType:    b.key,
			Count:       b.count,
			Percentage:  round2(models.Percent(b.count, out.TotalTransactions)),
			TotalAmount: b.amount,
		})
	}
	return out
}

func revenueByPeriod(txns []txn, period string) models.RevenueByPeriod {
	b := total(txns)
	out := models.RevenueByPeriod{
		Periods:           periodRevenue(txns, period),
		TotalRevenue:      b.revenue,
		TotalTransactions: b.completed,
		GroupBy:           period,
	}
	return out
}

func periodRevenue(txns []txn, period string) []models.PeriodRevenue {
	out := []models.PeriodRevenue{}
	for _, b := range groupBy(txns, byPeriod(period)) {
		out = append(out, models.PeriodRevenue{
			Period:             b.key,
			Revenue:            b.revenue,
			TransactionCount:   b.completed,
			AverageTransaction: b.averageRevenue(),
		})
	}
	return out
}

// merchantRanking returns every merchant's revenue in rank order. sortBy is
// revenue, transactions or successRate.
func merchantRanking(txns []txn, sortBy string) []models.MerchantRevenue {
	groups := groupBy(txns, func(t txn) string { return t.MerchantID })
	less := func(a, b *bucket) bool { return a.revenue.GreaterThan(b.revenue) }
	switch sortBy {
	case "transactions":
		less = func(a, b *bucket) bool { return a.count > b.count }
	case "successRate":
		less = func(a, b *bucket) bool { return a.successRate() > b.successRate() }
	}
	sort.SliceStable(groups, func(i, j int) bool { return less(groups[i], groups[j]) })

	all := total(txns).revenue
	out := make([]models.MerchantRevenue, 0, len(groups))
	for i, b := range groups {
		share := 0.0
		if all.IsPositive() {
			share, _ = b.revenue.Div(all).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		}
		out = append(out, models.MerchantRevenue{
			MerchantID:         b.key,
			Revenue:            b.revenue,
			TransactionCount:   b.count,
			AverageTransaction: b.averageRevenue(),
			PercentageOfTotal:  share,
			Rank:               i + 1,
		})
	}
	return out
}

func revenueByMerchant(txns []txn, limit int) models.RevenueByMerchant {
	ranked := merchantRanking(txns, "revenue")
	out := models.RevenueByMerchant{
		TotalRevenue:   total(txns).revenue,
		TotalMerchants: len(ranked),
	}
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out.Merchants = ranked
	return out
}

const (
	forecastWindow     = 7
	forecastConfidence = 0.75
)

// forecast projects the moving average of the last forecastWindow periods
// forward, bounded by one standard deviation.
func forecast(history []models.PeriodRevenue, periods int) models.RevenueForecast {
	out := models.RevenueForecast{
		Forecast:       []models.ForecastPoint{},
		HistoricalData: history,
		Method:         "moving_average",
		Confidence:     forecastConfidence,
	}
	if len(history) == 0 {
		return out
	}

	window := history[max(0, len(history)-forecastWindow):]
	sum := decimal.Zero
	for _, p := range window {
		sum = sum.Add(p.Revenue)
	}
	n := decimal.NewFromInt(int64(len(window)))
	avg := sum.Div(n).Round(2)

	variance := decimal.Zero
	for _, p := range window {
		d := p.Revenue.Sub(avg)
		variance = variance.Add(d.Mul(d))
	}
	v, _ := variance.Div(n).Float64()
	stdDev := decimal.NewFromFloat(math.Sqrt(v)).Round(2)

	last, err := time.Parse(models.DateLayout, history[len(history)-1].Period)
	if err != nil {
		return out
	}
	lower := decimal.Max(decimal.Zero, avg.Sub(stdDev))
	for i := 1; i <= periods; i++ {
		out.Forecast = append(out.Forecast, models.ForecastPoint{
			Period:           last.AddDate(0, 0, i).Format(models.DateLayout),
			PredictedRevenue: avg,
			LowerBound:       lower,
			UpperBound:       avg.Add(stdDev),
		})
	}
	return out
}

func growthRate(current, previous decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}
	f, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return f
}

func growth(txns []txn, currentYear, comparisonYear int) models.GrowthAnalysis {
	var cur, prev [13]decimal.Decimal
	for i := range cur {
		cur[i], prev[i] = decimal.Zero, decimal.Zero
	}
	for _, t := range txns {
		if t.Status != models.StatusCompleted {
			continue
		}
		switch t.at.Year() {
		case currentYear:
			cur[t.at.Month()] = cur[t.at.Month()].Add(t.Amount)
		case comparisonYear:
			prev[t.at.Month()] = prev[t.at.Month()].Add(t.Amount)
		}
	}

	out := models.GrowthAnalysis{
		CurrentYear:         currentYear,
		ComparisonYear:      comparisonYear,
		CurrentYearTotal:    decimal.Zero,
		ComparisonYearTotal: decimal.Zero,
	}
	for m := time.January; m <= time.December; m++ {
		out.CurrentYearTotal = out.CurrentYearTotal.Add(cur[m])
		out.ComparisonYearTotal = out.ComparisonYearTotal.Add(prev[m])
		out.MonthlyComparison = append(out.MonthlyComparison, models.MonthlyComparison{
			Month:               int(m),
			MonthName:           m.String(),
			CurrentYearRevenue:  cur[m],
			PreviousYearRevenue: prev[m],
			GrowthRate:          growthRate(cur[m], prev[m]),
		})
	}
	out.OverallGrowthRate = growthRate(out.CurrentYearTotal, out.ComparisonYearTotal)
	return out
}

func topPerformers(txns []txn, r models.DateRange, limit int, sortBy string) models.TopPerformers {
	ranked := merchantRanking(txns, sortBy)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return models.TopPerformers{
		TopMerchants: ranked,
		SortedBy:     sortBy,
		DateRange:    r.String(),
	}
}

func floats(groups []*bucket, value func(*bucket) float64) []float64 {
	out := make([]float64, len(groups))
	for i, b := range groups {
		out[i] = value(b)
	}
	return out
}

func keys(groups []*bucket) []string {
	out := make([]string, len(groups))
	for i, b := range groups {
		out[i] = b.key
	}
	return out
}

func asFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func lineChart(txns []txn, metric, group string) models.ChartData {
	groups := groupBy(txns, byPeriod(group))
	ds := models.ChartDataset{Label: "Revenue", Data: floats(groups, func(b *bucket) float64 { return asFloat(b.revenue) })}
	switch metric {
	case "volume", "count":
		ds = models.ChartDataset{Label: "Transaction Count", Data: floats(groups, func(b *bucket) float64 { return float64(b.count) })}
	case "avgamount", "average":
		ds = models.ChartDataset{Label: "Average Amount", Data: floats(groups, func(b *bucket) float64 { return asFloat(b.averageAmount()) })}
	}
	return models.ChartData{Labels: keys(groups), Datasets: []models.ChartDataset{ds}, ChartType: "line"}
}

// categoryKey picks the field a bar, pie or drill-down chart groups on.
func categoryKey(category string) (func(txn) string, bool) {
	switch category {
	case "cardtype", "card":
		return func(t txn) string { return t.CardType }, true
	case "status":
		return func(t txn) string { return string(t.Status) }, true
	case "merchant":
		return func(t txn) string { return t.MerchantID }, true
	}
	return nil, false
}

func barChart(txns []txn, key func(txn) string) models.ChartData {
	groups := groupBy(txns, key)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].key < groups[j].key })
	return models.ChartData{
		Labels: keys(groups),
		Datasets: []models.ChartDataset{
			{Label: "Revenue", Data: floats(groups, func(b *bucket) float64 { return asFloat(b.revenue) })},
			{Label: "Transactions", Data: floats(groups, func(b *bucket) float64 { return float64(b.count) })},
		},
		ChartType: "bar",
	}
}

func pieChart(txns []txn, key func(txn) string) models.ChartData {
	groups := groupBy(txns, key)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].count > groups[j].count })
	return models.ChartData{
		Labels:    keys(groups),
		Datasets:  []models.ChartDataset{{Label: "Transactions", Data: floats(groups, func(b *bucket) float64 { return float64(b.count) })}},
		ChartType: "pie",
	}
}

// drillDown breaks the transactions matching value down by day.
func drillDown(txns []txn, key func(txn) string, value string) models.ChartData {
	var matched []txn
	for _, t := range txns {
		if strings.EqualFold(key(t), value) {
			matched = append(matched, t)
		}
	}
	groups := groupBy(matched, byPeriod("daily"))
	return models.ChartData{
		Labels: keys(groups),
		Datasets: []models.ChartDataset{
			{Label: "Revenue", Data: floats(groups, func(b *bucket) float64 { return asFloat(b.revenue) })},
			{Label: "Count", Data: floats(groups, func(b *bucket) float64 { return float64(b.count) })},
		},
		ChartType: "line",
	}
}
