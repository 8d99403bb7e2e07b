package models

import "github.com/shopspring/decimal"

type PeriodRevenue struct {
	Period             string          `json:"period"`
	Revenue            decimal.Decimal `json:"revenue"`
	TransactionCount   int64           `json:"transactionCount"`
	AverageTransaction decimal.Decimal `json:"averageTransaction"`
}

type RevenueByPeriod struct {
	Periods           []PeriodRevenue `json:"periods"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalTransactions int64           `json:"totalTransactions"`
	GroupBy           string          `json:"groupBy"`
}

type MerchantRevenue struct {
	MerchantID         string          `json:"merchantId"`
	Revenue            decimal.Decimal `json:"revenue"`
	TransactionCount   int64           `json:"transactionCount"`
	AverageTransaction decimal.Decimal `json:"averageTransaction"`
	PercentageOfTotal  float64         `json:"percentageOfTotal"`
	Rank               int             `json:"rank"`
}

type RevenueByMerchant struct {
	Merchants      []MerchantRevenue `json:"merchants"`
	TotalRevenue   decimal.Decimal   `json:"totalRevenue"`
	TotalMerchants int               `json:"totalMerchants"`
}

type ForecastPoint struct {
	Period           string          `json:"period"`
	PredictedRevenue decimal.Decimal `json:"predictedRevenue"`
	LowerBound       decimal.Decimal `json:"lowerBound"`
	UpperBound       decimal.Decimal `json:"upperBound"`
}

type RevenueForecast struct {
	Forecast       []ForecastPoint `json:"forecast"`
	HistoricalData []PeriodRevenue `json:"historicalData"`
	Method         string          `json:"method"`
	Confidence     float64         `json:"confidence"`
}

type MonthlyComparison struct {
	Month               int             `json:"month"`
	MonthName           string          `json:"monthName"`
	CurrentYearRevenue  decimal.Decimal `json:"currentYearRevenue"`
	PreviousYearRevenue decimal.Decimal `json:"previousYearRevenue"`
	GrowthRate          float64         `json:"growthRate"`
}

type GrowthAnalysis struct {
	CurrentYear         int                 `json:"currentYear"`
	ComparisonYear      int                 `json:"comparisonYear"`
	OverallGrowthRate   float64             `json:"overallGrowthRate"`
	CurrentYearTotal    decimal.Decimal     `json:"currentYearTotal"`
	ComparisonYearTotal decimal.Decimal     `json:"comparisonYearTotal"`
	MonthlyComparison   []MonthlyComparison `json:"monthlyComparison"`
}

type TopPerformers struct {
	TopMerchants []MerchantRevenue `json:"topMerchants"`
	SortedBy     string            `json:"sortedBy"`
	DateRange    string            `json:"dateRange"`
}
