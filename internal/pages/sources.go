package pages

import (
	"context"

	"merchdash/internal/api"
	"merchdash/internal/filters"
	"merchdash/internal/models"
)

// The page containers depend on these narrow views of *api.Client.

type TransactionSource interface {
	ListTransactions(ctx context.Context, f filters.Transaction) (*models.TransactionPage, error)
}

type MerchantSource interface {
	ListMerchants(ctx context.Context, q api.MerchantQuery) (*models.MerchantList, error)
	GetMerchantDetails(ctx context.Context, id string) (*models.MerchantDetails, error)
}

type AnalyticsSource interface {
	TransactionVolume(ctx context.Context, r models.DateRange) (*models.TransactionVolume, error)
	SuccessRate(ctx context.Context, r models.DateRange) (*models.SuccessRate, error)
	TransactionTrends(ctx context.Context, r models.DateRange) (*models.TransactionTrends, error)
	PeakTimes(ctx context.Context, r models.DateRange) (*models.PeakTimes, error)
	CardDistribution(ctx context.Context, r models.DateRange) (*models.CardDistribution, error)
}

type ReportSource interface {
	RevenueByPeriod(ctx context.Context, r models.DateRange, period string) (*models.RevenueByPeriod, error)
	RevenueByMerchant(ctx context.Context, r models.DateRange, limit int) (*models.RevenueByMerchant, error)
	RevenueForecast(ctx context.Context, periods int) (*models.RevenueForecast, error)
	GrowthAnalysis(ctx context.Context, currentYear, comparisonYear int) (*models.GrowthAnalysis, error)
	TopPerformers(ctx context.Context, r models.DateRange, limit int, sortBy string) (*models.TopPerformers, error)
}

type ChartSource interface {
	LineChart(ctx context.Context, r models.DateRange, metric, groupBy string) (*models.ChartData, error)
	BarChart(ctx context.Context, r models.DateRange, compareBy string) (*models.ChartData, error)
	PieChart(ctx context.Context, r models.DateRange, distributeBy string) (*models.ChartData, error)
	DrillDown(ctx context.Context, category, value string, r models.DateRange) (*models.ChartData, error)
}

var (
	_ TransactionSource = (*api.Client)(nil)
	_ MerchantSource    = (*api.Client)(nil)
	_ AnalyticsSource   = (*api.Client)(nil)
	_ ReportSource      = (*api.Client)(nil)
	_ ChartSource       = (*api.Client)(nil)
)
