package api

import (
	"context"
	"net/url"
	"strconv"

	"merchdash/internal/models"
)

// Revenue grouping accepted by /reports/revenue/by-period.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// DefaultForecastPeriods is the forecast horizon when none is requested.
const DefaultForecastPeriods = 7

func (c *Client) RevenueByPeriod(ctx context.Context, r models.DateRange, period string) (*models.RevenueByPeriod, error) {
	params := dateParams(r)
	setIfNotEmpty(params, "period", period)

	var out models.RevenueByPeriod
	if err := c.Get(ctx, "/reports/revenue/by-period", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RevenueByMerchant(ctx context.Context, r models.DateRange, limit int) (*models.RevenueByMerchant, error) {
	params := dateParams(r)
	setIfPositive(params, "limit", limit)

	var out models.RevenueByMerchant
	if err := c.Get(ctx, "/reports/revenue/by-merchant", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RevenueForecast(ctx context.Context, periods int) (*models.RevenueForecast, error) {
	if periods <= 0 {
		periods = DefaultForecastPeriods
	}
	params := url.Values{}
	params.Set("periods", strconv.Itoa(periods))

	var out models.RevenueForecast
	if err := c.Get(ctx, "/reports/revenue/forecast", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GrowthAnalysis compares two calendar years. Zero years are left for the
// server to default.
func (c *Client) GrowthAnalysis(ctx context.Context, currentYear, comparisonYear int) (*models.GrowthAnalysis, error) {
	params := url.Values{}
	setIfPositive(params, "currentYear", currentYear)
	setIfPositive(params, "comparisonYear", comparisonYear)

	var out models.GrowthAnalysis
	if err := c.Get(ctx, "/reports/revenue/growth", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TopPerformers(ctx context.Context, r models.DateRange, limit int, sortBy string) (*models.TopPerformers, error) {
	params := dateParams(r)
	setIfPositive(params, "limit", limit)
	setIfNotEmpty(params, "sortBy", sortBy)

	var out models.TopPerformers
	if err := c.Get(ctx, "/reports/merchants/top-performers", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
