package api

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"merchdash/internal/models"
)

// Drill-down categories served by /charts/drill-down/{category}.
const (
	DrillMerchant = "merchant"
	DrillCardType = "cardtype"
	DrillStatus   = "status"
)

var DrillCategories = []string{DrillMerchant, DrillCardType, DrillStatus}

func (c *Client) LineChart(ctx context.Context, r models.DateRange, metric, groupBy string) (*models.ChartData, error) {
	params := dateParams(r)
	setIfNotEmpty(params, "metric", metric)
	setIfNotEmpty(params, "groupBy", groupBy)
	return c.chart(ctx, "/charts/line/trends", params)
}

func (c *Client) BarChart(ctx context.Context, r models.DateRange, compareBy string) (*models.ChartData, error) {
	params := dateParams(r)
	setIfNotEmpty(params, "compareBy", compareBy)
	return c.chart(ctx, "/charts/bar/comparison", params)
}

func (c *Client) PieChart(ctx context.Context, r models.DateRange, distributeBy string) (*models.ChartData, error) {
	params := dateParams(r)
	setIfNotEmpty(params, "distributeBy", distributeBy)
	return c.chart(ctx, "/charts/pie/distribution", params)
}

func (c *Client) DrillDown(ctx context.Context, category, value string, r models.DateRange) (*models.ChartData, error) {
	if category == "" {
		return nil, errors.New("drill-down category is required")
	}
	params := dateParams(r)
	params.Set("categoryValue", value)
	return c.chart(ctx, "/charts/drill-down/"+url.PathEscape(category), params)
}

// RecentTransactions returns up to limit transactions newer than since. A
// zero since lets the server pick its default window.
func (c *Client) RecentTransactions(ctx context.Context, since time.Time, limit int) ([]models.Transaction, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if !since.IsZero() {
		params.Set("since", since.UTC().Format(time.RFC3339Nano))
	}

	var out []models.Transaction
	if err := c.Get(ctx, "/charts/data/recent", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) chart(ctx context.Context, path string, params url.Values) (*models.ChartData, error) {
	var out models.ChartData
	if err := c.Get(ctx, path, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
