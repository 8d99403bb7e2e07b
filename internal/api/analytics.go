package api

import (
	"context"

	"merchdash/internal/models"
)

func (c *Client) TransactionVolume(ctx context.Context, r models.DateRange) (*models.TransactionVolume, error) {
	var out models.TransactionVolume
	if err := c.Get(ctx, "/analytics/transactions/volume", dateParams(r), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SuccessRate(ctx context.Context, r models.DateRange) (*models.SuccessRate, error) {
	var out models.SuccessRate
	if err := c.Get(ctx, "/analytics/transactions/success-rate", dateParams(r), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TransactionTrends(ctx context.Context, r models.DateRange) (*models.TransactionTrends, error) {
	var out models.TransactionTrends
	if err := c.Get(ctx, "/analytics/transactions/trends", dateParams(r), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PeakTimes(ctx context.Context, r models.DateRange) (*models.PeakTimes, error) {
	var out models.PeakTimes
	if err := c.Get(ctx, "/analytics/transactions/peak-times", dateParams(r), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CardDistribution(ctx context.Context, r models.DateRange) (*models.CardDistribution, error) {
	var out models.CardDistribution
	if err := c.Get(ctx, "/analytics/transactions/card-distribution", dateParams(r), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
