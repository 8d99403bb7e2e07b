package api

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"merchdash/internal/models"
)

type MerchantQuery struct {
	Search string
	Limit  int
	Offset int
}

func (c *Client) ListMerchants(ctx context.Context, q MerchantQuery) (*models.MerchantList, error) {
	params := url.Values{}
	setIfPositive(params, "limit", q.Limit)
	if q.Offset >= 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	setIfNotEmpty(params, "search", q.Search)

	var out models.MerchantList
	if err := c.Get(ctx, "/merchants", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetMerchant(ctx context.Context, id string) (*models.MerchantStats, error) {
	if id == "" {
		return nil, errors.New("merchant id is required")
	}
	var out models.MerchantStats
	if err := c.Get(ctx, "/merchants/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetMerchantDetails(ctx context.Context, id string) (*models.MerchantDetails, error) {
	if id == "" {
		return nil, errors.New("merchant id is required")
	}
	var out models.MerchantDetails
	if err := c.Get(ctx, "/merchants/"+url.PathEscape(id)+"/details", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateMerchant(ctx context.Context, req models.MerchantRequest) (*models.MerchantStats, error) {
	var out models.MerchantStats
	if err := c.Post(ctx, "/merchants", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMerchant(ctx context.Context, id string, req models.MerchantRequest) (*models.MerchantStats, error) {
	if id == "" {
		return nil, errors.New("merchant id is required")
	}
	var out models.MerchantStats
	if err := c.Put(ctx, "/merchants/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
