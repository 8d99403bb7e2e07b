package api

import (
	"context"
	"strconv"

	"merchdash/internal/filters"
	"merchdash/internal/models"
)

// ListTransactions fetches one zero-based page of /transactions for the
// given filter state.
func (c *Client) ListTransactions(ctx context.Context, f filters.Transaction) (*models.TransactionPage, error) {
	params := dateParams(f.Range)
	params.Set("page", strconv.Itoa(f.Page))
	params.Set("size", strconv.Itoa(f.Size))
	setIfNotEmpty(params, "merchantId", f.MerchantID)
	setIfNotEmpty(params, "status", string(f.Status))
	setIfNotEmpty(params, "search", f.Search)

	var out models.TransactionPage
	if err := c.Get(ctx, "/transactions", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
