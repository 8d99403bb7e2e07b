package pages

import (
	"context"
	"sync"

	"merchdash/internal/api"
	"merchdash/internal/fetch"
	"merchdash/internal/filters"
	"merchdash/internal/metrics"
	"merchdash/internal/models"
	"merchdash/internal/pagination"
)

// Merchants is the offset/limit merchant listing.
type Merchants struct {
	src MerchantSource
	res *fetch.Resource[*models.MerchantList]

	mu      sync.Mutex
	filters filters.Merchant
}

func NewMerchants(src MerchantSource, stats *metrics.FetchStats) *Merchants {
	return &Merchants{
		src:     src,
		res:     fetch.New[*models.MerchantList](stats),
		filters: filters.NewMerchant(),
	}
}

func (p *Merchants) Filters() filters.Merchant {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters
}

func (p *Merchants) Load(ctx context.Context) error {
	f := p.Filters()
	return p.res.Load(ctx, func(ctx context.Context) (*models.MerchantList, error) {
		return p.src.ListMerchants(ctx, api.MerchantQuery{Search: f.Search, Limit: f.Limit, Offset: f.Offset})
	})
}

func (p *Merchants) Search(ctx context.Context, term string) error {
	return p.change(ctx, func(f filters.Merchant) filters.Merchant { return f.WithSearch(term) })
}

func (p *Merchants) SetLimit(ctx context.Context, limit int) error {
	return p.change(ctx, func(f filters.Merchant) filters.Merchant { return f.WithLimit(limit) })
}

// GoTo moves to a zero-based page.
func (p *Merchants) GoTo(ctx context.Context, page int) error {
	return p.change(ctx, func(f filters.Merchant) filters.Merchant {
		return f.WithOffset(pagination.OffsetFromPage(page, f.Limit))
	})
}

func (p *Merchants) change(ctx context.Context, fn func(filters.Merchant) filters.Merchant) error {
	p.mu.Lock()
	p.filters = fn(p.filters)
	p.mu.Unlock()
	return p.Load(ctx)
}

func (p *Merchants) Refetch(ctx context.Context) error {
	return p.res.Refetch(ctx)
}

func (p *Merchants) Snapshot() fetch.Snapshot[*models.MerchantList] {
	return p.res.Snapshot()
}

func (p *Merchants) Pagination() pagination.Descriptor {
	f := p.Filters()
	total := 0
	if snap := p.res.Snapshot(); snap.Data != nil {
		total = snap.Data.Pagination.Total
	}
	return pagination.FromOffset(total, f.Limit, f.Offset)
}
