package pages

import (
	"context"
	"sync"
	"time"

	"merchdash/internal/fetch"
	"merchdash/internal/filters"
	"merchdash/internal/metrics"
	"merchdash/internal/models"
	"merchdash/internal/pagination"
)

// Transactions is the state behind the transactions listing: the filter
// state and the last page fetched for it.
type Transactions struct {
	src            TransactionSource
	res            *fetch.Resource[*models.TransactionPage]
	now            func() time.Time
	pinnedMerchant bool

	mu      sync.Mutex
	filters filters.Transaction
}

// NewTransactions starts from the default filters. A non-empty merchantID
// pins the listing to that merchant across resets.
func NewTransactions(src TransactionSource, stats *metrics.FetchStats, now func() time.Time, merchantID string, pageSize int) *Transactions {
	if now == nil {
		now = time.Now
	}
	f := filters.NewTransaction(now())
	f.MerchantID = merchantID
	if pageSize > 0 {
		f.Size = pageSize
	}
	return &Transactions{
		src:            src,
		res:            fetch.New[*models.TransactionPage](stats),
		now:            now,
		pinnedMerchant: merchantID != "",
		filters:        f,
	}
}

func (p *Transactions) Filters() filters.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters
}

// Load fetches the page for the current filters.
func (p *Transactions) Load(ctx context.Context) error {
	f := p.Filters()
	return p.res.Load(ctx, func(ctx context.Context) (*models.TransactionPage, error) {
		return p.src.ListTransactions(ctx, f)
	})
}

// Update applies a filter change and refetches.
func (p *Transactions) Update(ctx context.Context, u filters.Update) error {
	p.mu.Lock()
	p.filters = filters.Apply(p.filters, u)
	p.mu.Unlock()
	return p.Load(ctx)
}

func (p *Transactions) GoTo(ctx context.Context, page int) error {
	return p.Update(ctx, filters.GoToPage(page))
}

// Reset restores the default filters and refetches.
func (p *Transactions) Reset(ctx context.Context) error {
	p.mu.Lock()
	p.filters = filters.Reset(p.filters, p.now(), p.pinnedMerchant)
	p.mu.Unlock()
	return p.Load(ctx)
}

func (p *Transactions) Refetch(ctx context.Context) error {
	return p.res.Refetch(ctx)
}

func (p *Transactions) Snapshot() fetch.Snapshot[*models.TransactionPage] {
	return p.res.Snapshot()
}

// Pagination describes the current page against the last known total.
func (p *Transactions) Pagination() pagination.Descriptor {
	f := p.Filters()
	d := pagination.Descriptor{PageSize: f.Size, Page: f.Page}
	if snap := p.res.Snapshot(); snap.Data != nil {
		d.Total = snap.Data.TotalTransactions
	}
	return d
}
