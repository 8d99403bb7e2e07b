package pages

import (
	"context"
	"sync"
	"time"

	"merchdash/internal/fetch"
	"merchdash/internal/metrics"
	"merchdash/internal/models"
)

// AnalyticsData holds the five analytics panels. They are always replaced
// together.
type AnalyticsData struct {
	Volume           *models.TransactionVolume
	SuccessRate      *models.SuccessRate
	Trends           *models.TransactionTrends
	PeakTimes        *models.PeakTimes
	CardDistribution *models.CardDistribution
}

type Analytics struct {
	src AnalyticsSource
	res *fetch.Resource[AnalyticsData]

	mu    sync.Mutex
	dates models.DateRange
}

func NewAnalytics(src AnalyticsSource, stats *metrics.FetchStats, now func() time.Time) *Analytics {
	if now == nil {
		now = time.Now
	}
	return &Analytics{
		src:   src,
		res:   fetch.New[AnalyticsData](stats),
		dates: models.LastDays(now(), models.DefaultWindow),
	}
}

func (p *Analytics) DateRange() models.DateRange {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dates
}

// SetDateRange validates r and refetches when it differs from the current
// range.
func (p *Analytics) SetDateRange(ctx context.Context, r models.DateRange) error {
	if err := r.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	changed := !p.dates.Equal(r)
	p.dates = r
	p.mu.Unlock()
	if !changed && p.res.Snapshot().Loaded {
		return nil
	}
	return p.Load(ctx)
}

// Load fetches all five panels in parallel. Any failure leaves every panel
// at its previous value.
func (p *Analytics) Load(ctx context.Context) error {
	r := p.DateRange()
	return p.res.Load(ctx, func(ctx context.Context) (AnalyticsData, error) {
		var out AnalyticsData
		err := fetch.All(ctx,
			func(ctx context.Context) (err error) {
				out.Volume, err = p.src.TransactionVolume(ctx, r)
				return err
			},
			func(ctx context.Context) (err error) {
				out.SuccessRate, err = p.src.SuccessRate(ctx, r)
				return err
			},
			func(ctx context.Context) (err error) {
				out.Trends, err = p.src.TransactionTrends(ctx, r)
				return err
			},
			func(ctx context.Context) (err error) {
				out.PeakTimes, err = p.src.PeakTimes(ctx, r)
				return err
			},
			func(ctx context.Context) (err error) {
				out.CardDistribution, err = p.src.CardDistribution(ctx, r)
				return err
			},
		)
		return out, err
	})
}

func (p *Analytics) Refetch(ctx context.Context) error {
	return p.res.Refetch(ctx)
}

func (p *Analytics) Snapshot() fetch.Snapshot[AnalyticsData] {
	return p.res.Snapshot()
}
