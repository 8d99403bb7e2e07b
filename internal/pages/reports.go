package pages

import (
	"context"
	"sync"
	"time"

	"merchdash/internal/api"
	"merchdash/internal/fetch"
	"merchdash/internal/metrics"
	"merchdash/internal/models"
)

// ReportOptions parameterises the revenue report.
type ReportOptions struct {
	Range           models.DateRange
	Period          string
	MerchantLimit   int
	ForecastPeriods int
	CurrentYear     int
	ComparisonYear  int
	TopLimit        int
	SortBy          string
}

// DefaultReportOptions mirrors the dashboard defaults: daily revenue, top 10
// merchants by revenue, a 7 period forecast and the top 5 performers.
func DefaultReportOptions(now time.Time) ReportOptions {
	return ReportOptions{
		Range:           models.LastDays(now, models.DefaultWindow),
		Period:          api.PeriodDaily,
		MerchantLimit:   10,
		ForecastPeriods: api.DefaultForecastPeriods,
		TopLimit:        5,
		SortBy:          "revenue",
	}
}

type ReportData struct {
	ByPeriod      *models.RevenueByPeriod
	ByMerchant    *models.RevenueByMerchant
	Forecast      *models.RevenueForecast
	Growth        *models.GrowthAnalysis
	TopPerformers *models.TopPerformers
}

type Reports struct {
	src ReportSource
	res *fetch.Resource[ReportData]

	mu   sync.Mutex
	opts ReportOptions
}

func NewReports(src ReportSource, stats *metrics.FetchStats, opts ReportOptions) *Reports {
	return &Reports{src: src, res: fetch.New[ReportData](stats), opts: opts}
}

func (p *Reports) Options() ReportOptions {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opts
}

func (p *Reports) SetOptions(ctx context.Context, opts ReportOptions) error {
	if err := opts.Range.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	p.opts = opts
	p.mu.Unlock()
	return p.Load(ctx)
}

// Load fetches every report section in parallel and commits them together.
func (p *Reports) Load(ctx context.Context) error {
	o := p.Options()
	return p.res.Load(ctx, func(ctx context.Context) (ReportData, error) {
		var out ReportData
		err := fetch.All(ctx,
			func(ctx context.Context) (err error) {
				out.ByPeriod, err = p.src.RevenueByPeriod(ctx, o.Range, o.Period)
				return err
			},
			func(ctx context.Context) (err error) {
				out.ByMerchant, err = p.src.RevenueByMerchant(ctx, o.Range, o.MerchantLimit)
				return err
			},
			func(ctx context.Context) (err error) {
				out.Forecast, err = p.src.RevenueForecast(ctx, o.ForecastPeriods)
				return err
			},
			func(ctx context.Context) (err error) {
				out.Growth, err = p.src.GrowthAnalysis(ctx, o.CurrentYear, o.ComparisonYear)
				return err
			},
			func(ctx context.Context) (err error) {
				out.TopPerformers, err = p.src.TopPerformers(ctx, o.Range, o.TopLimit, o.SortBy)
				return err
			},
		)
		return out, err
	})
}

func (p *Reports) Refetch(ctx context.Context) error {
	return p.res.Refetch(ctx)
}

func (p *Reports) Snapshot() fetch.Snapshot[ReportData] {
	return p.res.Snapshot()
}
