package pages

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchdash/internal/api"
	"merchdash/internal/fetch"
	"merchdash/internal/filters"
	"merchdash/internal/metrics"
	"merchdash/internal/models"
)

var fixedNow = time.Date(2026, 5, 20, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fakeAPI struct {
	mu         sync.Mutex
	txnCalls   []filters.Transaction
	merchCalls []api.MerchantQuery
	failWith   error
	failPath   string
	volume     int64
	drillCalls int
}

func (f *fakeAPI) fail(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil && (f.failPath == "" || f.failPath == path) {
		return f.failWith
	}
	return nil
}

func (f *fakeAPI) ListTransactions(_ context.Context, flt filters.Transaction) (*models.TransactionPage, error) {
	f.mu.Lock()
	f.txnCalls = append(f.txnCalls, flt)
	f.mu.Unlock()
	if err := f.fail("transactions"); err != nil {
		return nil, err
	}
	return &models.TransactionPage{TotalTransactions: 95, Page: flt.Page, Size: flt.Size, TotalPages: 5}, nil
}

func (f *fakeAPI) ListMerchants(_ context.Context, q api.MerchantQuery) (*models.MerchantList, error) {
	f.mu.Lock()
	f.merchCalls = append(f.merchCalls, q)
	f.mu.Unlock()
	if err := f.fail("merchants"); err != nil {
		return nil, err
	}
	return &models.MerchantList{Pagination: models.PaginationInfo{Total: 42, Limit: q.Limit, Offset: q.Offset}}, nil
}

func (f *fakeAPI) GetMerchantDetails(_ context.Context, id string) (*models.MerchantDetails, error) {
	if err := f.fail("details"); err != nil {
		return nil, err
	}
	return &models.MerchantDetails{MerchantStats: models.MerchantStats{MerchantID: id}, BusinessName: "Acme"}, nil
}

func (f *fakeAPI) TransactionVolume(context.Context, models.DateRange) (*models.TransactionVolume, error) {
	if err := f.fail("volume"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.TransactionVolume{TotalTransactions: f.volume}, nil
}

func (f *fakeAPI) SuccessRate(context.Context, models.DateRange) (*models.SuccessRate, error) {
	if err := f.fail("success-rate"); err != nil {
		return nil, err
	}
	return &models.SuccessRate{SuccessRate: 97.5}, nil
}

func (f *fakeAPI) TransactionTrends(context.Context, models.DateRange) (*models.TransactionTrends, error) {
	if err := f.fail("trends"); err != nil {
		return nil, err
	}
	return &models.TransactionTrends{Period: "daily"}, nil
}

func (f *fakeAPI) PeakTimes(context.Context, models.DateRange) (*models.PeakTimes, error) {
	if err := f.fail("peak-times"); err != nil {
		return nil, err
	}
	return &models.PeakTimes{PeakHour: 13}, nil
}

func (f *fakeAPI) CardDistribution(context.Context, models.DateRange) (*models.CardDistribution, error) {
	if err := f.fail("card-distribution"); err != nil {
		return nil, err
	}
	return &models.CardDistribution{TotalTransactions: 10}, nil
}

func (f *fakeAPI) RevenueByPeriod(_ context.Context, _ models.DateRange, period string) (*models.RevenueByPeriod, error) {
	if err := f.fail("by-period"); err != nil {
		return nil, err
	}
	return &models.RevenueByPeriod{GroupBy: period}, nil
}

func (f *fakeAPI) RevenueByMerchant(_ context.Context, _ models.DateRange, limit int) (*models.RevenueByMerchant, error) {
	if err := f.fail("by-merchant"); err != nil {
		return nil, err
	}
	return &models.RevenueByMerchant{TotalMerchants: limit}, nil
}

func (f *fakeAPI) RevenueForecast(_ context.Context, periods int) (*models.RevenueForecast, error) {
	if err := f.fail("forecast"); err != nil {
		return nil, err
	}
	return &models.RevenueForecast{Forecast: make([]models.ForecastPoint, periods)}, nil
}

func (f *fakeAPI) GrowthAnalysis(_ context.Context, current, comparison int) (*models.GrowthAnalysis, error) {
	if err := f.fail("growth"); err != nil {
		return nil, err
	}
	return &models.GrowthAnalysis{CurrentYear: current, ComparisonYear: comparison}, nil
}

func (f *fakeAPI) TopPerformers(_ context.Context, _ models.DateRange, _ int, sortBy string) (*models.TopPerformers, error) {
	if err := f.fail("top-performers"); err != nil {
		return nil, err
	}
	return &models.TopPerformers{SortedBy: sortBy}, nil
}

func (f *fakeAPI) LineChart(_ context.Context, _ models.DateRange, metric, _ string) (*models.ChartData, error) {
	return &models.ChartData{ChartType: "line:" + metric}, nil
}

func (f *fakeAPI) BarChart(_ context.Context, _ models.DateRange, compareBy string) (*models.ChartData, error) {
	return &models.ChartData{ChartType: "bar:" + compareBy}, nil
}

func (f *fakeAPI) PieChart(_ context.Context, _ models.DateRange, distributeBy string) (*models.ChartData, error) {
	return &models.ChartData{ChartType: "pie:" + distributeBy}, nil
}

func (f *fakeAPI) DrillDown(_ context.Context, category, value string, _ models.DateRange) (*models.ChartData, error) {
	f.mu.Lock()
	f.drillCalls++
	f.mu.Unlock()
	if err := f.fail("drill-down"); err != nil {
		return nil, err
	}
	return &models.ChartData{Labels: []string{category + "=" + value}}, nil
}

func TestTransactionsFilterChangeResetsPage(t *testing.T) {
	src := &fakeAPI{}
	p := NewTransactions(src, metrics.NewFetchStats(), clock, "", 0)

	require.NoError(t, p.Load(context.Background()))
	require.NoError(t, p.GoTo(context.Background(), 3))
	assert.Equal(t, 3, p.Filters().Page)

	failed := models.StatusFailed
	require.NoError(t, p.Update(context.Background(), filters.Update{Status: &failed}))
	assert.Equal(t, 0, p.Filters().Page)
	assert.Equal(t, models.StatusFailed, p.Filters().Status)

	require.Len(t, src.txnCalls, 3)
	assert.Equal(t, 3, src.txnCalls[1].Page)
	assert.Equal(t, 0, src.txnCalls[2].Page)
	assert.Equal(t, models.StatusFailed, src.txnCalls[2].Status)
}

func TestTransactionsPagination(t *testing.T) {
	p := NewTransactions(&fakeAPI{}, nil, clock, "", 20)
	assert.Equal(t, 0, p.Pagination().Total)

	require.NoError(t, p.GoTo(context.Background(), 2))
	d := p.Pagination()
	assert.Equal(t, 95, d.Total)
	assert.Equal(t, 5, d.TotalPages())
	first, last := d.Range()
	assert.Equal(t, 41, first)
	assert.Equal(t, 60, last)
}

func TestTransactionsResetKeepsPinnedMerchant(t *testing.T) {
	src := &fakeAPI{}
	p := NewTransactions(src, nil, clock, "MCH-00001", 50)

	search := "visa"
	require.NoError(t, p.Update(context.Background(), filters.Update{Search: &search}))
	require.NoError(t, p.Reset(context.Background()))

	f := p.Filters()
	assert.Equal(t, "MCH-00001", f.MerchantID)
	assert.Equal(t, "", f.Search)
	assert.Equal(t, 50, f.Size)
	assert.Equal(t, "2026-05-20", f.Range.EndDate())
	assert.Equal(t, "2026-04-20", f.Range.StartDate())
}

func TestTransactionsFailureKeepsPreviousPage(t *testing.T) {
	src := &fakeAPI{}
	p := NewTransactions(src, nil, clock, "", 0)
	require.NoError(t, p.Load(context.Background()))

	src.failWith = &api.Error{StatusCode: 500, Message: "Internal error"}
	require.Error(t, p.Refetch(context.Background()))

	snap := p.Snapshot()
	require.NotNil(t, snap.Data)
	assert.Equal(t, 95, snap.Data.TotalTransactions)
	assert.Equal(t, "Internal error", snap.Err)
}

func TestMerchantsSearchResetsOffset(t *testing.T) {
	src := &fakeAPI{}
	p := NewMerchants(src, nil)

	require.NoError(t, p.GoTo(context.Background(), 2))
	assert.Equal(t, 20, p.Filters().Offset)
	assert.Equal(t, 2, p.Pagination().Page)

	require.NoError(t, p.Search(context.Background(), "cafe"))
	assert.Equal(t, 0, p.Filters().Offset)

	require.NoError(t, p.GoTo(context.Background(), 1))
	require.NoError(t, p.SetLimit(context.Background(), 50))
	assert.Equal(t, 0, p.Filters().Offset)
	assert.Equal(t, 50, src.merchCalls[len(src.merchCalls)-1].Limit)
	assert.Equal(t, 42, p.Pagination().Total)
}

func TestMerchantDetailsLoadsRecentTransactions(t *testing.T) {
	src := &fakeAPI{}
	p := NewMerchantDetails(src, src, nil, clock)

	require.NoError(t, p.Load(context.Background(), "MCH-00002"))
	snap := p.Snapshot()
	assert.Equal(t, "Acme", snap.Data.Details.BusinessName)
	require.Len(t, src.txnCalls, 1)
	assert.Equal(t, "MCH-00002", src.txnCalls[0].MerchantID)
	assert.Equal(t, RecentTransactionCount, src.txnCalls[0].Size)
	assert.Equal(t, 0, src.txnCalls[0].Page)

	assert.Error(t, p.Load(context.Background(), ""))
}

func TestMerchantDetailsShowsProfileWhenTransactionsFail(t *testing.T) {
	src := &fakeAPI{
		failWith: &api.Error{StatusCode: 503, Message: "transactions unavailable"},
		failPath: "transactions",
	}
	p := NewMerchantDetails(src, src, nil, clock)

	require.NoError(t, p.Load(context.Background(), "MCH-00002"))
	snap := p.Snapshot()
	assert.Empty(t, snap.Err)
	assert.Equal(t, "Acme", snap.Data.Details.BusinessName)
	require.NotNil(t, snap.Data.Recent)
	assert.Empty(t, snap.Data.Recent.Transactions)
	assert.Equal(t, "transactions unavailable", snap.Data.RecentErr)

	src.mu.Lock()
	src.failPath = "details"
	src.mu.Unlock()
	require.Error(t, p.Refetch(context.Background()))
	assert.Equal(t, "transactions unavailable", p.Snapshot().Err)
}

func TestAnalyticsFailureKeepsAllPanels(t *testing.T) {
	src := &fakeAPI{volume: 100}
	p := NewAnalytics(src, nil, clock)

	require.NoError(t, p.Load(context.Background()))
	before := p.Snapshot().Data

	src.mu.Lock()
	src.volume = 999
	src.failWith = &api.Error{StatusCode: 500, Message: "trends unavailable"}
	src.failPath = "trends"
	src.mu.Unlock()

	require.Error(t, p.Refetch(context.Background()))
	snap := p.Snapshot()
	assert.Equal(t, "trends unavailable", snap.Err)
	assert.Same(t, before.Volume, snap.Data.Volume)
	assert.Same(t, before.SuccessRate, snap.Data.SuccessRate)
	assert.Same(t, before.Trends, snap.Data.Trends)
	assert.Same(t, before.PeakTimes, snap.Data.PeakTimes)
	assert.Same(t, before.CardDistribution, snap.Data.CardDistribution)
	assert.Equal(t, int64(100), snap.Data.Volume.TotalTransactions)
}

func TestAnalyticsDateRange(t *testing.T) {
	p := NewAnalytics(&fakeAPI{}, nil, clock)
	assert.Equal(t, "2026-05-20", p.DateRange().EndDate())

	bad := models.DateRange{Start: fixedNow, End: fixedNow.AddDate(0, 0, -1)}
	assert.Error(t, p.SetDateRange(context.Background(), bad))

	good, err := models.ParseDateRange("2026-01-01", "2026-01-31")
	require.NoError(t, err)
	require.NoError(t, p.SetDateRange(context.Background(), good))
	assert.True(t, p.Snapshot().Loaded)
	assert.True(t, p.DateRange().Equal(good))
}

func TestReportsAllOrNothing(t *testing.T) {
	src := &fakeAPI{}
	p := NewReports(src, nil, DefaultReportOptions(fixedNow))

	require.NoError(t, p.Load(context.Background()))
	snap := p.Snapshot()
	assert.Equal(t, "daily", snap.Data.ByPeriod.GroupBy)
	assert.Len(t, snap.Data.Forecast.Forecast, 7)
	assert.Equal(t, "revenue", snap.Data.TopPerformers.SortedBy)

	src.failWith = errors.New("connection refused")
	src.failPath = "growth"
	opts := p.Options()
	opts.Period = api.PeriodMonthly
	require.Error(t, p.SetOptions(context.Background(), opts))
	assert.Equal(t, "daily", p.Snapshot().Data.ByPeriod.GroupBy)
	assert.Equal(t, "connection refused", p.Snapshot().Err)
}

func TestChartsKinds(t *testing.T) {
	p := NewCharts(&fakeAPI{}, nil)
	r := models.LastDays(fixedNow, models.DefaultWindow)

	require.NoError(t, p.Load(context.Background(), ChartRequest{Kind: ChartPie, Range: r, DistributeBy: "cardType"}))
	assert.Equal(t, "pie:cardType", p.Snapshot().Data.ChartType)

	require.NoError(t, p.Load(context.Background(), ChartRequest{Kind: ChartLine, Range: r, Metric: "revenue"}))
	assert.Equal(t, "line:revenue", p.Snapshot().Data.ChartType)

	assert.Error(t, p.Load(context.Background(), ChartRequest{Kind: "radar", Range: r}))
	assert.Equal(t, "line:revenue", p.Snapshot().Data.ChartType)
}

func TestDrillDown(t *testing.T) {
	src := &fakeAPI{}
	p := NewDrillDown(src, nil)
	r := models.LastDays(fixedNow, models.DefaultWindow)

	err := p.Load(context.Background(), api.DrillCardType, "  ", r)
	assert.ErrorIs(t, err, ErrEmptyDrillDownValue)
	assert.Equal(t, 0, src.drillCalls)
	assert.Equal(t, ErrEmptyDrillDownValue.Error(), p.Snapshot().Err)

	require.NoError(t, p.Load(context.Background(), api.DrillCardType, "VISA", r))
	assert.Equal(t, []string{"cardtype=VISA"}, p.Snapshot().Data.Labels)

	src.failWith = &api.Error{StatusCode: 404, Message: "no data"}
	require.Error(t, p.Load(context.Background(), api.DrillStatus, "failed", r))
	snap := p.Snapshot()
	assert.Nil(t, snap.Data)
	assert.False(t, snap.Loaded)
	assert.Equal(t, "no data", snap.Err)

	assert.Error(t, p.Load(context.Background(), "country", "US", r))
}

func TestStaleTransactionsPageDiscarded(t *testing.T) {
	blocking := &blockingSource{release: make(chan struct{}), started: make(chan struct{}, 2)}
	p := NewTransactions(blocking, metrics.NewFetchStats(), clock, "", 0)

	done := make(chan error, 1)
	go func() { done <- p.GoTo(context.Background(), 1) }()
	<-blocking.started

	blocking.mu.Lock()
	blocking.fast = true
	blocking.mu.Unlock()
	require.NoError(t, p.GoTo(context.Background(), 2))
	close(blocking.release)

	assert.ErrorIs(t, <-done, fetch.ErrStale)
	assert.Equal(t, 2, p.Snapshot().Data.Page)
}

type blockingSource struct {
	mu      sync.Mutex
	fast    bool
	release chan struct{}
	started chan struct{}
}

func (b *blockingSource) ListTransactions(ctx context.Context, f filters.Transaction) (*models.TransactionPage, error) {
	b.mu.Lock()
	fast := b.fast
	b.mu.Unlock()
	if !fast {
		b.started <- struct{}{}
		<-b.release
	}
	return &models.TransactionPage{Page: f.Page}, nil
}
