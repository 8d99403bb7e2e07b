package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"merchdash/internal/api"
	"merchdash/internal/fetch"
	"merchdash/internal/metrics"
	"merchdash/internal/models"
)

// Chart kinds offered by the charts view.
const (
	ChartLine = "line"
	ChartBar  = "bar"
	ChartPie  = "pie"
)

var ChartKinds = []string{ChartLine, ChartBar, ChartPie}

// ChartRequest selects one chart. Only the option matching Kind is used.
type ChartRequest struct {
	Kind         string
	Range        models.DateRange
	Metric       string
	GroupBy      string
	CompareBy    string
	DistributeBy string
}

type Charts struct {
	src ChartSource
	res *fetch.Resource[*models.ChartData]
}

func NewCharts(src ChartSource, stats *metrics.FetchStats) *Charts {
	return &Charts{src: src, res: fetch.New[*models.ChartData](stats)}
}

func (p *Charts) Load(ctx context.Context, req ChartRequest) error {
	if err := req.Range.Validate(); err != nil {
		p.res.Fail(err)
		return err
	}
	var fn fetch.Loader[*models.ChartData]
	switch req.Kind {
	case ChartLine:
		fn = func(ctx context.Context) (*models.ChartData, error) {
			return p.src.LineChart(ctx, req.Range, req.Metric, req.GroupBy)
		}
	case ChartBar:
		fn = func(ctx context.Context) (*models.ChartData, error) {
			return p.src.BarChart(ctx, req.Range, req.CompareBy)
		}
	case ChartPie:
		fn = func(ctx context.Context) (*models.ChartData, error) {
			return p.src.PieChart(ctx, req.Range, req.DistributeBy)
		}
	default:
		err := fmt.Errorf("unknown chart kind %q", req.Kind)
		p.res.Fail(err)
		return err
	}
	return p.res.Load(ctx, fn)
}

func (p *Charts) Refetch(ctx context.Context) error {
	return p.res.Refetch(ctx)
}

func (p *Charts) Snapshot() fetch.Snapshot[*models.ChartData] {
	return p.res.Snapshot()
}

// ErrEmptyDrillDownValue is returned when a drill-down is requested without
// a category value.
var ErrEmptyDrillDownValue = errors.New("please enter a value to drill down")

// DrillDownSuggestions are the quick-pick values offered per category.
var DrillDownSuggestions = map[string][]string{
	api.DrillMerchant: {"MCH-00001", "MCH-00002", "MCH-00009", "MCH-00012", "MCH-00013"},
	api.DrillCardType: {"VISA", "MASTERCARD", "AMEX", "DISCOVER"},
	api.DrillStatus:   {"completed", "pending", "failed"},
}

// DrillDown is the secondary query scoped to one category value. Unlike the
// other views a failed drill-down clears the previous result.
type DrillDown struct {
	src ChartSource
	res *fetch.Resource[*models.ChartData]
}

func NewDrillDown(src ChartSource, stats *metrics.FetchStats) *DrillDown {
	return &DrillDown{src: src, res: fetch.New[*models.ChartData](stats)}
}

func (p *DrillDown) Load(ctx context.Context, category, value string, r models.DateRange) error {
	value = strings.TrimSpace(value)
	if value == "" {
		p.res.Fail(ErrEmptyDrillDownValue)
		return ErrEmptyDrillDownValue
	}
	if _, ok := DrillDownSuggestions[category]; !ok {
		err := fmt.Errorf("unknown drill-down category %q", category)
		p.res.Fail(err)
		return err
	}
	err := p.res.Load(ctx, func(ctx context.Context) (*models.ChartData, error) {
		return p.src.DrillDown(ctx, category, value, r)
	})
	if err != nil && !errors.Is(err, fetch.ErrStale) {
		p.res.Clear()
	}
	return err
}

func (p *DrillDown) Snapshot() fetch.Snapshot[*models.ChartData] {
	return p.res.Snapshot()
}
