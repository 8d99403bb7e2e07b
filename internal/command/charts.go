package command

import (
	"errors"
	"strings"

	"merchdash/internal/api"
	"merchdash/internal/models"
	"merchdash/internal/pages"
)

const (
	actChartKind = "Change chart"
	actDrillDown = "Drill down"
	otherValue   = "Other..."
)

var (
	lineMetrics  = []string{"revenue", "volume", "avgamount"}
	lineGroups   = []string{"day", "week", "month"}
	barCompares  = []string{"cardtype", "status", "merchant"}
	pieDivisions = []string{"cardtype", "status", "merchant"}
)

// chartTitle names a chart request for the view header.
func chartTitle(req pages.ChartRequest) string {
	switch req.Kind {
	case pages.ChartLine:
		return "Trends: " + req.Metric + " by " + req.GroupBy
	case pages.ChartBar:
		return "Comparison by " + req.CompareBy
	case pages.ChartPie:
		return "Distribution by " + req.DistributeBy
	}
	return req.Kind
}

func defaultChartRequest(r models.DateRange) pages.ChartRequest {
	return pages.ChartRequest{
		Kind:         pages.ChartLine,
		Range:        r,
		Metric:       lineMetrics[0],
		GroupBy:      lineGroups[0],
		CompareBy:    barCompares[0],
		DistributeBy: pieDivisions[0],
	}
}

type ChartsCommand struct {
	Env
	Src pages.ChartSource
}

func (c *ChartsCommand) Name() string {
	return "charts"
}

func (c *ChartsCommand) Synopsis() string {
	return "Show line, bar and pie chart datasets with drill-down"
}

func (c *ChartsCommand) Execute() error {
	ctx := c.context()
	charts := pages.NewCharts(c.Src, c.Stats)
	req := defaultChartRequest(models.LastDays(c.now(), models.DefaultWindow))
	c.settle("chart", charts.Load(ctx, req))

	for {
		snap := charts.Snapshot()
		if snap.Err != "" {
			c.View.Error(snap.Err)
		}
		if snap.Loaded {
			c.View.Chart(chartTitle(req), snap.Data)
		}

		action, err := c.choose("Charts:", []string{actChartKind, actDates, actDrillDown, reloadAction(snap.Err != ""), actBack})
		if done, err := leave(err); done {
			return err
		}

		next := req
		switch action {
		case actBack:
			return nil
		case actRetry, actRefresh:
			c.settle("chart", charts.Refetch(ctx))
			continue
		case actDrillDown:
			drill := &DrillDownCommand{Env: c.Env, Src: c.Src, Range: req.Range}
			if err := drill.Execute(); err != nil {
				return err
			}
			continue
		case actDates:
			next.Range, err = c.askDateRange(req.Range)
		case actChartKind:
			next, err = c.askChart(req)
		}
		if err != nil {
			if ignorable(err) {
				continue
			}
			return err
		}
		req = next
		c.settle("chart", charts.Load(ctx, req))
	}
}

// askChart picks a chart kind and the one option that kind takes.
func (c *ChartsCommand) askChart(req pages.ChartRequest) (pages.ChartRequest, error) {
	kind, err := c.pick(promptSelect("Chart:", pages.ChartKinds, req.Kind))
	if err != nil {
		return req, err
	}
	req.Kind = kind
	switch kind {
	case pages.ChartLine:
		if req.Metric, err = c.pick(promptSelect("Metric:", lineMetrics, req.Metric)); err != nil {
			return req, err
		}
		req.GroupBy, err = c.pick(promptSelect("Group by:", lineGroups, req.GroupBy))
	case pages.ChartBar:
		req.CompareBy, err = c.pick(promptSelect("Compare by:", barCompares, req.CompareBy))
	case pages.ChartPie:
		req.DistributeBy, err = c.pick(promptSelect("Distribute by:", pieDivisions, req.DistributeBy))
	}
	return req, err
}

// DrillDownCommand breaks a category value down over a date range.
type DrillDownCommand struct {
	Env
	Src pages.ChartSource
	// Range defaults to the last 30 days.
	Range models.DateRange
}

func (c *DrillDownCommand) Name() string {
	return "drilldown"
}

func (c *DrillDownCommand) Synopsis() string {
	return "Drill into one merchant, card type or status"
}

func (c *DrillDownCommand) Execute() error {
	ctx := c.context()
	r := c.Range
	if r.Start.IsZero() {
		r = models.LastDays(c.now(), models.DefaultWindow)
	}
	drill := pages.NewDrillDown(c.Src, c.Stats)

	var category, value string
	for {
		if category == "" {
			var err error
			category, value, err = c.askTarget()
			if done, err := leave(err); done {
				return err
			}
			err = drill.Load(ctx, category, value, r)
			if errors.Is(err, pages.ErrEmptyDrillDownValue) {
				c.View.Error(err.Error())
				category = ""
				continue
			}
			c.settle("drill-down", err)
		}

		snap := drill.Snapshot()
		if snap.Err != "" {
			c.View.Error(snap.Err)
		}
		if snap.Data != nil {
			c.View.Chart("Drill-down: "+category+" = "+value, snap.Data)
		}

		action, err := c.choose("Drill-down:", []string{actDrillDown, actDates, reloadAction(snap.Err != ""), actBack})
		if done, err := leave(err); done {
			return err
		}
		switch action {
		case actBack:
			return nil
		case actDrillDown:
			category = ""
		case actRetry, actRefresh:
			c.settle("drill-down", drill.Load(ctx, category, value, r))
		case actDates:
			next, err := c.askDateRange(r)
			if err != nil {
				if ignorable(err) {
					continue
				}
				return err
			}
			r = next
			c.settle("drill-down", drill.Load(ctx, category, value, r))
		}
	}
}

// askTarget asks for a category and one of its suggested values, or a
// typed one.
func (c *DrillDownCommand) askTarget() (string, string, error) {
	category, err := c.pick(promptSelect("Category:", api.DrillCategories, api.DrillMerchant))
	if err != nil {
		return "", "", err
	}
	options := append(append([]string{}, pages.DrillDownSuggestions[category]...), otherValue)
	value, err := c.pick(promptSelect("Value:", options, ""))
	if err != nil {
		return "", "", err
	}
	if value == otherValue {
		if value, err = c.input("Enter "+category+" value:", "", nil); err != nil {
			return "", "", err
		}
	}
	return category, strings.TrimSpace(value), nil
}
