package command

import (
	"strconv"
	"strings"

	"merchdash/internal/api"
	"merchdash/internal/pages"

	"github.com/AlecAivazis/survey/v2"
)

const actOptions = "Change report options"

var (
	reportPeriods = []string{api.PeriodDaily, api.PeriodWeekly, api.PeriodMonthly}
	reportSorts   = []string{"revenue", "transactions", "successRate"}
)

type ReportsCommand struct {
	Env
	Src pages.ReportSource
}

func (c *ReportsCommand) Name() string {
	return "reports"
}

func (c *ReportsCommand) Synopsis() string {
	return "Show revenue by period and merchant, forecast, growth and top performers"
}

func (c *ReportsCommand) Execute() error {
	ctx := c.context()
	page := pages.NewReports(c.Src, c.Stats, pages.DefaultReportOptions(c.now()))
	c.settle("reports", page.Load(ctx))

	for {
		snap := page.Snapshot()
		if snap.Err != "" {
			c.View.Error(snap.Err)
		}
		if snap.Loaded {
			c.View.Reports(page.Options(), snap.Data)
		}

		action, err := c.choose("Reports:", []string{actDates, actOptions, reloadAction(snap.Err != ""), actBack})
		if done, err := leave(err); done {
			return err
		}

		opts := page.Options()
		switch action {
		case actBack:
			return nil
		case actRetry, actRefresh:
			c.settle("reports", page.Refetch(ctx))
			continue
		case actDates:
			opts.Range, err = c.askDateRange(opts.Range)
		case actOptions:
			opts, err = c.askOptions(opts)
		}
		if err != nil {
			if ignorable(err) {
				continue
			}
			return err
		}
		c.settle("reports", page.SetOptions(ctx, opts))
	}
}

func (c *ReportsCommand) askOptions(opts pages.ReportOptions) (pages.ReportOptions, error) {
	year := func(y int) string {
		if y <= 0 {
			return ""
		}
		return strconv.Itoa(y)
	}
	qs := []*survey.Question{
		{
			Name:   "period",
			Prompt: promptSelect("Revenue period:", reportPeriods, opts.Period),
		},
		{
			Name:     "merchants",
			Prompt:   &survey.Input{Message: "Merchants in revenue ranking:", Default: strconv.Itoa(opts.MerchantLimit)},
			Validate: positiveInt,
		},
		{
			Name:     "forecast",
			Prompt:   &survey.Input{Message: "Forecast periods:", Default: strconv.Itoa(opts.ForecastPeriods)},
			Validate: positiveInt,
		},
		{
			Name:     "current",
			Prompt:   &survey.Input{Message: "Growth year (empty for current):", Default: year(opts.CurrentYear)},
			Validate: optionalYear,
		},
		{
			Name:     "comparison",
			Prompt:   &survey.Input{Message: "Compare with year (empty for previous):", Default: year(opts.ComparisonYear)},
			Validate: optionalYear,
		},
		{
			Name:     "top",
			Prompt:   &survey.Input{Message: "Top performers:", Default: strconv.Itoa(opts.TopLimit)},
			Validate: positiveInt,
		},
		{
			Name:   "sort",
			Prompt: promptSelect("Rank top performers by:", reportSorts, opts.SortBy),
		},
	}
	answers := struct {
		Period     string
		Merchants  string
		Forecast   string
		Current    string
		Comparison string
		Top        string
		Sort       string
	}{}
	if err := c.prompter().Ask(qs, &answers); err != nil {
		return opts, err
	}

	opts.Period = answers.Period
	opts.MerchantLimit = atoi(answers.Merchants)
	opts.ForecastPeriods = atoi(answers.Forecast)
	opts.CurrentYear = atoi(answers.Current)
	opts.ComparisonYear = atoi(answers.Comparison)
	opts.TopLimit = atoi(answers.Top)
	opts.SortBy = answers.Sort
	return opts, nil
}

func optionalYear(ans interface{}) error {
	s, _ := ans.(string)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return positiveInt(ans)
}

// atoi parses an answer already checked by a validator. Blank is 0.
func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
