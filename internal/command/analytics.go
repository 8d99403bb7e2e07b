package command

import (
	"merchdash/internal/pages"
)

type AnalyticsCommand struct {
	Env
	Src pages.AnalyticsSource
}

func (c *AnalyticsCommand) Name() string {
	return "analytics"
}

func (c *AnalyticsCommand) Synopsis() string {
	return "Show volume, success rate, card mix, peak times and trends"
}

func (c *AnalyticsCommand) Execute() error {
	ctx := c.context()
	page := pages.NewAnalytics(c.Src, c.Stats, c.Now)
	c.settle("analytics", page.Load(ctx))

	for {
		snap := page.Snapshot()
		if snap.Err != "" {
			c.View.Error(snap.Err)
		}
		if snap.Loaded {
			c.View.Analytics(page.DateRange(), snap.Data)
		}

		action, err := c.choose("Analytics:", []string{actDates, reloadAction(snap.Err != ""), actBack})
		if done, err := leave(err); done {
			return err
		}

		switch action {
		case actBack:
			return nil
		case actRetry, actRefresh:
			c.settle("analytics", page.Refetch(ctx))
		case actDates:
			r, err := c.askDateRange(page.DateRange())
			if err != nil {
				if ignorable(err) {
					continue
				}
				return err
			}
			c.settle("analytics", page.SetDateRange(ctx, r))
		}
	}
}
