package command

import (
	"fmt"
	"time"

	"merchdash/internal/feed"
	"merchdash/internal/fetch"

	"github.com/AlecAivazis/survey/v2"
	"github.com/sirupsen/logrus"
)

const (
	actStartFeed  = "Start feed"
	actShowFeed   = "Show latest"
	actToggleFeed = "Pause / resume"
	actStopFeed   = "Stop feed"
)

type FeedCommand struct {
	Env
	Src      feed.Source
	Wrk      WorkerController
	Logger   *logrus.Logger
	Interval time.Duration
	Window   time.Duration
	Limit    int
}

func (c *FeedCommand) Name() string {
	return "feed"
}

func (c *FeedCommand) Synopsis() string {
	return "Run the real-time transaction feed in the background"
}

func (c *FeedCommand) Execute() error {
	options := []string{actStartFeed}
	if len(c.Wrk.WorkerIDs()) > 0 {
		options = append(options, actShowFeed, actToggleFeed, actStopFeed)
	}
	options = append(options, actBack)

	action, err := c.choose("Real-time feed:", options)
	if done, err := leave(err); done {
		return err
	}

	switch action {
	case actStartFeed:
		err = c.start()
	case actShowFeed:
		err = c.withFeed(func(id string, f *feed.Feed) error {
			c.show(f)
			return nil
		})
	case actToggleFeed:
		err = c.withFeed(func(id string, f *feed.Feed) error {
			if f.Toggle() {
				c.View.Info("Feed %s paused", id)
			} else {
				c.View.Info("Feed %s resumed", id)
			}
			return nil
		})
	case actStopFeed:
		err = c.withFeed(func(id string, _ *feed.Feed) error {
			if err := c.Wrk.StopWorker(id); err != nil {
				return err
			}
			c.View.Info("Stopped feed %s", id)
			return nil
		})
	}
	_, err = leave(err)
	return err
}

func (c *FeedCommand) start() error {
	live := false
	err := c.prompter().AskOne(&survey.Confirm{
		Message: "Print each new batch as it arrives?",
		Default: true,
	}, &live)
	if err != nil {
		return err
	}

	opts := feed.Options{
		Interval: c.Interval,
		Window:   c.Window,
		Limit:    c.Limit,
		Now:      c.Now,
		Logger:   c.Logger,
		Stats:    c.Stats,
	}
	if live {
		opts.OnBatch = func(b feed.Batch) {
			c.View.Feed(b.Transactions, b.FetchedAt, c.now(), false)
		}
	}
	f := feed.New(c.Src, opts)

	id, err := c.Wrk.StartFeedWorker("feed", f)
	if err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}
	interval := c.Interval
	if interval <= 0 {
		interval = feed.DefaultInterval
	}
	c.View.Info("Started feed %s polling every %s", id, interval)
	return nil
}

// withFeed runs fn on the only feed, or on the one the user picks.
func (c *FeedCommand) withFeed(fn func(id string, f *feed.Feed) error) error {
	ids := c.Wrk.WorkerIDs()
	if len(ids) == 0 {
		c.View.Info("No feeds running")
		return nil
	}
	id := ids[0]
	if len(ids) > 1 {
		var err error
		if id, err = c.choose("Select a feed:", ids); err != nil {
			return err
		}
	}
	f, ok := c.Wrk.FeedWorker(id)
	if !ok {
		return fmt.Errorf("feed %s not found", id)
	}
	return fn(id, f)
}

func (c *FeedCommand) show(f *feed.Feed) {
	if err := f.LastError(); err != nil {
		c.View.Error(fetch.ErrorMessage(err))
	}
	c.View.Feed(f.Latest(), f.LastUpdate(), c.now(), f.Paused())
}
