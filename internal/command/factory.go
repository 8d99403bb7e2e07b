package command

import (
	"context"
	"time"

	"merchdash/internal/api"
	cfg "merchdash/internal/config"
	"merchdash/internal/metrics"
	"merchdash/internal/view"

	"github.com/sirupsen/logrus"
)

// Factory creates commands with properly injected dependencies
type Factory struct {
	ctx        context.Context
	client     *api.Client
	view       *view.Renderer
	stats      *metrics.FetchStats
	logger     *logrus.Logger
	controller WorkerController
	prompt     Prompter
}

// NewFactory creates a new command factory
func NewFactory(
	ctx context.Context,
	client *api.Client,
	renderer *view.Renderer,
	stats *metrics.FetchStats,
	logger *logrus.Logger,
	controller WorkerController,
) *Factory {
	return &Factory{
		ctx:        ctx,
		client:     client,
		view:       renderer,
		stats:      stats,
		logger:     logger,
		controller: controller,
		prompt:     SurveyPrompter{},
	}
}

func (f *Factory) env(component string) Env {
	var log *logrus.Entry
	if f.logger != nil {
		log = f.logger.WithField("component", component)
	}
	return Env{
		Ctx:    f.ctx,
		View:   f.view,
		Prompt: f.prompt,
		Stats:  f.stats,
		Log:    log,
		Now:    time.Now,
	}
}

// Commands returns every dashboard command.
func (f *Factory) Commands() []Command {
	return []Command{
		f.CreateMerchantsCommand(),
		f.CreateMerchantCommand(),
		f.CreateAddMerchantCommand(),
		f.CreateEditMerchantCommand(),
		f.CreateTransactionsCommand(),
		f.CreateAnalyticsCommand(),
		f.CreateReportsCommand(),
		f.CreateChartsCommand(),
		f.CreateDrillDownCommand(),
		f.CreateFeedCommand(),
		f.CreateDbStatsCommand(),
	}
}

func (f *Factory) CreateMerchantsCommand() Command {
	return &MerchantsCommand{Env: f.env("merchants"), Client: f.client}
}

func (f *Factory) CreateMerchantCommand() Command {
	return &MerchantCommand{Env: f.env("merchant"), Client: f.client}
}

func (f *Factory) CreateAddMerchantCommand() Command {
	return &AddMerchantCommand{Env: f.env("add-merchant"), Client: f.client}
}

func (f *Factory) CreateEditMerchantCommand() Command {
	return &EditMerchantCommand{Env: f.env("edit-merchant"), Client: f.client}
}

func (f *Factory) CreateTransactionsCommand() Command {
	return &TransactionsCommand{
		Env:      f.env("transactions"),
		Src:      f.client,
		PageSize: cfg.GetConfig().GetPageSize(),
	}
}

func (f *Factory) CreateAnalyticsCommand() Command {
	return &AnalyticsCommand{Env: f.env("analytics"), Src: f.client}
}

func (f *Factory) CreateReportsCommand() Command {
	return &ReportsCommand{Env: f.env("reports"), Src: f.client}
}

func (f *Factory) CreateChartsCommand() Command {
	return &ChartsCommand{Env: f.env("charts"), Src: f.client}
}

func (f *Factory) CreateDrillDownCommand() Command {
	return &DrillDownCommand{Env: f.env("drilldown"), Src: f.client}
}

// CreateFeedCommand creates a feed command polling with the configured
// interval, window and batch size
func (f *Factory) CreateFeedCommand() Command {
	return &FeedCommand{
		Env:      f.env("feed"),
		Src:      f.client,
		Wrk:      f.controller,
		Logger:   f.logger,
		Interval: cfg.GetConfig().GetPollInterval(),
		Window:   cfg.GetConfig().GetFeedWindow(),
		Limit:    cfg.GetConfig().GetFeedLimit(),
	}
}

func (f *Factory) CreateDbStatsCommand() Command {
	return &DbStatsCommand{View: f.view}
}
