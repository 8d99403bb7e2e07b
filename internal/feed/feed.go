package feed

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"merchdash/internal/metrics"
	"merchdash/internal/models"
)

const (
	DefaultInterval = 10 * time.Second
	DefaultWindow   = 5 * time.Minute
	DefaultLimit    = 10
)

type Source interface {
	RecentTransactions(ctx context.Context, since time.Time, limit int) ([]models.Transaction, error)
}

// Batch is one non-empty poll result.
type Batch struct {
	Transactions []models.Transaction
	FetchedAt    time.Time
}

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop() { t.t.Stop() }

func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

type Options struct {
	Interval  time.Duration
	Window    time.Duration
	Limit     int
	Now       func() time.Time
	NewTicker func(time.Duration) Ticker
	OnBatch   func(Batch)
	Logger    *logrus.Logger
	Stats     *metrics.FetchStats
}

// Feed polls for recent transactions while it is not paused. Errors are
// logged and counted; polling continues at the same rate.
type Feed struct {
	src  Source
	opts Options
	log  *logrus.Entry
	wake chan struct{}

	mu         sync.Mutex
	paused     bool
	resumes    uint64
	running    bool
	latest     []models.Transaction
	lastUpdate time.Time
	lastErr    error
}

func New(src Source, opts Options) *Feed {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewTicker == nil {
		opts.NewTicker = NewTimeTicker
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Feed{
		src:  src,
		opts: opts,
		log:  logger.WithField("component", "feed"),
		wake: make(chan struct{}, 1),
	}
}

var ErrAlreadyRunning = errors.New("feed is already running")

// Run polls immediately, then on every tick, until ctx is done. Pause and
// Resume take effect while Run is active.
func (f *Feed) Run(ctx context.Context) error {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return ErrAlreadyRunning
	}
	f.running = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.running = false
		f.mu.Unlock()
	}()

	var ticker Ticker
	var tick <-chan time.Time
	start := func() {
		f.poll(ctx)
		ticker = f.opts.NewTicker(f.opts.Interval)
		tick = ticker.C()
	}
	stop := func() {
		if ticker != nil {
			ticker.Stop()
		}
		ticker = nil
		tick = nil
	}
	defer stop()

	f.mu.Lock()
	paused, seen := f.paused, f.resumes
	f.mu.Unlock()
	if !paused {
		start()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			f.poll(ctx)
		case <-f.wake:
			f.mu.Lock()
			paused, resumes := f.paused, f.resumes
			f.mu.Unlock()
			switch {
			case paused:
				if ticker != nil {
					stop()
					f.log.Info("feed paused")
				}
			case resumes != seen || ticker == nil:
				// a pause and resume may share one wake; restart either way
				seen = resumes
				stop()
				f.log.Info("feed resumed")
				start()
			}
		}
	}
}

func (f *Feed) Pause() {
	f.setPaused(true)
}

func (f *Feed) Resume() {
	f.setPaused(false)
}

// Toggle flips between paused and polling and reports the new paused state.
func (f *Feed) Toggle() bool {
	f.mu.Lock()
	next := !f.paused
	f.flipLocked(next)
	f.mu.Unlock()
	f.signal()
	return next
}

func (f *Feed) setPaused(p bool) {
	f.mu.Lock()
	changed := f.paused != p
	if changed {
		f.flipLocked(p)
	}
	f.mu.Unlock()
	if changed {
		f.signal()
	}
}

// flipLocked must be called with f.mu held.
func (f *Feed) flipLocked(p bool) {
	f.paused = p
	if !p {
		f.resumes++
	}
}

func (f *Feed) signal() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

func (f *Feed) Paused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused
}

// Latest returns the most recent non-empty batch.
func (f *Feed) Latest() []models.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Transaction, len(f.latest))
	copy(out, f.latest)
	return out
}

// LastUpdate is when Latest last changed.
func (f *Feed) LastUpdate() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastUpdate
}

func (f *Feed) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *Feed) poll(ctx context.Context) {
	now := f.opts.Now()
	txns, err := f.src.RecentTransactions(ctx, now.Add(-f.opts.Window), f.opts.Limit)
	if ctx.Err() != nil {
		return
	}
	if f.opts.Stats != nil {
		f.opts.Stats.RecordPoll(err)
	}

	f.mu.Lock()
	f.lastErr = err
	if err != nil {
		f.mu.Unlock()
		f.log.WithError(err).Warn("recent transactions poll failed")
		return
	}
	if len(txns) == 0 {
		f.mu.Unlock()
		f.log.Debug("no new transactions")
		return
	}
	f.latest = txns
	f.lastUpdate = now
	batch := Batch{Transactions: append([]models.Transaction(nil), txns...), FetchedAt: now}
	f.mu.Unlock()

	f.log.WithField("count", len(txns)).Debug("recent transactions updated")
	if f.opts.OnBatch != nil {
		f.opts.OnBatch(batch)
	}
}

func (f *Feed) Interval() time.Duration {
	return f.opts.Interval
}
