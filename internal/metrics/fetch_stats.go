package metrics

import "sync/atomic"

// FetchStats counts the lifecycle of page fetches and feed polls
type FetchStats struct {
	started   int64
	succeeded int64
	failed    int64
	stale     int64
	polls     int64
	pollFails int64
}

// NewFetchStats creates a new FetchStats instance
func NewFetchStats() *FetchStats {
	return &FetchStats{}
}

func (fs *FetchStats) RecordStart() {
	atomic.AddInt64(&fs.started, 1)
}

// RecordResult records the outcome of a fetch whose result was applied
func (fs *FetchStats) RecordResult(err error) {
	if err != nil {
		atomic.AddInt64(&fs.failed, 1)
		return
	}
	atomic.AddInt64(&fs.succeeded, 1)
}

// RecordStale records a response discarded because a newer fetch superseded it
func (fs *FetchStats) RecordStale() {
	atomic.AddInt64(&fs.stale, 1)
}

// RecordPoll records one feed poll
func (fs *FetchStats) RecordPoll(err error) {
	atomic.AddInt64(&fs.polls, 1)
	if err != nil {
		atomic.AddInt64(&fs.pollFails, 1)
	}
}

func (fs *FetchStats) Started() int64 {
	return atomic.LoadInt64(&fs.started)
}

func (fs *FetchStats) Succeeded() int64 {
	return atomic.LoadInt64(&fs.succeeded)
}

func (fs *FetchStats) Failed() int64 {
	return atomic.LoadInt64(&fs.failed)
}

func (fs *FetchStats) Stale() int64 {
	return atomic.LoadInt64(&fs.stale)
}

func (fs *FetchStats) Polls() int64 {
	return atomic.LoadInt64(&fs.polls)
}

func (fs *FetchStats) PollFailures() int64 {
	return atomic.LoadInt64(&fs.pollFails)
}

// GetAllMetrics returns all fetch metrics as a map
func (fs *FetchStats) GetAllMetrics() map[string]interface{} {
	return map[string]interface{}{
		"fetches_started":   fs.Started(),
		"fetches_succeeded": fs.Succeeded(),
		"fetches_failed":    fs.Failed(),
		"responses_stale":   fs.Stale(),
		"feed_polls":        fs.Polls(),
		"feed_poll_errors":  fs.PollFailures(),
	}
}
