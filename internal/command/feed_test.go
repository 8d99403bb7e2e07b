package command

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchdash/internal/feed"
	"merchdash/internal/models"
)

type fakeController struct {
	mu      sync.Mutex
	ids     []string
	feeds   map[string]*feed.Feed
	stopped []string
}

func (f *fakeController) StartFeedWorker(name string, fd *feed.Feed) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.feeds == nil {
		f.feeds = map[string]*feed.Feed{}
	}
	id := name + "-" + string(rune('a'+len(f.ids)))
	f.ids = append(f.ids, id)
	f.feeds[id] = fd
	return id, nil
}

func (f *fakeController) FeedWorker(id string) (*feed.Feed, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fd, ok := f.feeds[id]
	return fd, ok
}

func (f *fakeController) WorkerIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ids...)
}

func (f *fakeController) StopWorker(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.feeds[id]; !ok {
		return errors.New("worker with ID " + id + " not found")
	}
	delete(f.feeds, id)
	for i, v := range f.ids {
		if v == id {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			break
		}
	}
	f.stopped = append(f.stopped, id)
	return nil
}

func (f *fakeController) StopAllWorkers() error {
	for _, id := range f.WorkerIDs() {
		_ = f.StopWorker(id)
	}
	return nil
}

func (f *fakeController) GetWorkerStats() map[string]interface{} {
	return map[string]interface{}{"active": len(f.WorkerIDs())}
}

type staticSource struct{ txns []models.Transaction }

func (s staticSource) RecentTransactions(context.Context, time.Time, int) ([]models.Transaction, error) {
	return s.txns, nil
}

func TestFeedCommandLifecycle(t *testing.T) {
	wrk := &fakeController{}
	p := &scripted{answers: []interface{}{actStartFeed, false}}
	env, out := newEnv(t, p)
	cmd := &FeedCommand{Env: env, Src: staticSource{}, Wrk: wrk, Interval: time.Minute}

	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{actStartFeed, actBack}, p.selects[0])
	require.Equal(t, []string{"feed-a"}, wrk.WorkerIDs())
	assert.Contains(t, out.String(), "Started feed feed-a polling every 1m0s")

	p.answers = []interface{}{actToggleFeed}
	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{actStartFeed, actShowFeed, actToggleFeed, actStopFeed, actBack}, lastSelect(p))
	fd, _ := wrk.FeedWorker("feed-a")
	assert.True(t, fd.Paused())
	assert.Contains(t, out.String(), "Feed feed-a paused")

	p.answers = []interface{}{actShowFeed}
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Real-Time Transactions (paused)")

	p.answers = []interface{}{actStopFeed}
	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"feed-a"}, wrk.stopped)
	assert.Empty(t, wrk.WorkerIDs())
}

func TestFeedCommandPicksAmongFeeds(t *testing.T) {
	wrk := &fakeController{}
	_, _ = wrk.StartFeedWorker("feed", feed.New(staticSource{}, feed.Options{}))
	_, _ = wrk.StartFeedWorker("feed", feed.New(staticSource{}, feed.Options{}))

	p := &scripted{answers: []interface{}{actStopFeed, "feed-b"}}
	env, _ := newEnv(t, p)
	cmd := &FeedCommand{Env: env, Src: staticSource{}, Wrk: wrk}

	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"feed-b"}, wrk.stopped)
	assert.Equal(t, []string{"feed-a"}, wrk.WorkerIDs())
}
