package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchdash/internal/api"
	"merchdash/internal/metrics"
)

func TestLoadSuccessAndFailure(t *testing.T) {
	stats := metrics.NewFetchStats()
	r := New[int](stats)

	assert.False(t, r.Snapshot().Loaded)

	require.NoError(t, r.Load(context.Background(), func(context.Context) (int, error) { return 42, nil }))
	snap := r.Snapshot()
	assert.True(t, snap.Loaded)
	assert.False(t, snap.Loading)
	assert.Equal(t, 42, snap.Data)
	assert.Empty(t, snap.Err)
	assert.False(t, snap.UpdatedAt.IsZero())

	err := r.Load(context.Background(), func(context.Context) (int, error) {
		return 0, &api.Error{StatusCode: 500, Message: "database unavailable"}
	})
	require.Error(t, err)
	snap = r.Snapshot()
	assert.Equal(t, 42, snap.Data, "previous data is kept on failure")
	assert.True(t, snap.Loaded)
	assert.Equal(t, "database unavailable", snap.Err)

	assert.Equal(t, int64(2), stats.Started())
	assert.Equal(t, int64(1), stats.Succeeded())
	assert.Equal(t, int64(1), stats.Failed())
}

func TestRefetchRepeatsLastLoader(t *testing.T) {
	r := New[int](nil)
	assert.ErrorIs(t, r.Refetch(context.Background()), ErrNoLoader)

	var calls atomic.Int32
	load := func(context.Context) (int, error) { return int(calls.Add(1)), nil }
	require.NoError(t, r.Load(context.Background(), load))
	require.NoError(t, r.Refetch(context.Background()))

	assert.Equal(t, 2, r.Snapshot().Data)
}

func TestSuccessClearsError(t *testing.T) {
	r := New[string](nil)
	_ = r.Load(context.Background(), func(context.Context) (string, error) { return "", errors.New("boom") })
	assert.Equal(t, "boom", r.Snapshot().Err)

	require.NoError(t, r.Load(context.Background(), func(context.Context) (string, error) { return "ok", nil }))
	assert.Empty(t, r.Snapshot().Err)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	stats := metrics.NewFetchStats()
	r := New[string](stats)

	slowStarted := make(chan struct{})
	release := make(chan struct{})
	slowErr := make(chan error, 1)

	go func() {
		slowErr <- r.Load(context.Background(), func(ctx context.Context) (string, error) {
			close(slowStarted)
			<-release
			return "old", nil
		})
	}()
	<-slowStarted

	require.NoError(t, r.Load(context.Background(), func(context.Context) (string, error) { return "new", nil }))
	close(release)

	assert.ErrorIs(t, <-slowErr, ErrStale)
	assert.Equal(t, "new", r.Snapshot().Data)
	assert.Equal(t, int64(1), stats.Stale())
}

func TestNewLoadCancelsSuperseded(t *testing.T) {
	r := New[int](nil)

	started := make(chan struct{})
	cancelled := make(chan error, 1)
	go func() {
		_ = r.Load(context.Background(), func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			cancelled <- ctx.Err()
			return 0, ctx.Err()
		})
	}()
	<-started

	require.NoError(t, r.Load(context.Background(), func(context.Context) (int, error) { return 7, nil }))

	select {
	case err := <-cancelled:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("superseded load was not cancelled")
	}
	assert.Equal(t, 7, r.Snapshot().Data)
	assert.Empty(t, r.Snapshot().Err)
}

func TestClearAndFail(t *testing.T) {
	r := New[int](nil)
	require.NoError(t, r.Load(context.Background(), func(context.Context) (int, error) { return 1, nil }))

	r.Fail(errors.New("please enter a value"))
	r.Clear()

	snap := r.Snapshot()
	assert.False(t, snap.Loaded)
	assert.Zero(t, snap.Data)
	assert.Equal(t, "please enter a value", snap.Err)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.Equal(t, "Merchant not found", ErrorMessage(fmt.Errorf("loading: %w", &api.Error{StatusCode: 404, Message: "Merchant not found"})))
	assert.Equal(t, "api returned 503 Service Unavailable", ErrorMessage(&api.Error{StatusCode: 503}))
	assert.Equal(t, "request cancelled", ErrorMessage(fmt.Errorf("GET /x: %w", context.Canceled)))
	assert.Equal(t, "request timed out", ErrorMessage(context.DeadlineExceeded))
}

func TestAll(t *testing.T) {
	var hits atomic.Int32
	ok := func(context.Context) error { hits.Add(1); return nil }
	require.NoError(t, All(context.Background(), ok, ok, ok))
	assert.Equal(t, int32(3), hits.Load())

	boom := errors.New("boom")
	err := All(context.Background(), ok, func(context.Context) error { return boom }, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, boom)
}
