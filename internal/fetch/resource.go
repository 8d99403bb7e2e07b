package fetch

import (
	"context"
	"errors"
	"sync"
	"time"

	"merchdash/internal/metrics"
)

var (
	// ErrStale is returned by Load when a newer load superseded it. The
	// result was discarded and the snapshot is unchanged.
	ErrStale = errors.New("response superseded by a newer request")
	// ErrNoLoader is returned by Refetch before the first Load.
	ErrNoLoader = errors.New("nothing to refetch")
)

// Loader produces one value for a resource.
type Loader[T any] func(ctx context.Context) (T, error)

// Snapshot is the observable state of a resource.
type Snapshot[T any] struct {
	Data      T
	Loaded    bool
	Loading   bool
	Err       string
	UpdatedAt time.Time
}

// Resource holds the latest successfully loaded value of T. Each Load gets a
// generation number; only the newest generation may commit.
type Resource[T any] struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	loader Loader[T]
	snap   Snapshot[T]
	stats  *metrics.FetchStats
	now    func() time.Time
}

// New returns an empty resource. stats may be nil.
func New[T any](stats *metrics.FetchStats) *Resource[T] {
	return &Resource[T]{stats: stats, now: time.Now}
}

// Load runs fn and commits its result unless a newer Load started in the
// meantime. Starting a Load cancels the context of the one it supersedes.
// On failure the previous data is kept and Err is set.
func (r *Resource[T]) Load(ctx context.Context, fn Loader[T]) error {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.loader = fn
	r.snap.Loading = true
	r.mu.Unlock()
	defer cancel()

	if r.stats != nil {
		r.stats.RecordStart()
	}

	data, err := fn(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		if r.stats != nil {
			r.stats.RecordStale()
		}
		return ErrStale
	}

	r.cancel = nil
	r.snap.Loading = false
	if r.stats != nil {
		r.stats.RecordResult(err)
	}
	if err != nil {
		r.snap.Err = ErrorMessage(err)
		return err
	}
	r.snap.Data = data
	r.snap.Loaded = true
	r.snap.Err = ""
	r.snap.UpdatedAt = r.now()
	return nil
}

// Refetch repeats the most recent Load.
func (r *Resource[T]) Refetch(ctx context.Context) error {
	r.mu.Lock()
	fn := r.loader
	r.mu.Unlock()
	if fn == nil {
		return ErrNoLoader
	}
	return r.Load(ctx, fn)
}

func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// Clear drops the loaded data but keeps the error message.
func (r *Resource[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	r.snap.Data = zero
	r.snap.Loaded = false
}

// Fail records a failure that happened before any request was made, such
// as invalid input.
func (r *Resource[T]) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Err = ErrorMessage(err)
}
