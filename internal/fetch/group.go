package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// All runs fns in parallel. The first failure cancels the others and is
// returned.
func All(ctx context.Context, fns ...func(ctx context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error {
			return fn(ctx)
		})
	}
	return g.Wait()
}
