package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/rigidsim/pkg/sequence"
)

// ParallelMap applies mapFn to each element of the iterator in parallel, preserving order.
// At most workers goroutines run at once; workers <= 0 means no limit. The
// context passed to mapFn is cancelled as soon as one call fails, and the
// first error is returned.
func ParallelMap[T any, R any](ctx context.Context, i *sequence.Iterator[T], workers int, mapFn func(context.Context, T) (R, error)) ([]R, error) {
	in := i.Collect()
	out := make([]R, len(in))

	errGroup, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		errGroup.SetLimit(workers)
	}
	for idx, value := range in {
		errGroup.Go(func() error {
			r, err := mapFn(ctx, value)
			if err != nil {
				return err
			}
			out[idx] = r
			return nil
		})
	}
	if err := errGroup.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
