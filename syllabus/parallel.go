package syllabus

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// mapOrdered calls fn for every index in [0, n) on at most workers
// goroutines. out[i] always holds fn(i), so output order equals input order
// whatever the scheduling. Indices not started before ctx is done keep the
// zero value.
func mapOrdered[T any](ctx context.Context, n, workers int, fn func(i int) T) []T {
	out := make([]T, n)
	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if ctx.Err() != nil {
				break
			}
			out[i] = fn(i)
		}
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = fn(i)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
