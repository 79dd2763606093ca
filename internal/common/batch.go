package common

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// RunBatch applies fn to every file with at most limit calls in flight.
// Results keep the order of files. The first error cancels the rest.
func RunBatch[T any](ctx context.Context, files []string, limit int, fn func(context.Context, string) (T, error)) ([]T, error) {
	results := make([]T, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := fn(ctx, file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
