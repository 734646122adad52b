package worker

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/modkit-dev/modkit/internal/core/domain"
)

// Sharded splits inputs into contiguous shards, builds each shard on its own
// goroutine, and merges the results sequentially in shard order, so the
// merged output is deterministic regardless of which shard finishes first.
func Sharded[T any](
	ctx context.Context,
	inputs []T,
	workers int,
	build func(ctx context.Context, shard []T) ([]*domain.Object, error),
) ([]*domain.Object, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	shards := splitShards(inputs, workers)
	results := make([][]*domain.Object, len(shards))

	g, ctx := errgroup.WithContext(ctx)
	for i, shard := range shards {
		g.Go(func() error {
			built, err := build(ctx, shard)
			if err != nil {
				return err
			}
			results[i] = built
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []*domain.Object
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}

// splitShards cuts inputs into n contiguous pieces of near-equal size.
func splitShards[T any](inputs []T, n int) [][]T {
	shards := make([][]T, 0, n)
	size := len(inputs) / n
	rem := len(inputs) % n

	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rem {
			end++
		}
		shards = append(shards, inputs[start:end])
		start = end
	}
	return shards
}
