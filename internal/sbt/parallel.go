package sbt

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// cancelCheckEvery is how many points a worker classifies between
// context checks.
const cancelCheckEvery = 1024

// ClassifyParallel classifies points across up to workers goroutines and
// returns exactly what ClassifyPoints would. Points are independent, so the
// batch is split into contiguous chunks, one per worker. A cancelled context
// aborts the batch without partial results.
func (c *Classifier) ClassifyParallel(ctx context.Context, points []Point, workers int) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers <= 1 || len(points) <= workers {
		return c.ClassifyPoints(points)
	}
	if err := Validate(points); err != nil {
		return nil, err
	}

	zones := registry()
	codes := make([]int, len(points))
	chunk := (len(points) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(points); start += chunk {
		end := min(start+chunk, len(points))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if (i-start)%cancelCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				codes[i] = c.classifyOne(zones, i, points[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return codes, nil
}
