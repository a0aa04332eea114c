package dynamo

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Job is one independent run for RunAll.
type Job struct {
	Sim *Simulator
	X0  State
	Cfg Config
}

// RunAll runs the jobs concurrently, at most limit at a time (limit <= 0
// means GOMAXPROCS). The first failure cancels the others; results keep
// the job order.
func RunAll(ctx context.Context, jobs []Job, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	results := make([]*Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range jobs {
		g.Go(func() error {
			res, err := job.Sim.Run(ctx, job.X0, job.Cfg)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// ParallelFor executes fn over [0, n) in chunks of at least minChunk
// items. Small ranges run on the calling goroutine.
func ParallelFor(ctx context.Context, n, minChunk int, fn func(start, end int) error) error {
	workers := runtime.GOMAXPROCS(0)
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers <= 1 {
		return fn(0, n)
	}
	workers = min(workers, n/minChunk)
	chunkSize := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(start, end)
		})
	}
	return g.Wait()
}
