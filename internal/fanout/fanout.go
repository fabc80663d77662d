// Package fanout runs n independent jobs over a bounded set of goroutines and
// returns the results in index order.
//
// The index range is cut into contiguous chunks. Every chunk runs on its own
// goroutine with a worker built just for it, so workers share no state and a
// worker sees its indexes in increasing order.
package fanout

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultMinChunk keeps small batches on few goroutines; below this many items
// per chunk the spawn cost outweighs the work.
const DefaultMinChunk = 256

// Options controls the partitioning.
type Options struct {
	// Workers caps the number of chunks. Zero means runtime.GOMAXPROCS(0).
	Workers int
	// MinChunk is the smallest chunk handed to a worker. Zero means DefaultMinChunk.
	MinChunk int
}

// Worker produces the item for index i. A Worker is only ever called from one
// goroutine.
type Worker[T any] func(i int) (T, error)

// Run calls newWorker once per chunk and fills out[i] with that chunk
// worker's result for i. If any worker fails, Run waits for the others and
// returns the first error. n <= 0 returns an empty slice without starting work.
func Run[T any](n int, opts Options, newWorker func() (Worker[T], error)) ([]T, error) {
	if n <= 0 {
		return []T{}, nil
	}

	out := make([]T, n)
	chunks := Chunks(n, opts)

	var g errgroup.Group
	for _, c := range chunks {
		g.Go(func() error {
			work, err := newWorker()
			if err != nil {
				return err
			}
			for i := c.Start; i < c.End; i++ {
				v, err := work(i)
				if err != nil {
					return err
				}
				out[i] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Chunk is the half-open index range [Start, End).
type Chunk struct {
	Start, End int
}

// Chunks splits [0, n) into at most opts.Workers contiguous ranges of at
// least opts.MinChunk items (the last range may be shorter only when n is).
func Chunks(n int, opts Options) []Chunk {
	if n <= 0 {
		return nil
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	minChunk := opts.MinChunk
	if minChunk <= 0 {
		minChunk = DefaultMinChunk
	}

	count := min(workers, max(1, n/minChunk))
	size := n / count
	extra := n % count

	chunks := make([]Chunk, 0, count)
	start := 0
	for i := 0; i < count; i++ {
		end := start + size
		if i < extra {
			end++
		}
		chunks = append(chunks, Chunk{Start: start, End: end})
		start = end
	}
	return chunks
}
