package rapidid

import (
	"fmt"
	"io"

	"github.com/Lzww0608/rapidid/internal/fanout"
)

// Batcher generates many identifiers at once across several goroutines.
// Every goroutine draws from its own ChaCha8 stream seeded from the process
// entropy source, so no lock is shared between them.
//
// Results come back in index order. Within the slice handled by one
// goroutine v7 UUIDs are monotonic; across slices no order is promised.
type Batcher struct {
	opts       fanout.Options
	randReader io.Reader
	clock      Clock
}

// BatchOption configures a Batcher.
type BatchOption func(*Batcher)

// WithWorkers caps the number of goroutines. Zero or less means GOMAXPROCS.
func WithWorkers(n int) BatchOption {
	return func(b *Batcher) { b.opts.Workers = n }
}

// WithMinChunk sets the fewest identifiers one goroutine is given.
func WithMinChunk(n int) BatchOption {
	return func(b *Batcher) { b.opts.MinChunk = n }
}

// WithBatchReader replaces the source the per-worker streams are seeded from.
func WithBatchReader(r io.Reader) BatchOption {
	return func(b *Batcher) { b.randReader = r }
}

// WithBatchClock replaces the time source of v7 batches.
func WithBatchClock(c Clock) BatchOption {
	return func(b *Batcher) { b.clock = c }
}

// NewBatcher returns a Batcher using crypto/rand seeds and the system clock.
func NewBatcher(opts ...BatchOption) *Batcher {
	b := &Batcher{
		randReader: entropy,
		clock:      SystemClock,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBatcher = NewBatcher()

// V4 returns count random UUIDs.
func (b *Batcher) V4(count int) ([]UUID, error) {
	return runBatch(b, count, func(r io.Reader) fanout.Worker[UUID] {
		return func(int) (UUID, error) { return newV4(r) }
	})
}

// V7 returns count time-ordered UUIDs.
func (b *Batcher) V7(count int) ([]UUID, error) {
	return runBatch(b, count, b.v7Worker)
}

// ShortIDs returns count short IDs.
func (b *Batcher) ShortIDs(count int) ([]string, error) {
	return runBatch(b, count, func(r io.Reader) fanout.Worker[string] {
		next := b.v7Worker(r)
		return func(i int) (string, error) {
			uuid, err := next(i)
			if err != nil {
				return "", err
			}
			return uuid.ShortID(), nil
		}
	})
}

// NanoIDs returns count NanoIDs of size characters each.
func (b *Batcher) NanoIDs(count, size int) ([]string, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return runBatch(b, count, func(r io.Reader) fanout.Worker[string] {
		return func(int) (string, error) { return newNanoID(r, size) }
	})
}

func (b *Batcher) v7Worker(r io.Reader) fanout.Worker[UUID] {
	gen := NewGenerator(WithReader(r), WithClock(b.clock))
	return func(int) (UUID, error) { return gen.New() }
}

func runBatch[T any](b *Batcher, count int, worker func(io.Reader) fanout.Worker[T]) ([]T, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative, got %d", ErrInvalidArgument, count)
	}
	return fanout.Run(count, b.opts, func() (fanout.Worker[T], error) {
		r, err := newWorkerReader(b.randReader)
		if err != nil {
			return nil, err
		}
		return worker(r), nil
	})
}

// NewV4Batch returns count random UUIDs using the default Batcher.
func NewV4Batch(count int) ([]UUID, error) {
	return defaultBatcher.V4(count)
}

// NewV7Batch returns count time-ordered UUIDs using the default Batcher.
func NewV7Batch(count int) ([]UUID, error) {
	return defaultBatcher.V7(count)
}

// NewShortIDBatch returns count short IDs using the default Batcher.
func NewShortIDBatch(count int) ([]string, error) {
	return defaultBatcher.ShortIDs(count)
}

// NewNanoIDBatch returns count NanoIDs of size characters using the default Batcher.
func NewNanoIDBatch(count, size int) ([]string, error) {
	return defaultBatcher.NanoIDs(count, size)
}
