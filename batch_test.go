package rapidid

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNewV4Batch(t *testing.T) {
	ids, err := NewV4Batch(1000)
	if err != nil {
		t.Fatalf("NewV4Batch() error = %v", err)
	}
	if len(ids) != 1000 {
		t.Fatalf("NewV4Batch() returned %d ids, want 1000", len(ids))
	}

	seen := make(map[UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate UUID %v", id)
		}
		seen[id] = true
		if id.Version() != VersionRandom || id.Variant() != VariantRFC4122 {
			t.Fatalf("bad layout: %v", id)
		}
	}
}

func TestBatcher_ManyWorkersAreIndependent(t *testing.T) {
	b := NewBatcher(WithWorkers(16), WithMinChunk(1))
	ids, err := b.V4(50_000)
	if err != nil {
		t.Fatalf("V4() error = %v", err)
	}

	seen := make(map[UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate UUID %v across workers", id)
		}
		seen[id] = true
	}
}

func TestNewV7Batch(t *testing.T) {
	ids, err := NewV7Batch(5000)
	if err != nil {
		t.Fatalf("NewV7Batch() error = %v", err)
	}
	seen := make(map[UUID]bool, len(ids))
	for _, id := range ids {
		if id.Version() != VersionTimeSorted || id.Variant() != VariantRFC4122 {
			t.Fatalf("bad layout: %v", id)
		}
		if seen[id] {
			t.Fatalf("duplicate UUID %v", id)
		}
		seen[id] = true
	}
}

func TestBatcher_V7SingleWorkerIsMonotonic(t *testing.T) {
	b := NewBatcher(WithWorkers(1))
	ids, err := b.V7(2000)
	if err != nil {
		t.Fatalf("V7() error = %v", err)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i].Compare(ids[i-1]) <= 0 {
			t.Fatalf("ids[%d] = %v not after %v", i, ids[i], ids[i-1])
		}
	}
}

func TestNewShortIDBatch(t *testing.T) {
	ids, err := NewShortIDBatch(1000)
	if err != nil {
		t.Fatalf("NewShortIDBatch() error = %v", err)
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if len(id) != ShortIDLen || strings.Contains(id, "=") {
			t.Fatalf("bad short id %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate short id %q", id)
		}
		seen[id] = true
	}
}

func TestNewNanoIDBatch(t *testing.T) {
	ids, err := NewNanoIDBatch(1000, 10)
	if err != nil {
		t.Fatalf("NewNanoIDBatch() error = %v", err)
	}
	if len(ids) != 1000 {
		t.Fatalf("NewNanoIDBatch() returned %d ids", len(ids))
	}
	for _, id := range ids {
		if len(id) != 10 || strings.Trim(id, NanoIDAlphabet) != "" {
			t.Fatalf("bad nano id %q", id)
		}
	}

	if _, err := NewNanoIDBatch(10, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewNanoIDBatch(size 0) error = %v, want %v", err, ErrInvalidArgument)
	}
}

func TestBatch_Count(t *testing.T) {
	ids, err := NewV4Batch(0)
	if err != nil {
		t.Fatalf("NewV4Batch(0) error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("NewV4Batch(0) returned %d ids", len(ids))
	}

	if _, err := NewV7Batch(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewV7Batch(-1) error = %v, want %v", err, ErrInvalidArgument)
	}
}

// lockedReader counts the seeds handed out through it.
type lockedReader struct {
	mu    sync.Mutex
	reads int
	fail  bool
}

func (r *lockedReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return 0, errors.New("no entropy")
	}
	r.reads++
	for i := range p {
		p[i] = byte(r.reads)
	}
	return len(p), nil
}

func TestBatcher_SeedsEachWorker(t *testing.T) {
	r := &lockedReader{}
	b := NewBatcher(WithWorkers(4), WithMinChunk(10), WithBatchReader(r))

	ids, err := b.V4(100)
	if err != nil {
		t.Fatalf("V4() error = %v", err)
	}
	if r.reads != 4 {
		t.Errorf("seed reads = %d, want one per worker (4)", r.reads)
	}
	// Workers seeded differently must not repeat each other.
	if ids[0] == ids[25] || ids[0] == ids[50] || ids[0] == ids[75] {
		t.Error("workers produced identical streams")
	}
}

func TestBatcher_EntropyFailure(t *testing.T) {
	b := NewBatcher(WithBatchReader(&lockedReader{fail: true}))
	if _, err := b.V4(10); !errors.Is(err, ErrEntropy) {
		t.Errorf("V4() error = %v, want %v", err, ErrEntropy)
	}
}
