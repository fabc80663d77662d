package rapidid

import (
	"encoding/binary"
	"io"
	"sync"
	"time"
)

// Generator is a thread-safe UUIDv7 generator that ensures monotonicity
// within the same millisecond by using a counter with random data.
type Generator struct {
	mu            sync.Mutex
	lastTimestamp uint64
	clockSeq      uint16 // 12-bit counter for sub-millisecond ordering
	randReader    io.Reader
	clock         Clock
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithReader replaces the random source. This is primarily useful for
// testing with deterministic random sources.
func WithReader(r io.Reader) GeneratorOption {
	return func(g *Generator) { g.randReader = r }
}

// WithClock replaces the time source.
func WithClock(c Clock) GeneratorOption {
	return func(g *Generator) { g.clock = c }
}

// NewGenerator creates a new UUIDv7 generator with crypto/rand as the random
// source and the system clock as the time source.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		randReader: entropy,
		clock:      SystemClock,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New generates a new UUIDv7 with the current timestamp.
// This method is thread-safe and ensures monotonic ordering of UUIDs
// generated within the same millisecond.
func (g *Generator) New() (UUID, error) {
	return g.NewWithTime(g.clock.Now())
}

// NewWithTime generates a new UUIDv7 with the specified timestamp.
// This method is thread-safe and ensures monotonic ordering.
func (g *Generator) NewWithTime(t time.Time) (UUID, error) {
	var uuid UUID

	// Get Unix timestamp in milliseconds (48 bits)
	timestamp := uint64(t.UnixMilli()) & 0xFFFFFFFFFFFF

	g.mu.Lock()
	defer g.mu.Unlock()

	// Same or earlier millisecond: stay on the last one and advance the counter
	if timestamp <= g.lastTimestamp {
		timestamp = g.lastTimestamp
		g.clockSeq++
		// Counter exhausted its 12 bits, borrow the next millisecond
		if g.clockSeq > 0xFFF {
			g.clockSeq = 0
			timestamp = g.lastTimestamp + 1
			g.lastTimestamp = timestamp
		}
	} else {
		/*
		 *The 12-bit rand_a field and the 62-bit rand_b field SHOULD be filled with
		 *random data, such as from a cryptographically secure random number generator.
		 */
		// New millisecond, generate new random clock sequence.
		// The top bit is left clear so the counter has room to grow.
		var randBytes [2]byte
		if err := readRandom(g.randReader, randBytes[:]); err != nil {
			return Nil, err
		}
		g.clockSeq = binary.BigEndian.Uint16(randBytes[:]) & 0x7FF
		g.lastTimestamp = timestamp
	}

	// Encode timestamp (48 bits) - bytes 0-5
	binary.BigEndian.PutUint64(uuid[0:8], timestamp<<16)

	// Encode version (4 bits) and clock_seq_hi (12 bits) - bytes 6-7
	// Version 7 = 0111
	uuid[6] = byte(0x70 | (g.clockSeq >> 8)) // version (4 bits) + clock_seq_hi (4 bits)
	uuid[7] = byte(g.clockSeq)               // clock_seq_lo (8 bits)

	// Generate random data for bytes 8-15 (64 bits)
	if err := readRandom(g.randReader, uuid[8:]); err != nil {
		return Nil, err
	}

	// Set variant to RFC 4122 (10xx xxxx)
	uuid[8] = (uuid[8] & 0x3F) | 0x80

	return uuid, nil
}

// Must is a helper that wraps a call to a function returning (UUID, error)
// and panics if the error is non-nil. It is intended for use in variable
// initializations such as:
//
//	var id = rapidid.Must(generator.New())
func Must(uuid UUID, err error) UUID {
	if err != nil {
		panic(err)
	}
	return uuid
}

// defaultGenerator is the package-level generator used by the New* functions
var defaultGenerator = NewGenerator()

// New generates a new UUIDv7 using the default generator.
// This is a convenience function that uses the package-level generator.
func New() (UUID, error) {
	return defaultGenerator.New()
}

// NewV7 is an alias for New that names the version explicitly.
func NewV7() (UUID, error) {
	return defaultGenerator.New()
}

// Timestamp extracts the Unix timestamp (in milliseconds) from a UUIDv7
func (u UUID) Timestamp() int64 {
	if u.Version() != VersionTimeSorted {
		return 0
	}
	// Extract 48-bit timestamp from bytes 0-5
	timestamp := uint64(u[0])<<40 |
		uint64(u[1])<<32 |
		uint64(u[2])<<24 |
		uint64(u[3])<<16 |
		uint64(u[4])<<8 |
		uint64(u[5])
	return int64(timestamp)
}

// NewShortID returns the 16-character short ID of a fresh UUIDv7.
func NewShortID() (string, error) {
	uuid, err := defaultGenerator.New()
	if err != nil {
		return "", err
	}
	return uuid.ShortID(), nil
}
