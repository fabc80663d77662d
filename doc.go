// Package rapidid generates and encodes unique, URL-safe identifiers at high
// throughput: UUID versions 1, 4 and 7, 16-character short IDs cut from
// time-ordered UUIDs, and NanoIDs.
//
// Basic Usage:
//
//	// Random and time-ordered UUIDs
//	id4, err := rapidid.NewV4()
//	id7, err := rapidid.NewV7()
//	fmt.Println(id7, id7.Hex(), id7.Base64(), id7.ShortID())
//
//	// Short IDs and NanoIDs
//	short, err := rapidid.NewShortID()  // 16 chars, sorts by creation time
//	nano, err := rapidid.NewNanoID()    // 21 chars over 0-9A-Za-z-_
//
//	// Construct from exactly one of hex or bytes
//	id, err := rapidid.Build(rapidid.WithHex("f47ac10b-58cc-4372-a567-0e02b2c3d479"))
//
// Batches:
//
// The New*Batch functions fan generation out over GOMAXPROCS goroutines and
// return results in index order. Each goroutine owns a ChaCha8 stream seeded
// from crypto/rand, so there is no shared lock on the hot path. Use NewBatcher
// to choose the worker count.
//
//	ids, err := rapidid.NewV4Batch(100_000)
//
// UUIDv7 layout:
//   - 48-bit timestamp (millisecond precision)
//   - 12-bit counter, randomly seeded each millisecond, for sub-millisecond ordering
//   - 62-bit random data for uniqueness
//   - Version and variant bits as defined by RFC 9562
//
// Thread Safety:
//
// All operations are thread-safe. Version 1 state (node ID and clock
// sequence) is process-wide and lock-guarded; the clock sequence advances
// whenever the wall clock is seen moving backwards.
//
// Errors:
//
// Malformed input yields ErrInvalidFormat, ErrInvalidLength, ErrNoSource or
// ErrConflictingSource. Non-positive sizes and negative counts yield
// ErrInvalidArgument. A failing random source yields ErrEntropy and nothing
// is generated; there is no fallback to weaker randomness.
package rapidid
