package rapidid

import (
	crand "crypto/rand"
	"fmt"
	"io"
	"math/rand/v2"
)

// entropy is the process-wide random source. crypto/rand is safe for
// concurrent use, so it is shared by all single-item calls.
var entropy io.Reader = crand.Reader

// readRandom fills b from r, wrapping any failure in ErrEntropy.
func readRandom(r io.Reader, b []byte) error {
	if _, err := io.ReadFull(r, b); err != nil {
		return fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return nil
}

// newWorkerReader returns a ChaCha8 stream seeded with 32 bytes from r.
// Each batch worker owns one, so workers never contend on a lock and
// never share state.
func newWorkerReader(r io.Reader) (io.Reader, error) {
	var seed [32]byte
	if err := readRandom(r, seed[:]); err != nil {
		return nil, err
	}
	return rand.NewChaCha8(seed), nil
}
