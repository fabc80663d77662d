package rapidid

import (
	"fmt"
	"io"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// NanoIDAlphabet is the 64-symbol alphabet of NewNanoID.
	NanoIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

	// DefaultNanoIDSize is the length of NewNanoID output.
	DefaultNanoIDSize = 21
)

// NewNanoID returns a random DefaultNanoIDSize-character ID over NanoIDAlphabet.
func NewNanoID() (string, error) {
	return newNanoID(entropy, DefaultNanoIDSize)
}

// NewNanoIDSize returns a random ID of size characters over NanoIDAlphabet.
func NewNanoIDSize(size int) (string, error) {
	return newNanoID(entropy, size)
}

// NewNanoIDAlphabet returns a random ID of size characters drawn from a
// caller-supplied alphabet of 1 to 255 symbols.
func NewNanoIDAlphabet(alphabet string, size int) (string, error) {
	if err := checkSize(size); err != nil {
		return "", err
	}
	id, err := gonanoid.Generate(alphabet, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return id, nil
}

// newNanoID maps one random byte to each symbol. The alphabet has exactly
// 64 entries, so the low 6 bits index it uniformly without rejection.
func newNanoID(r io.Reader, size int) (string, error) {
	if err := checkSize(size); err != nil {
		return "", err
	}
	buf := make([]byte, size)
	if err := readRandom(r, buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = NanoIDAlphabet[b&63]
	}
	return string(buf), nil
}

func checkSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidArgument, size)
	}
	return nil
}
