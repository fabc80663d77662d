package rapidid

import "errors"

var (
	// ErrInvalidFormat indicates that the UUID string format is invalid
	ErrInvalidFormat = errors.New("rapidid: invalid UUID format")

	// ErrInvalidLength indicates that the UUID byte slice has incorrect length
	ErrInvalidLength = errors.New("rapidid: invalid UUID length (expected 16 bytes)")

	// ErrNoSource is returned by Build when neither a hex string nor bytes were supplied
	ErrNoSource = errors.New("rapidid: one of hex or bytes must be given")

	// ErrConflictingSource is returned by Build when both a hex string and bytes were supplied
	ErrConflictingSource = errors.New("rapidid: hex and bytes are mutually exclusive")

	// ErrInvalidArgument indicates a non-positive size or a negative count
	ErrInvalidArgument = errors.New("rapidid: invalid argument")

	// ErrEntropy indicates that the random source could not supply bytes.
	// Generation is aborted; there is no fallback to a weaker source.
	ErrEntropy = errors.New("rapidid: entropy source failure")
)
