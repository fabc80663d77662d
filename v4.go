package rapidid

import "io"

// NewV4 generates a random (version 4) UUID from the process entropy source.
func NewV4() (UUID, error) {
	return newV4(entropy)
}

// newV4 fills all 128 bits from r, then stamps version 4 and the RFC 4122 variant.
func newV4(r io.Reader) (UUID, error) {
	var uuid UUID
	if err := readRandom(r, uuid[:]); err != nil {
		return Nil, err
	}
	uuid.setVersion(VersionRandom)
	return uuid, nil
}
