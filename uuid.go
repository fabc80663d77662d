package rapidid

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// UUID represents a Universally Unique Identifier as defined by RFC 4122 and RFC 9562.
// The UUID is a 128-bit (16 byte) value that is used to uniquely identify information.
type UUID [16]byte

// Version represents the UUID version
type Version byte

const (
	_ Version = iota
	VersionTimeBased
	VersionDCESecurity
	VersionNameBasedMD5
	VersionRandom
	VersionNameBasedSHA1
	_
	VersionTimeSorted // UUIDv7
	VersionCustom     // UUIDv8
)

// Variant represents the UUID variant
type Variant byte

const (
	VariantNCS Variant = iota
	VariantRFC4122
	VariantMicrosoft
	VariantFuture
)

// String describes the variant the same way RFC 4122 section 4.1.1 does.
func (v Variant) String() string {
	switch v {
	case VariantNCS:
		return "reserved for NCS compatibility"
	case VariantRFC4122:
		return "specified in RFC 4122"
	case VariantMicrosoft:
		return "reserved for Microsoft compatibility"
	default:
		return "reserved for future definition"
	}
}

// Nil is the nil UUID (all zeros)
var Nil UUID

// Version returns the version of the UUID
func (u UUID) Version() Version {
	return Version(u[6] >> 4)
}

// Variant returns the variant of the UUID
func (u UUID) Variant() Variant {
	switch {
	case (u[8] & 0x80) == 0x00:
		return VariantNCS
	case (u[8] & 0xc0) == 0x80:
		return VariantRFC4122
	case (u[8] & 0xe0) == 0xc0:
		return VariantMicrosoft
	default:
		return VariantFuture
	}
}

// setVersion stamps the version nibble and the RFC 4122 variant bits.
func (u *UUID) setVersion(v Version) {
	u[6] = (u[6] & 0x0f) | byte(v)<<4
	u[8] = (u[8] & 0x3f) | 0x80
}

// String returns the canonical string representation of the UUID
// in the format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) String() string {
	var buf [36]byte
	encodeHex(buf[:], u)
	return string(buf[:])
}

// encodeHex encodes UUID to its canonical hex representation
func encodeHex(dst []byte, u UUID) {
	hex.Encode(dst[0:8], u[0:4])
	dst[8] = '-'
	hex.Encode(dst[9:13], u[4:6])
	dst[13] = '-'
	hex.Encode(dst[14:18], u[6:8])
	dst[18] = '-'
	hex.Encode(dst[19:23], u[8:10])
	dst[23] = '-'
	hex.Encode(dst[24:36], u[10:16])
}

// Parse parses a UUID from its string representation.
// Hyphens are ignored wherever they appear and case does not matter, so all of
// these are accepted:
//   - xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx (canonical)
//   - urn:uuid:xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
//   - {xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx}
//   - xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx (without hyphens)
//
// Anything that does not reduce to exactly 32 hex digits is ErrInvalidFormat.
func Parse(s string) (UUID, error) {
	var uuid UUID

	// Remove common prefixes and suffixes
	s = strings.TrimPrefix(s, "urn:uuid:")
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")

	var digits [32]byte
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			continue
		}
		if n == len(digits) {
			return uuid, ErrInvalidFormat
		}
		digits[n] = s[i]
		n++
	}
	if n != len(digits) {
		return uuid, ErrInvalidFormat
	}
	if _, err := hex.Decode(uuid[:], digits[:]); err != nil {
		return uuid, ErrInvalidFormat
	}
	return uuid, nil
}

// MustParse is like Parse but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParse(s string) UUID {
	uuid, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("rapidid: Parse(%q): %v", s, err))
	}
	return uuid
}

// Source selects the input Build constructs a UUID from.
type Source func(*buildSource)

type buildSource struct {
	hex      string
	hasHex   bool
	bytes    []byte
	hasBytes bool
}

// WithHex builds from a hex string in any form Parse accepts.
func WithHex(s string) Source {
	return func(b *buildSource) {
		b.hex = s
		b.hasHex = true
	}
}

// WithBytes builds from exactly 16 raw bytes.
func WithBytes(p []byte) Source {
	return func(b *buildSource) {
		b.bytes = p
		b.hasBytes = true
	}
}

// Build constructs a UUID from exactly one source. Supplying none returns
// ErrNoSource and supplying both returns ErrConflictingSource; Build never
// picks one silently.
func Build(sources ...Source) (UUID, error) {
	var src buildSource
	for _, s := range sources {
		s(&src)
	}
	switch {
	case src.hasHex && src.hasBytes:
		return Nil, ErrConflictingSource
	case src.hasHex:
		return Parse(src.hex)
	case src.hasBytes:
		return FromBytes(src.bytes)
	default:
		return Nil, ErrNoSource
	}
}

// Bytes returns a copy of the UUID as a byte slice
func (u UUID) Bytes() []byte {
	b := make([]byte, 16)
	copy(b, u[:])
	return b
}

// Int returns the UUID as an unsigned 128-bit integer.
func (u UUID) Int() *big.Int {
	return new(big.Int).SetBytes(u[:])
}

// Uint128 returns the high and low 64-bit halves of the UUID.
func (u UUID) Uint128() (hi, lo uint64) {
	return binary.BigEndian.Uint64(u[0:8]), binary.BigEndian.Uint64(u[8:16])
}

// Hash returns a 64-bit hash of the full value. Equal UUIDs hash equally.
func (u UUID) Hash() uint64 {
	return xxhash.Sum64(u[:])
}

// IsNil returns true if the UUID is the nil UUID (all zeros)
func (u UUID) IsNil() bool {
	return u == Nil
}

// Time returns the embedded creation time of a v1 or v7 UUID and the zero
// time for every other version.
func (u UUID) Time() time.Time {
	switch u.Version() {
	case VersionTimeSorted:
		return time.UnixMilli(u.Timestamp())
	case VersionTimeBased:
		ticks := int64(u.gregorianTicks()) - gregorianOffset
		return time.Unix(0, ticks*100)
	default:
		return time.Time{}
	}
}

// MarshalText implements the encoding.TextMarshaler interface
func (u UUID) MarshalText() ([]byte, error) {
	var buf [36]byte
	encodeHex(buf[:], u)
	return buf[:], nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface
func (u *UUID) UnmarshalText(data []byte) error {
	id, err := Parse(string(data))
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (u UUID) MarshalBinary() ([]byte, error) {
	return u.Bytes(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (u *UUID) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return ErrInvalidLength
	}
	copy(u[:], data)
	return nil
}

// Scan implements the sql.Scanner interface for database compatibility
func (u *UUID) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		id, err := Parse(src)
		if err != nil {
			return err
		}
		*u = id
		return nil
	case []byte:
		if len(src) == 16 {
			copy(u[:], src)
			return nil
		}
		if len(src) == 0 {
			return nil
		}
		id, err := Parse(string(src))
		if err != nil {
			return err
		}
		*u = id
		return nil
	default:
		return fmt.Errorf("rapidid: cannot scan type %T into UUID", src)
	}
}

// Value implements the driver.Valuer interface for database compatibility
func (u UUID) Value() (driver.Value, error) {
	return u.String(), nil
}

// Compare returns an integer comparing two UUIDs lexicographically.
// The result will be 0 if u==other, -1 if u < other, and +1 if u > other.
func (u UUID) Compare(other UUID) int {
	for i := 0; i < 16; i++ {
		if u[i] < other[i] {
			return -1
		}
		if u[i] > other[i] {
			return 1
		}
	}
	return 0
}

// Equal returns true if u and other represent the same UUID
func (u UUID) Equal(other UUID) bool {
	return u == other
}
