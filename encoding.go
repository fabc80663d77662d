package rapidid

import (
	"encoding/base64"
	"encoding/hex"

	"github.com/oklog/ulid/v2"
)

// shortAlphabet holds the 64 URL-safe base64 characters in ASCII order, so
// that comparing two short IDs as strings compares their bytes.
const shortAlphabet = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// shortEncoding encodes the 12-byte prefix of a UUID into 16 characters.
// 12 bytes is a whole number of 3-byte groups, so padding never occurs.
var shortEncoding = base64.NewEncoding(shortAlphabet).WithPadding(base64.NoPadding)

const (
	shortIDBytes = 12
	// ShortIDLen is the length of a short ID string.
	ShortIDLen = 16
	// Base64Len is the length of UUID.Base64 output.
	Base64Len = 22
)

// Hex encodes the UUID to 32 lowercase hexadecimal characters without hyphens
func (u UUID) Hex() string {
	return hex.EncodeToString(u[:])
}

// Base64 encodes the UUID to a URL-safe base64 string. 16 bytes always
// encode to exactly 22 characters, so there is never any padding.
func (u UUID) Base64() string {
	return base64.RawURLEncoding.EncodeToString(u[:])
}

// Base64Std encodes the UUID to a standard, padded base64 string
func (u UUID) Base64Std() string {
	return base64.StdEncoding.EncodeToString(u[:])
}

// ShortID encodes the first 12 bytes of the UUID in 16 URL-safe characters.
// For v7 UUIDs the prefix holds the millisecond timestamp, so short IDs sort
// in creation order.
func (u UUID) ShortID() string {
	var buf [ShortIDLen]byte
	shortEncoding.Encode(buf[:], u[:shortIDBytes])
	return string(buf[:])
}

// ULID renders the UUID as a 26-character Crockford base32 ULID. A v7 UUID
// shares ULID's 48-bit millisecond prefix, so the result stays time-sortable.
func (u UUID) ULID() string {
	return ulid.ULID(u).String()
}

// DecodeFromHex decodes exactly 32 hexadecimal characters to a UUID
func DecodeFromHex(s string) (UUID, error) {
	var uuid UUID
	if len(s) != 32 {
		return uuid, ErrInvalidFormat
	}
	_, err := hex.Decode(uuid[:], []byte(s))
	if err != nil {
		return uuid, ErrInvalidFormat
	}
	return uuid, nil
}

// DecodeFromBase64 decodes a base64 string to UUID (URL-safe encoding)
func DecodeFromBase64(s string) (UUID, error) {
	var uuid UUID
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return uuid, ErrInvalidFormat
	}
	if len(data) != 16 {
		return uuid, ErrInvalidLength
	}
	copy(uuid[:], data)
	return uuid, nil
}

// DecodeFromBase64Std decodes a standard base64 string to UUID
func DecodeFromBase64Std(s string) (UUID, error) {
	var uuid UUID
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return uuid, ErrInvalidFormat
	}
	if len(data) != 16 {
		return uuid, ErrInvalidLength
	}
	copy(uuid[:], data)
	return uuid, nil
}

// DecodeShortID returns the 12-byte UUID prefix a short ID was made from.
func DecodeShortID(s string) ([]byte, error) {
	if len(s) != ShortIDLen {
		return nil, ErrInvalidFormat
	}
	b := make([]byte, shortIDBytes)
	if _, err := shortEncoding.Decode(b, []byte(s)); err != nil {
		return nil, ErrInvalidFormat
	}
	return b, nil
}

// ParseULID decodes a 26-character ULID string into a UUID.
func ParseULID(s string) (UUID, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return Nil, ErrInvalidFormat
	}
	return UUID(id), nil
}

// FromBytes creates a UUID from a byte slice
func FromBytes(b []byte) (UUID, error) {
	var uuid UUID
	if len(b) != 16 {
		return uuid, ErrInvalidLength
	}
	copy(uuid[:], b)
	return uuid, nil
}

// MustFromBytes is like FromBytes but panics on error
func MustFromBytes(b []byte) UUID {
	uuid, err := FromBytes(b)
	if err != nil {
		panic(err)
	}
	return uuid
}
