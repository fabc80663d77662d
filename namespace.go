package rapidid

import "github.com/google/uuid"

// Well-known namespaces from RFC 4122 Appendix C, for name-based UUIDs.
var (
	NamespaceDNS  = FromGoogle(uuid.NameSpaceDNS)
	NamespaceURL  = FromGoogle(uuid.NameSpaceURL)
	NamespaceOID  = FromGoogle(uuid.NameSpaceOID)
	NamespaceX500 = FromGoogle(uuid.NameSpaceX500)
)

// NewMD5 returns the version 3 UUID of name within namespace.
func NewMD5(namespace UUID, name []byte) UUID {
	return FromGoogle(uuid.NewMD5(namespace.ToGoogle(), name))
}

// NewSHA1 returns the version 5 UUID of name within namespace.
func NewSHA1(namespace UUID, name []byte) UUID {
	return FromGoogle(uuid.NewSHA1(namespace.ToGoogle(), name))
}

// ToGoogle converts to github.com/google/uuid's representation.
func (u UUID) ToGoogle() uuid.UUID {
	return uuid.UUID(u)
}

// FromGoogle converts from github.com/google/uuid's representation.
func FromGoogle(g uuid.UUID) UUID {
	return UUID(g)
}
