// Package types defines the AElf message schema consumed by block
// processing pipelines: 32-byte identifiers, execution statuses,
// transaction traces and the state-change sets they produce.
//
// These are plain Go structs with cramberry struct tags for
// deterministic binary serialization. Transport concerns
// (gRPC codec registration) are handled in the transport packages.
package types

// IdentifierLength is the number of bytes in an Address or Hash.
const IdentifierLength = 32

// Identifier is the capability shared by Address and Hash: a
// fixed-length byte value with a canonical text form.
type Identifier interface {
	// Bytes returns the raw value.
	Bytes() []byte
	// String returns the canonical text encoding.
	String() string
}

// Compile-time interface checks.
var (
	_ Identifier = Address{}
	_ Identifier = Hash{}
)
