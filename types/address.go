package types

import (
	"bytes"

	"github.com/minio/sha256-simd"
	"github.com/mr-tron/base58"
)

// ChecksumLength is the width of the base58check checksum.
const ChecksumLength = 4

// Address is a 32-byte account or contract address. Its text form is
// base58check: base58(value || sha256(sha256(value))[:4]).
//
// Value may hold any number of bytes when the address comes straight
// from the wire; only the decode paths enforce the 32-byte length.
type Address struct {
	Value []byte `cramberry:"1"`
}

// AddressFromBase58 decodes a base58check address. It fails at the
// first violated precondition, in this order: alphabet, checksum
// width, checksum, payload length.
func AddressFromBase58(text string) (Address, error) {
	raw, err := base58.Decode(text)
	if err != nil {
		return Address{}, newDecodeError(KindEncoding, text, err)
	}
	if len(raw) < ChecksumLength {
		return Address{}, newDecodeError(KindChecksumTooShort, text, nil)
	}

	data, sum := raw[:len(raw)-ChecksumLength], raw[len(raw)-ChecksumLength:]
	if !bytes.Equal(sum, checksum(data)) {
		return Address{}, newDecodeError(KindChecksumMismatch, text, nil)
	}
	if len(data) != IdentifierLength {
		return Address{}, newDecodeError(KindInvalidLength, text, nil)
	}
	return Address{Value: bytes.Clone(data)}, nil
}

// MustAddressFromBase58 is like AddressFromBase58 but panics on error.
// It is meant for constants and tests.
func MustAddressFromBase58(text string) Address {
	a, err := AddressFromBase58(text)
	if err != nil {
		panic(err)
	}
	return a
}

// AddressFromBytes copies b into an Address after checking its length.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != IdentifierLength {
		return Address{}, newDecodeError(KindInvalidLength, "", nil)
	}
	return Address{Value: bytes.Clone(b)}, nil
}

// Base58 returns the base58check encoding of the address.
func (a Address) Base58() string {
	buf := make([]byte, 0, len(a.Value)+ChecksumLength)
	buf = append(buf, a.Value...)
	buf = append(buf, checksum(a.Value)...)
	return base58.Encode(buf)
}

func (a Address) String() string { return a.Base58() }

func (a Address) Bytes() []byte { return a.Value }

// Equal reports whether both addresses hold the same bytes.
func (a Address) Equal(o Address) bool { return bytes.Equal(a.Value, o.Value) }

// checksum returns the first four bytes of sha256(sha256(data)).
func checksum(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:ChecksumLength]
}
