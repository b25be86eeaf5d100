package types

import (
	"bytes"
	"encoding/hex"
)

// Hash is a 32-byte digest (transaction id, block hash, state root).
// Its text form is plain lowercase hex without a 0x prefix.
type Hash struct {
	Value []byte `cramberry:"1"`
}

// HashFromHex decodes a 64-character hex string.
func HashFromHex(text string) (Hash, error) {
	raw, err := hex.DecodeString(text)
	if err != nil {
		return Hash{}, newDecodeError(KindEncoding, text, err)
	}
	if len(raw) != IdentifierLength {
		return Hash{}, newDecodeError(KindInvalidLength, text, nil)
	}
	return Hash{Value: raw}, nil
}

// MustHashFromHex is like HashFromHex but panics on error.
func MustHashFromHex(text string) Hash {
	h, err := HashFromHex(text)
	if err != nil {
		panic(err)
	}
	return h
}

// HashFromBytes copies b into a Hash after checking its length.
func HashFromBytes(b []byte) (Hash, error) {
	if len(b) != IdentifierLength {
		return Hash{}, newDecodeError(KindInvalidLength, "", nil)
	}
	return Hash{Value: bytes.Clone(b)}, nil
}

// Hex returns the lowercase hex encoding of the hash.
func (h Hash) Hex() string { return hex.EncodeToString(h.Value) }

func (h Hash) String() string { return h.Hex() }

func (h Hash) Bytes() []byte { return h.Value }

// Equal reports whether both hashes hold the same bytes.
func (h Hash) Equal(o Hash) bool { return bytes.Equal(h.Value, o.Value) }
