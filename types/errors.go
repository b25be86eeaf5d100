package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an identifier could not be decoded.
// Different kinds imply different remediation: a checksum mismatch
// usually means a typo, a length error means the wrong kind of
// identifier was supplied.
type ErrorKind uint8

const (
	// KindEncoding means the text is not valid base58 or hex.
	KindEncoding ErrorKind = 1
	// KindChecksumTooShort means the decoded base58 payload cannot
	// even hold a checksum.
	KindChecksumTooShort ErrorKind = 2
	// KindChecksumMismatch means the embedded checksum does not match
	// the payload.
	KindChecksumMismatch ErrorKind = 3
	// KindInvalidLength means the payload is not exactly 32 bytes.
	KindInvalidLength ErrorKind = 4
)

// Sentinel errors, one per kind. A *DecodeError matches the sentinel
// of its kind under errors.Is.
var (
	ErrEncoding         = errors.New("invalid encoding")
	ErrChecksumTooShort = errors.New("input too short to contain checksum")
	ErrChecksumMismatch = errors.New("checksum does not match")
	ErrInvalidLength    = errors.New("invalid length")
)

func (k ErrorKind) String() string {
	switch k {
	case KindEncoding:
		return "EncodingError"
	case KindChecksumTooShort:
		return "ChecksumTooShort"
	case KindChecksumMismatch:
		return "ChecksumMismatch"
	case KindInvalidLength:
		return "InvalidLength"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Sentinel returns the sentinel error for the kind, or nil for an
// unknown kind.
func (k ErrorKind) Sentinel() error {
	switch k {
	case KindEncoding:
		return ErrEncoding
	case KindChecksumTooShort:
		return ErrChecksumTooShort
	case KindChecksumMismatch:
		return ErrChecksumMismatch
	case KindInvalidLength:
		return ErrInvalidLength
	default:
		return nil
	}
}

// DecodeError reports a failure to decode an identifier from text.
type DecodeError struct {
	Kind  ErrorKind
	Input string
	// Err is the underlying cause, if any (e.g. the base58 or hex
	// library error).
	Err error
}

func (e *DecodeError) Error() string {
	msg := e.Kind.String()
	if s := e.Kind.Sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("decode %q: %s: %v", e.Input, msg, e.Err)
	}
	return fmt.Sprintf("decode %q: %s", e.Input, msg)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrChecksumMismatch) and friends work.
func (e *DecodeError) Is(target error) bool {
	s := e.Kind.Sentinel()
	return s != nil && s == target
}

func newDecodeError(kind ErrorKind, input string, cause error) *DecodeError {
	return &DecodeError{Kind: kind, Input: input, Err: cause}
}
