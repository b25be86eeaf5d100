package aelfgrpc

import (
	"errors"

	"github.com/blockberries/aelf/types"
)

// Transport-specific wrapper types for RPC methods whose interface
// signatures don't map to a single request/response struct.
// These are used only for gRPC serialization boundaries.

// DecodeRequest carries the text of an identifier to decode.
type DecodeRequest struct {
	Text string `cramberry:"1"`
}

// DecodeFailure describes a decode error in-band so that its kind
// survives the transport. Kind holds a types.ErrorKind.
type DecodeFailure struct {
	Kind  uint32 `cramberry:"1"`
	Input string `cramberry:"2"`
	Cause string `cramberry:"3"`
}

// AddressResponse wraps the result of DecodeAddress. Exactly one of
// Address and Failure is meaningful.
type AddressResponse struct {
	Address types.Address  `cramberry:"1"`
	Failure *DecodeFailure `cramberry:"2"`
}

// HashResponse wraps the result of DecodeHash.
type HashResponse struct {
	Hash    types.Hash     `cramberry:"1"`
	Failure *DecodeFailure `cramberry:"2"`
}

// TextResponse wraps the rendered text of EncodeAddress and EncodeHash.
type TextResponse struct {
	Text string `cramberry:"1"`
}

// failureFrom converts a decode error to its wire form. It returns
// nil for any other error.
func failureFrom(err error) *DecodeFailure {
	var d *types.DecodeError
	if !errors.As(err, &d) {
		return nil
	}
	f := &DecodeFailure{Kind: uint32(d.Kind), Input: d.Input}
	if d.Err != nil {
		f.Cause = d.Err.Error()
	}
	return f
}

// Err rebuilds the *types.DecodeError described by f.
func (f *DecodeFailure) Err() error {
	if f == nil {
		return nil
	}
	d := &types.DecodeError{Kind: types.ErrorKind(f.Kind), Input: f.Input}
	if f.Cause != "" {
		d.Err = errors.New(f.Cause)
	}
	return d
}
