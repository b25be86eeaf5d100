// Package aelf exposes AElf identifier decoding and transaction trace
// aggregation as a service that block-processing pipelines can call
// in-process (package local) or over gRPC (package aelfgrpc).
//
// The pure building blocks live in package types (identifier codec,
// message schema) and package trace (success determination and state
// change flattening). The interfaces here describe the service
// boundary that wraps them.
package aelf

import (
	"context"

	"github.com/blockberries/aelf/types"
)

// Codec converts identifiers between their binary and text forms.
//
// Decode failures are returned as *types.DecodeError so that callers
// can tell a mistyped address (ChecksumMismatch) from the wrong kind
// of identifier (InvalidLength).
type Codec interface {
	// DecodeAddress parses a base58check address.
	DecodeAddress(ctx context.Context, text string) (types.Address, error)

	// EncodeAddress renders an address as base58check. The address is
	// not length checked; encoding never fails on content.
	EncodeAddress(ctx context.Context, addr types.Address) (string, error)

	// DecodeHash parses a 64-character hex hash.
	DecodeHash(ctx context.Context, text string) (types.Hash, error)

	// EncodeHash renders a hash as lowercase hex.
	EncodeHash(ctx context.Context, hash types.Hash) (string, error)
}

// TraceAnalyzer aggregates a transaction trace.
type TraceAnalyzer interface {
	// AnalyzeTrace rebuilds the trace tree from its flat form and
	// returns its success flag with the raw and the valid state change
	// streams. The only error condition is a malformed arena; a failed
	// execution is reported through the summary, never as an error.
	AnalyzeTrace(ctx context.Context, arena types.TraceArena) (types.TraceSummary, error)
}

// Service is the full surface offered to pipelines.
type Service interface {
	Codec
	TraceAnalyzer
}

// Connection is a transport-agnostic handle on a Service. Both the
// gRPC client and the in-process adapter implement it.
type Connection interface {
	Service

	// Close releases the connection. Calls made after Close fail with
	// a *ClosedError.
	Close() error
}
