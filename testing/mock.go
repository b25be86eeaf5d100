// Package aelftest provides test utilities for code built on the aelf
// service: a configurable mock, a test harness, trace builders and a
// compliance test suite for aelf.Connection implementations.
package aelftest

import (
	"context"
	"sync/atomic"

	"github.com/blockberries/aelf"
	"github.com/blockberries/aelf/trace"
	"github.com/blockberries/aelf/types"
)

// Compile-time check that MockService satisfies the interface.
var _ aelf.Connection = (*MockService)(nil)

// MockService is a configurable mock aelf.Connection for testing
// transports and pipelines. All methods are configurable via function
// fields. Unconfigured methods fall back to the real codec and
// aggregator.
type MockService struct {
	// Configurable handlers. If nil, defaults are used.
	DecodeAddressFn func(context.Context, string) (types.Address, error)
	EncodeAddressFn func(context.Context, types.Address) (string, error)
	DecodeHashFn    func(context.Context, string) (types.Hash, error)
	EncodeHashFn    func(context.Context, types.Hash) (string, error)
	AnalyzeTraceFn  func(context.Context, types.TraceArena) (types.TraceSummary, error)

	// Call counters (atomic for concurrent access).
	DecodeAddressCalls atomic.Int64
	EncodeAddressCalls atomic.Int64
	DecodeHashCalls    atomic.Int64
	EncodeHashCalls    atomic.Int64
	AnalyzeTraceCalls  atomic.Int64
	CloseCalls         atomic.Int64
}

func (m *MockService) DecodeAddress(ctx context.Context, text string) (types.Address, error) {
	m.DecodeAddressCalls.Add(1)
	if m.DecodeAddressFn != nil {
		return m.DecodeAddressFn(ctx, text)
	}
	return types.AddressFromBase58(text)
}

func (m *MockService) EncodeAddress(ctx context.Context, addr types.Address) (string, error) {
	m.EncodeAddressCalls.Add(1)
	if m.EncodeAddressFn != nil {
		return m.EncodeAddressFn(ctx, addr)
	}
	return addr.Base58(), nil
}

func (m *MockService) DecodeHash(ctx context.Context, text string) (types.Hash, error) {
	m.DecodeHashCalls.Add(1)
	if m.DecodeHashFn != nil {
		return m.DecodeHashFn(ctx, text)
	}
	return types.HashFromHex(text)
}

func (m *MockService) EncodeHash(ctx context.Context, h types.Hash) (string, error) {
	m.EncodeHashCalls.Add(1)
	if m.EncodeHashFn != nil {
		return m.EncodeHashFn(ctx, h)
	}
	return h.Hex(), nil
}

func (m *MockService) AnalyzeTrace(ctx context.Context, arena types.TraceArena) (types.TraceSummary, error) {
	m.AnalyzeTraceCalls.Add(1)
	if m.AnalyzeTraceFn != nil {
		return m.AnalyzeTraceFn(ctx, arena)
	}
	root, err := arena.Tree()
	if err != nil {
		return types.TraceSummary{}, err
	}
	return trace.Summarize(root), nil
}

func (m *MockService) Close() error {
	m.CloseCalls.Add(1)
	return nil
}
