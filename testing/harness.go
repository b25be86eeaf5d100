package aelftest

import (
	"context"
	"testing"

	"github.com/blockberries/aelf"
	"github.com/blockberries/aelf/types"
)

// Harness wraps an aelf.Service with helpers that fail the test on
// unexpected errors.
type Harness struct {
	t   *testing.T
	svc aelf.Service
}

// NewHarness creates a test harness around svc.
func NewHarness(t *testing.T, svc aelf.Service) *Harness {
	t.Helper()
	return &Harness{t: t, svc: svc}
}

// Service returns the wrapped service for direct access.
func (h *Harness) Service() aelf.Service {
	return h.svc
}

// DecodeAddress decodes text, failing the test on error.
func (h *Harness) DecodeAddress(text string) types.Address {
	h.t.Helper()
	addr, err := h.svc.DecodeAddress(context.Background(), text)
	if err != nil {
		h.t.Fatalf("DecodeAddress(%q) failed: %v", text, err)
	}
	return addr
}

// EncodeAddress encodes addr, failing the test on error.
func (h *Harness) EncodeAddress(addr types.Address) string {
	h.t.Helper()
	text, err := h.svc.EncodeAddress(context.Background(), addr)
	if err != nil {
		h.t.Fatalf("EncodeAddress(%x) failed: %v", addr.Value, err)
	}
	return text
}

// DecodeHash decodes text, failing the test on error.
func (h *Harness) DecodeHash(text string) types.Hash {
	h.t.Helper()
	hash, err := h.svc.DecodeHash(context.Background(), text)
	if err != nil {
		h.t.Fatalf("DecodeHash(%q) failed: %v", text, err)
	}
	return hash
}

// EncodeHash encodes hash, failing the test on error.
func (h *Harness) EncodeHash(hash types.Hash) string {
	h.t.Helper()
	text, err := h.svc.EncodeHash(context.Background(), hash)
	if err != nil {
		h.t.Fatalf("EncodeHash(%x) failed: %v", hash.Value, err)
	}
	return text
}

// DecodeAddressKind decodes text, expecting a decode failure, and
// returns its kind.
func (h *Harness) DecodeAddressKind(text string) types.ErrorKind {
	h.t.Helper()
	_, err := h.svc.DecodeAddress(context.Background(), text)
	return h.kind("DecodeAddress", text, err)
}

// DecodeHashKind decodes text, expecting a decode failure, and
// returns its kind.
func (h *Harness) DecodeHashKind(text string) types.ErrorKind {
	h.t.Helper()
	_, err := h.svc.DecodeHash(context.Background(), text)
	return h.kind("DecodeHash", text, err)
}

func (h *Harness) kind(method, text string, err error) types.ErrorKind {
	h.t.Helper()
	if err == nil {
		h.t.Fatalf("%s(%q) succeeded, expected a decode error", method, text)
	}
	d, ok := aelf.IsDecodeError(err)
	if !ok {
		h.t.Fatalf("%s(%q) returned %T (%v), expected *types.DecodeError", method, text, err, err)
	}
	return d.Kind
}

// Analyze flattens root and analyzes it, failing the test on error.
func (h *Harness) Analyze(root *types.TransactionTrace) types.TraceSummary {
	h.t.Helper()
	summary, err := h.svc.AnalyzeTrace(context.Background(), types.FlattenTrace(root))
	if err != nil {
		h.t.Fatalf("AnalyzeTrace failed: %v", err)
	}
	return summary
}
