package aelftest

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/blockberries/aelf"
	"github.com/blockberries/aelf/types"
)

// RunComplianceSuite runs a standard compliance test suite against an
// aelf.Connection to verify that it preserves codec and aggregation
// semantics end to end.
//
// The factory function should return a fresh connection for each
// test; the suite closes it.
func RunComplianceSuite(t *testing.T, factory func(t *testing.T) aelf.Connection) {
	t.Helper()

	open := func(t *testing.T) *Harness {
		t.Helper()
		conn := factory(t)
		t.Cleanup(func() { conn.Close() })
		return NewHarness(t, conn)
	}

	t.Run("address_vector", func(t *testing.T) {
		h := open(t)
		addr := h.DecodeAddress(VectorAddress)
		if !bytes.Equal(addr.Value, VectorBytes()) {
			t.Fatalf("got %x, want %x", addr.Value, VectorBytes())
		}
		if got := h.EncodeAddress(addr); got != VectorAddress {
			t.Fatalf("got %s, want %s", got, VectorAddress)
		}
	})

	t.Run("hash_vector", func(t *testing.T) {
		h := open(t)
		hash := h.DecodeHash(VectorHash)
		if !bytes.Equal(hash.Value, VectorBytes()) {
			t.Fatalf("got %x, want %x", hash.Value, VectorBytes())
		}
		if got := h.EncodeHash(hash); got != VectorHash {
			t.Fatalf("got %s, want %s", got, VectorHash)
		}
	})

	t.Run("round_trip", func(t *testing.T) {
		h := open(t)
		for seed := uint64(0); seed < 16; seed++ {
			v := MakeIdentifier(seed)
			addr := h.DecodeAddress(h.EncodeAddress(types.Address{Value: v}))
			if !bytes.Equal(addr.Value, v) {
				t.Errorf("seed %d: address round-trip mismatch", seed)
			}
			hash := h.DecodeHash(h.EncodeHash(types.Hash{Value: v}))
			if !bytes.Equal(hash.Value, v) {
				t.Errorf("seed %d: hash round-trip mismatch", seed)
			}
		}
	})

	t.Run("decode_error_kinds", func(t *testing.T) {
		h := open(t)
		checks := []struct {
			got, want types.ErrorKind
		}{
			{h.DecodeAddressKind("0OIl"), types.KindEncoding},
			{h.DecodeAddressKind("1"), types.KindChecksumTooShort},
			{h.DecodeAddressKind(VectorAddress[:len(VectorAddress)-1] + "T"), types.KindChecksumMismatch},
			{h.DecodeAddressKind(types.Address{Value: make([]byte, 31)}.Base58()), types.KindInvalidLength},
			{h.DecodeAddressKind(types.Address{Value: make([]byte, 33)}.Base58()), types.KindInvalidLength},
			{h.DecodeHashKind("xyz"), types.KindEncoding},
			{h.DecodeHashKind(VectorHash[:63]), types.KindEncoding},
			{h.DecodeHashKind(VectorHash[:62]), types.KindInvalidLength},
		}
		for i, c := range checks {
			if c.got != c.want {
				t.Errorf("check %d: got %v, want %v", i, c.got, c.want)
			}
		}
	})

	t.Run("successful_trace_keeps_everything", func(t *testing.T) {
		h := open(t)
		s := h.Analyze(FullSuccess())
		if !s.Successful {
			t.Fatal("expected successful trace")
		}
		want := []string{"1", "2", "3", "4", "5", "6"}
		if got := Keys(s.ValidStateChanges); !slices.Equal(got, want) {
			t.Fatalf("valid: got %v, want %v", got, want)
		}
		if got := Keys(s.StateChanges); !slices.Equal(got, want) {
			t.Fatalf("raw: got %v, want %v", got, want)
		}
	})

	t.Run("inline_failure_is_discarded", func(t *testing.T) {
		h := open(t)
		s := h.Analyze(InlineFailure())
		if s.Successful {
			t.Fatal("expected unsuccessful trace")
		}
		if got := Keys(s.ValidStateChanges); !slices.Equal(got, []string{"P", "Q"}) {
			t.Fatalf("valid: got %v, want [P Q]", got)
		}
		if got := Keys(s.StateChanges); !slices.Equal(got, []string{"P", "self", "I", "Q"}) {
			t.Fatalf("raw: got %v, want [P self I Q]", got)
		}
	})

	t.Run("empty_state_set_is_kept", func(t *testing.T) {
		h := open(t)
		s := h.Analyze(EmptyInlineStateSet())
		if !s.Successful {
			t.Fatal("expected successful trace")
		}
		for name, sets := range map[string][]types.TransactionExecutingStateSet{
			"raw":   s.StateChanges,
			"valid": s.ValidStateChanges,
		} {
			if len(sets) != 2 {
				t.Fatalf("%s: expected 2 state sets, got %d", name, len(sets))
			}
			if !sets[1].Empty() {
				t.Fatalf("%s: expected the inline set to be empty, got %+v", name, sets[1])
			}
		}
	})

	t.Run("malformed_arena_rejected", func(t *testing.T) {
		h := open(t)
		_, err := h.Service().AnalyzeTrace(context.Background(), types.TraceArena{
			Nodes: []types.TraceNode{{InlineTraces: []uint32{7}}},
		})
		if err == nil {
			t.Fatal("expected malformed arena to be rejected")
		}
	})

	t.Run("concurrent_calls", func(t *testing.T) {
		h := open(t)
		svc := h.Service()
		var wg sync.WaitGroup
		errs := make(chan error, 32)
		for i := range 32 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if i%2 == 0 {
					_, err := svc.DecodeAddress(context.Background(), VectorAddress)
					errs <- err
					return
				}
				_, err := svc.AnalyzeTrace(context.Background(), types.FlattenTrace(InlineFailure()))
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Errorf("concurrent call failed: %v", err)
			}
		}
	})

	t.Run("closed_connection", func(t *testing.T) {
		conn := factory(t)
		if err := conn.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		_, err := conn.DecodeHash(context.Background(), VectorHash)
		if err == nil {
			t.Fatal("expected an error after Close")
		}
		if _, ok := aelf.IsDecodeError(err); ok || errors.Is(err, types.ErrInvalidLength) {
			t.Fatalf("closed connection returned a decode error: %v", err)
		}
	})
}
