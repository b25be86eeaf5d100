// Package statestore implements a minimal key-value state that
// advances by applying transaction traces through an aelf.Connection.
// It demonstrates how a block processor consumes the valid state
// changes of each trace and discards the rest.
package statestore

import (
	"context"
	"encoding/binary"
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/minio/sha256-simd"

	"github.com/blockberries/aelf"
	"github.com/blockberries/aelf/types"
)

// Outcome is the result of executing a block of traces.
type Outcome struct {
	Summaries []types.TraceSummary
	// Root is the state root the store will have after Commit.
	Root types.Hash
}

// Store applies traces to an in-memory key-value state.
type Store struct {
	conn aelf.Connection

	mu     sync.RWMutex
	state  map[string][]byte
	root   types.Hash
	height uint64

	// Staging area (between Execute and Commit).
	staged struct {
		state map[string][]byte
		root  types.Hash
		ready bool
	}
}

// New creates an empty store that analyzes traces through conn.
func New(conn aelf.Connection) *Store {
	state := make(map[string][]byte)
	return &Store{
		conn:  conn,
		state: state,
		root:  computeRoot(state),
	}
}

// Execute analyzes every trace of a block and stages the valid state
// changes in order. A failed transaction still contributes the changes
// of its successful pre and post calls. Nothing is staged if any trace
// cannot be analyzed.
func (s *Store) Execute(ctx context.Context, block []types.TraceArena) (Outcome, error) {
	s.mu.RLock()
	next := maps.Clone(s.state)
	s.mu.RUnlock()

	summaries := make([]types.TraceSummary, len(block))
	for i, arena := range block {
		summary, err := s.conn.AnalyzeTrace(ctx, arena)
		if err != nil {
			return Outcome{}, err
		}
		summaries[i] = summary
		apply(next, types.MergeStateSets(pointers(summary.ValidStateChanges)))
	}

	root := computeRoot(next)

	s.mu.Lock()
	s.staged.state = next
	s.staged.root = root
	s.staged.ready = true
	s.mu.Unlock()

	return Outcome{Summaries: summaries, Root: root}, nil
}

// Commit makes the last executed block the current state. It returns
// false if nothing was staged.
func (s *Store) Commit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.staged.ready {
		return false
	}
	s.state = s.staged.state
	s.root = s.staged.root
	s.height++
	s.staged.state = nil
	s.staged.ready = false
	return true
}

// Get returns the committed value of key.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state[key]
	return v, ok
}

// Root returns the committed state root.
func (s *Store) Root() types.Hash {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

// Height returns the number of committed blocks.
func (s *Store) Height() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.height
}

func apply(state map[string][]byte, set *types.TransactionExecutingStateSet) {
	for _, d := range set.Deletes {
		if d.Value {
			delete(state, d.Key)
		}
	}
	for _, w := range set.Writes {
		state[w.Key] = w.Value
	}
}

func pointers(sets []types.TransactionExecutingStateSet) iter.Seq[*types.TransactionExecutingStateSet] {
	return func(yield func(*types.TransactionExecutingStateSet) bool) {
		for i := range sets {
			if !yield(&sets[i]) {
				return
			}
		}
	}
}

// computeRoot hashes the length-prefixed keys and values in key order.
func computeRoot(state map[string][]byte) types.Hash {
	h := sha256.New()
	var buf [4]byte
	for _, k := range slices.Sorted(maps.Keys(state)) {
		binary.BigEndian.PutUint32(buf[:], uint32(len(k)))
		h.Write(buf[:])
		h.Write([]byte(k))
		v := state[k]
		binary.BigEndian.PutUint32(buf[:], uint32(len(v)))
		h.Write(buf[:])
		h.Write(v)
	}
	return types.Hash{Value: h.Sum(nil)}
}
