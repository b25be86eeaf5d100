package types

import (
	"errors"
	"fmt"
)

// ErrMalformedArena is returned when a TraceArena does not describe a
// single tree rooted at node 0.
var ErrMalformedArena = errors.New("malformed trace arena")

// TraceNode is a TransactionTrace with its children replaced by
// indices into the enclosing TraceArena.
type TraceNode struct {
	TransactionId   Hash                          `cramberry:"1"`
	ExecutionStatus ExecutionStatus               `cramberry:"2"`
	ReturnValue     []byte                        `cramberry:"3"`
	Error           string                        `cramberry:"4"`
	StateSet        *TransactionExecutingStateSet `cramberry:"5"`
	PreTraces       []uint32                      `cramberry:"6"`
	InlineTraces    []uint32                      `cramberry:"7"`
	PostTraces      []uint32                      `cramberry:"8"`
	// HasStateSet records whether the trace had a state set at all.
	// Cramberry encodes a pointer to an empty set as absent, so the
	// pointer alone cannot tell an empty set from none.
	HasStateSet bool `cramberry:"9"`
}

// stateSet returns the node's state set, restoring an empty set that
// did not survive the wire.
func (n TraceNode) stateSet() *TransactionExecutingStateSet {
	switch {
	case n.StateSet != nil:
		return n.StateSet
	case n.HasStateSet:
		return &TransactionExecutingStateSet{}
	default:
		return nil
	}
}

// TraceArena is the flat, serializable form of a trace tree. Node 0
// is the root. Every other node is referenced by exactly one parent.
type TraceArena struct {
	Nodes []TraceNode `cramberry:"1"`
}

// FlattenTrace lays a trace tree out in breadth-first order. A nil
// child is stored as an Undefined node so that it still fails its
// parent after a round trip. A nil root yields an empty arena.
func FlattenTrace(root *TransactionTrace) TraceArena {
	if root == nil {
		return TraceArena{}
	}

	var arena TraceArena
	var queue []*TransactionTrace
	push := func(t *TransactionTrace) uint32 {
		idx := uint32(len(arena.Nodes))
		node := TraceNode{}
		if t != nil {
			node = TraceNode{
				TransactionId:   t.TransactionId,
				ExecutionStatus: t.ExecutionStatus,
				ReturnValue:     t.ReturnValue,
				Error:           t.Error,
				StateSet:        t.StateSet,
				HasStateSet:     t.StateSet != nil,
			}
		}
		arena.Nodes = append(arena.Nodes, node)
		queue = append(queue, t)
		return idx
	}
	link := func(children []*TransactionTrace) []uint32 {
		if len(children) == 0 {
			return nil
		}
		idx := make([]uint32, len(children))
		for i, c := range children {
			idx[i] = push(c)
		}
		return idx
	}

	push(root)
	for i := 0; i < len(queue); i++ {
		t := queue[i]
		if t == nil {
			continue
		}
		pre := link(t.PreTraces)
		inline := link(t.InlineTraces)
		post := link(t.PostTraces)
		arena.Nodes[i].PreTraces = pre
		arena.Nodes[i].InlineTraces = inline
		arena.Nodes[i].PostTraces = post
	}
	return arena
}

// Tree rebuilds the trace tree. It fails with ErrMalformedArena if the
// arena is empty, refers to a missing node, gives a node two parents,
// points back at the root or leaves a node unreachable.
func (a TraceArena) Tree() (*TransactionTrace, error) {
	if len(a.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrMalformedArena)
	}

	traces := make([]*TransactionTrace, len(a.Nodes))
	for i, n := range a.Nodes {
		traces[i] = &TransactionTrace{
			TransactionId:   n.TransactionId,
			ExecutionStatus: n.ExecutionStatus,
			ReturnValue:     n.ReturnValue,
			Error:           n.Error,
			StateSet:        n.stateSet(),
		}
	}

	parent := make([]int, len(a.Nodes))
	for i := range parent {
		parent[i] = -1
	}
	resolve := func(from int, idx []uint32) ([]*TransactionTrace, error) {
		if len(idx) == 0 {
			return nil, nil
		}
		out := make([]*TransactionTrace, len(idx))
		for i, c := range idx {
			switch {
			case int(c) >= len(a.Nodes):
				return nil, fmt.Errorf("%w: node %d refers to missing node %d", ErrMalformedArena, from, c)
			case c == 0:
				return nil, fmt.Errorf("%w: node %d refers to the root", ErrMalformedArena, from)
			case parent[c] >= 0:
				return nil, fmt.Errorf("%w: node %d has parents %d and %d", ErrMalformedArena, c, parent[c], from)
			}
			parent[c] = from
			out[i] = traces[c]
		}
		return out, nil
	}

	for i, n := range a.Nodes {
		var err error
		t := traces[i]
		if t.PreTraces, err = resolve(i, n.PreTraces); err != nil {
			return nil, err
		}
		if t.InlineTraces, err = resolve(i, n.InlineTraces); err != nil {
			return nil, err
		}
		if t.PostTraces, err = resolve(i, n.PostTraces); err != nil {
			return nil, err
		}
	}

	// With a single parent per node and no edge into the root, any
	// node not reachable from the root sits on a detached cycle or
	// subtree.
	reached := 1
	stack := []*TransactionTrace{traces[0]}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, group := range [][]*TransactionTrace{t.PreTraces, t.InlineTraces, t.PostTraces} {
			reached += len(group)
			stack = append(stack, group...)
		}
	}
	if reached != len(a.Nodes) {
		return nil, fmt.Errorf("%w: %d of %d nodes unreachable from the root", ErrMalformedArena, len(a.Nodes)-reached, len(a.Nodes))
	}
	return traces[0], nil
}
