// Package trace aggregates the state changes of a transaction trace
// tree.
//
// A trace succeeds only if it and every descendant executed. When it
// did, all of its state changes stand. When it did not, only the pre
// and post traces that succeeded on their own keep their changes:
// inline traces are part of the failed call and are discarded with it.
//
// Nothing here fails. A malformed trace (nil, or an unknown status)
// is simply unsuccessful.
package trace

import (
	"iter"
	"slices"

	"github.com/blockberries/aelf/types"
)

// StateSets is a lazy, finite, ordered sequence of state sets. Each
// range over it walks the trace tree again; the tree must not be
// mutated while a walk is in progress.
type StateSets = iter.Seq[*types.TransactionExecutingStateSet]

// IsSuccessful reports whether t executed and every pre, inline and
// post trace below it is itself successful. The status is checked
// before any child is visited.
func IsSuccessful(t *types.TransactionTrace) bool {
	if t == nil || !t.ExecutionStatus.Executed() {
		return false
	}
	return allSuccessful(t.PreTraces) &&
		allSuccessful(t.InlineTraces) &&
		allSuccessful(t.PostTraces)
}

func allSuccessful(traces []*types.TransactionTrace) bool {
	for _, c := range traces {
		if !IsSuccessful(c) {
			return false
		}
	}
	return true
}

// StateChanges yields every state set in the tree, regardless of
// outcome: pre traces, then t's own set, then inline traces, then post
// traces, recursively.
func StateChanges(t *types.TransactionTrace) StateSets {
	return func(yield func(*types.TransactionExecutingStateSet) bool) {
		walk(t, yield)
	}
}

// walk returns false once yield has asked to stop.
func walk(t *types.TransactionTrace, yield func(*types.TransactionExecutingStateSet) bool) bool {
	if t == nil {
		return true
	}
	for _, c := range t.PreTraces {
		if !walk(c, yield) {
			return false
		}
	}
	if t.StateSet != nil && !yield(t.StateSet) {
		return false
	}
	for _, c := range t.InlineTraces {
		if !walk(c, yield) {
			return false
		}
	}
	for _, c := range t.PostTraces {
		if !walk(c, yield) {
			return false
		}
	}
	return true
}

// ValidStateChanges yields the state sets that took effect. For a
// successful trace this is exactly StateChanges(t). Otherwise it is
// StateChanges of each successful pre trace followed by each
// successful post trace; t's own set and its inline traces are left
// out.
func ValidStateChanges(t *types.TransactionTrace) StateSets {
	if IsSuccessful(t) {
		return StateChanges(t)
	}
	return func(yield func(*types.TransactionExecutingStateSet) bool) {
		if t == nil {
			return
		}
		for _, group := range [][]*types.TransactionTrace{t.PreTraces, t.PostTraces} {
			for _, c := range group {
				if IsSuccessful(c) && !walk(c, yield) {
					return
				}
			}
		}
	}
}

// Collect drains a sequence into a slice.
func Collect(sets StateSets) []*types.TransactionExecutingStateSet {
	return slices.Collect(sets)
}

// EffectiveState merges the valid state changes of t into one set.
func EffectiveState(t *types.TransactionTrace) *types.TransactionExecutingStateSet {
	return types.MergeStateSets(ValidStateChanges(t))
}

// Summarize computes the success flag together with the raw and the
// valid state change streams.
func Summarize(t *types.TransactionTrace) types.TraceSummary {
	return types.TraceSummary{
		Successful:        IsSuccessful(t),
		StateChanges:      values(StateChanges(t)),
		ValidStateChanges: values(ValidStateChanges(t)),
	}
}

func values(sets StateSets) []types.TransactionExecutingStateSet {
	var out []types.TransactionExecutingStateSet
	for s := range sets {
		out = append(out, *s)
	}
	return out
}
