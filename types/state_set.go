package types

import (
	"bytes"
	"iter"
	"maps"
	"slices"
)

// StateWrite is one key written by a trace.
type StateWrite struct {
	Key   string `cramberry:"1"`
	Value []byte `cramberry:"2"`
}

// StateFlag marks a key as read or deleted.
type StateFlag struct {
	Key   string `cramberry:"1"`
	Value bool   `cramberry:"2"`
}

// TransactionExecutingStateSet records the state mutations performed
// by one executing trace node. The aggregator treats it as opaque.
type TransactionExecutingStateSet struct {
	Writes  []StateWrite `cramberry:"1"`
	Reads   []StateFlag  `cramberry:"2"`
	Deletes []StateFlag  `cramberry:"3"`
}

// Empty reports whether the set records nothing.
func (s *TransactionExecutingStateSet) Empty() bool {
	return s == nil || len(s.Writes) == 0 && len(s.Reads) == 0 && len(s.Deletes) == 0
}

// Equal compares two sets entry by entry, order included.
func (s *TransactionExecutingStateSet) Equal(o *TransactionExecutingStateSet) bool {
	if s == nil || o == nil {
		return s == o
	}
	return slices.EqualFunc(s.Writes, o.Writes, func(a, b StateWrite) bool {
		return a.Key == b.Key && bytes.Equal(a.Value, b.Value)
	}) && slices.Equal(s.Reads, o.Reads) && slices.Equal(s.Deletes, o.Deletes)
}

// MergeStateSets folds a sequence of state sets, in order, into a
// single set. A later write replaces an earlier one and clears a
// pending delete of the same key; a delete drops any earlier write.
// A delete flagged false is not a delete and is skipped. The first
// read of a key wins. Entries come out sorted by key.
func MergeStateSets(sets iter.Seq[*TransactionExecutingStateSet]) *TransactionExecutingStateSet {
	writes := make(map[string][]byte)
	reads := make(map[string]bool)
	deletes := make(map[string]bool)

	for set := range sets {
		if set == nil {
			continue
		}
		for _, w := range set.Writes {
			delete(deletes, w.Key)
			writes[w.Key] = w.Value
		}
		for _, d := range set.Deletes {
			if !d.Value {
				continue
			}
			delete(writes, d.Key)
			deletes[d.Key] = d.Value
		}
		for _, r := range set.Reads {
			if _, seen := reads[r.Key]; !seen {
				reads[r.Key] = r.Value
			}
		}
	}

	merged := &TransactionExecutingStateSet{}
	for _, k := range slices.Sorted(maps.Keys(writes)) {
		merged.Writes = append(merged.Writes, StateWrite{Key: k, Value: writes[k]})
	}
	for _, k := range slices.Sorted(maps.Keys(reads)) {
		merged.Reads = append(merged.Reads, StateFlag{Key: k, Value: reads[k]})
	}
	for _, k := range slices.Sorted(maps.Keys(deletes)) {
		merged.Deletes = append(merged.Deletes, StateFlag{Key: k, Value: deletes[k]})
	}
	return merged
}
