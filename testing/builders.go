package aelftest

import (
	"encoding/binary"

	"github.com/blockberries/aelf/types"
)

// Well-known identifier vector: the same 32 bytes as an address and
// as a hash.
const (
	VectorAddress = "2DZER7qHVwv3PUMFsHuQaQbE4wDFsCRzJsxLwYEk8rgM3HVn1S"
	VectorHash    = "a0349382b89d5f207276f0983a041e5a113134b897888e39991c5b59de230d16"
)

// VectorBytes returns the raw bytes behind VectorAddress and VectorHash.
func VectorBytes() []byte {
	return []byte{
		0xa0, 0x34, 0x93, 0x82, 0xb8, 0x9d, 0x5f, 0x20, 0x72, 0x76, 0xf0, 0x98, 0x3a, 0x04, 0x1e, 0x5a,
		0x11, 0x31, 0x34, 0xb8, 0x97, 0x88, 0x8e, 0x39, 0x99, 0x1c, 0x5b, 0x59, 0xde, 0x23, 0x0d, 0x16,
	}
}

// MakeIdentifier returns 32 deterministic bytes derived from seed.
func MakeIdentifier(seed uint64) []byte {
	b := make([]byte, types.IdentifierLength)
	for i := 0; i < len(b); i += 8 {
		seed = seed*6364136223846793005 + 1442695040888963407
		binary.BigEndian.PutUint64(b[i:], seed)
	}
	return b
}

// StateSet returns a state set that writes key with its own name as
// value. It makes aggregated streams easy to compare by key.
func StateSet(key string) *types.TransactionExecutingStateSet {
	return &types.TransactionExecutingStateSet{
		Writes: []types.StateWrite{{Key: key, Value: []byte(key)}},
	}
}

// Node returns a trace with the given status and, unless key is
// empty, a StateSet(key).
func Node(status types.ExecutionStatus, key string) *types.TransactionTrace {
	t := &types.TransactionTrace{ExecutionStatus: status}
	if key != "" {
		t.StateSet = StateSet(key)
	}
	return t
}

// Keys returns the first written key of each state set, in order.
func Keys(sets []types.TransactionExecutingStateSet) []string {
	out := make([]string, 0, len(sets))
	for _, s := range sets {
		if len(s.Writes) > 0 {
			out = append(out, s.Writes[0].Key)
		}
	}
	return out
}

// InlineFailure builds the canonical partial failure: an executed
// root with state set "self", a successful pre trace "P", a failed
// inline trace "I" and a successful post trace "Q".
func InlineFailure() *types.TransactionTrace {
	root := Node(types.StatusExecuted, "self")
	root.PreTraces = []*types.TransactionTrace{Node(types.StatusExecuted, "P")}
	root.InlineTraces = []*types.TransactionTrace{Node(types.StatusContractError, "I")}
	root.PostTraces = []*types.TransactionTrace{Node(types.StatusExecuted, "Q")}
	return root
}

// FullSuccess builds a two-level, all-executed trace whose state sets
// are named in traversal order "1" through "6".
func FullSuccess() *types.TransactionTrace {
	pre := Node(types.StatusExecuted, "1")
	inline := Node(types.StatusExecuted, "4")
	inline.PreTraces = []*types.TransactionTrace{Node(types.StatusExecuted, "3")}
	inline.PostTraces = []*types.TransactionTrace{Node(types.StatusExecuted, "5")}

	root := Node(types.StatusExecuted, "2")
	root.PreTraces = []*types.TransactionTrace{pre}
	root.InlineTraces = []*types.TransactionTrace{inline}
	root.PostTraces = []*types.TransactionTrace{Node(types.StatusExecuted, "6")}
	return root
}

// EmptyInlineStateSet builds an executed root with state set "self"
// and one executed inline trace whose state set is present but empty.
func EmptyInlineStateSet() *types.TransactionTrace {
	root := Node(types.StatusExecuted, "self")
	root.InlineTraces = []*types.TransactionTrace{{
		ExecutionStatus: types.StatusExecuted,
		StateSet:        &types.TransactionExecutingStateSet{},
	}}
	return root
}
