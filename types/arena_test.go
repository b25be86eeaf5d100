package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockberries/aelf/types"
)

func leaf(status types.ExecutionStatus, key string) *types.TransactionTrace {
	return &types.TransactionTrace{
		ExecutionStatus: status,
		StateSet:        &types.TransactionExecutingStateSet{Writes: []types.StateWrite{{Key: key, Value: []byte(key)}}},
	}
}

func TestFlattenTrace_RoundTrip(t *testing.T) {
	root := &types.TransactionTrace{
		TransactionId:   types.MustHashFromHex(vectorHex),
		ExecutionStatus: types.StatusExecuted,
		ReturnValue:     []byte{0x01},
		StateSet:        &types.TransactionExecutingStateSet{Writes: []types.StateWrite{{Key: "self"}}},
		PreTraces:       []*types.TransactionTrace{leaf(types.StatusExecuted, "pre")},
		InlineTraces: []*types.TransactionTrace{
			{
				ExecutionStatus: types.StatusExecuted,
				InlineTraces:    []*types.TransactionTrace{leaf(types.StatusContractError, "deep")},
			},
		},
		PostTraces: []*types.TransactionTrace{leaf(types.StatusExecuted, "post1"), leaf(types.StatusExecuted, "post2")},
	}

	arena := types.FlattenTrace(root)
	require.Len(t, arena.Nodes, 6)
	require.Equal(t, types.StatusExecuted, arena.Nodes[0].ExecutionStatus)

	got, err := arena.Tree()
	require.NoError(t, err)
	require.Equal(t, root, got)
}

func TestFlattenTrace_NilRootAndChildren(t *testing.T) {
	require.Empty(t, types.FlattenTrace(nil).Nodes)

	root := &types.TransactionTrace{
		ExecutionStatus: types.StatusExecuted,
		PostTraces:      []*types.TransactionTrace{nil},
	}
	arena := types.FlattenTrace(root)
	require.Len(t, arena.Nodes, 2)
	require.Equal(t, types.StatusUndefined, arena.Nodes[1].ExecutionStatus)

	got, err := arena.Tree()
	require.NoError(t, err)
	require.Len(t, got.PostTraces, 1)
	require.NotNil(t, got.PostTraces[0])
	require.False(t, got.PostTraces[0].ExecutionStatus.Executed())
}

func TestTraceArena_Malformed(t *testing.T) {
	tests := map[string]types.TraceArena{
		"empty":         {},
		"missing child": {Nodes: []types.TraceNode{{InlineTraces: []uint32{3}}}},
		"root as child": {Nodes: []types.TraceNode{{PreTraces: []uint32{1}}, {PostTraces: []uint32{0}}}},
		"two parents": {Nodes: []types.TraceNode{
			{PreTraces: []uint32{1, 2}},
			{InlineTraces: []uint32{3}},
			{InlineTraces: []uint32{3}},
			{},
		}},
		"same child twice": {Nodes: []types.TraceNode{{PreTraces: []uint32{1}, PostTraces: []uint32{1}}, {}}},
		"detached cycle": {Nodes: []types.TraceNode{
			{},
			{InlineTraces: []uint32{2}},
			{InlineTraces: []uint32{1}},
		}},
		"orphan": {Nodes: []types.TraceNode{{}, {}}},
	}
	for name, arena := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := arena.Tree()
			require.ErrorIs(t, err, types.ErrMalformedArena)
		})
	}
}

func TestFlattenTrace_EmptyStateSet(t *testing.T) {
	root := &types.TransactionTrace{
		ExecutionStatus: types.StatusExecuted,
		InlineTraces: []*types.TransactionTrace{
			{ExecutionStatus: types.StatusExecuted, StateSet: &types.TransactionExecutingStateSet{}},
			{ExecutionStatus: types.StatusExecuted},
		},
	}
	arena := types.FlattenTrace(root)
	require.False(t, arena.Nodes[0].HasStateSet)
	require.True(t, arena.Nodes[1].HasStateSet)
	require.False(t, arena.Nodes[2].HasStateSet)

	// The pointer is dropped on the wire; the flag alone restores it.
	arena.Nodes[1].StateSet = nil
	got, err := arena.Tree()
	require.NoError(t, err)
	require.Nil(t, got.StateSet)
	require.NotNil(t, got.InlineTraces[0].StateSet)
	require.True(t, got.InlineTraces[0].StateSet.Empty())
	require.Nil(t, got.InlineTraces[1].StateSet)
}
