package types_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockberries/aelf/types"
)

func TestMergeStateSets(t *testing.T) {
	sets := []*types.TransactionExecutingStateSet{
		{
			Writes: []types.StateWrite{{Key: "b", Value: []byte("1")}, {Key: "a", Value: []byte("1")}},
			Reads:  []types.StateFlag{{Key: "r", Value: true}},
		},
		nil,
		{
			Deletes: []types.StateFlag{{Key: "a", Value: true}, {Key: "c", Value: true}},
			Reads:   []types.StateFlag{{Key: "r", Value: false}, {Key: "s", Value: true}},
		},
		{
			Writes: []types.StateWrite{{Key: "b", Value: []byte("2")}, {Key: "c", Value: []byte("3")}},
		},
	}

	got := types.MergeStateSets(slices.Values(sets))
	want := &types.TransactionExecutingStateSet{
		Writes:  []types.StateWrite{{Key: "b", Value: []byte("2")}, {Key: "c", Value: []byte("3")}},
		Reads:   []types.StateFlag{{Key: "r", Value: true}, {Key: "s", Value: true}},
		Deletes: []types.StateFlag{{Key: "a", Value: true}},
	}
	require.True(t, want.Equal(got), "got %+v", got)
}

func TestMergeStateSets_FalseDeleteIsSkipped(t *testing.T) {
	sets := []*types.TransactionExecutingStateSet{
		{Writes: []types.StateWrite{{Key: "a", Value: []byte("1")}}},
		{Deletes: []types.StateFlag{{Key: "a", Value: false}, {Key: "b", Value: false}}},
	}

	got := types.MergeStateSets(slices.Values(sets))
	require.Equal(t, []types.StateWrite{{Key: "a", Value: []byte("1")}}, got.Writes)
	require.Empty(t, got.Deletes)
}

func TestMergeStateSets_Empty(t *testing.T) {
	got := types.MergeStateSets(slices.Values([]*types.TransactionExecutingStateSet(nil)))
	require.True(t, got.Empty())
}

func TestStateSet_EqualNil(t *testing.T) {
	var a, b *types.TransactionExecutingStateSet
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(&types.TransactionExecutingStateSet{}))
	require.True(t, a.Empty())
}

func TestExecutionStatus(t *testing.T) {
	require.True(t, types.StatusExecuted.Executed())
	for _, s := range []types.ExecutionStatus{
		types.StatusUndefined, types.StatusCanceled, types.StatusSystemError,
		types.StatusContractError, types.StatusExceededMaxCallDepth,
		types.StatusPrefailed, types.StatusPostfailed, types.ExecutionStatus(42),
	} {
		require.False(t, s.Executed(), s.String())
	}
	require.Equal(t, "Postfailed", types.StatusPostfailed.String())
	require.Equal(t, "unknown(42)", types.ExecutionStatus(42).String())
}
