package statestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockberries/aelf/local"
	aelftest "github.com/blockberries/aelf/testing"
	"github.com/blockberries/aelf/types"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	conn, err := local.NewConnection()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return New(conn)
}

func deleteTrace(key string, flag bool) *types.TransactionTrace {
	return &types.TransactionTrace{
		ExecutionStatus: types.StatusExecuted,
		StateSet: &types.TransactionExecutingStateSet{
			Deletes: []types.StateFlag{{Key: key, Value: flag}},
		},
	}
}

func TestStore_ExecuteCommit(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	genesis := s.Root()

	out, err := s.Execute(ctx, []types.TraceArena{
		types.FlattenTrace(aelftest.InlineFailure()),
	})
	require.NoError(t, err)
	require.Len(t, out.Summaries, 1)
	require.False(t, out.Summaries[0].Successful)
	require.NotEqual(t, genesis.Hex(), out.Root.Hex())

	// Nothing is visible before Commit.
	_, ok := s.Get("P")
	require.False(t, ok)
	require.Equal(t, genesis.Hex(), s.Root().Hex())

	require.True(t, s.Commit())
	require.Equal(t, uint64(1), s.Height())
	require.Equal(t, out.Root.Hex(), s.Root().Hex())

	v, ok := s.Get("P")
	require.True(t, ok)
	require.Equal(t, []byte("P"), v)
	_, ok = s.Get("Q")
	require.True(t, ok)
	for _, key := range []string{"self", "I"} {
		_, ok := s.Get(key)
		require.False(t, ok, "changes of %q must be discarded", key)
	}
}

func TestStore_LaterTraceWins(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.Execute(ctx, []types.TraceArena{
		types.FlattenTrace(aelftest.FullSuccess()),
		types.FlattenTrace(deleteTrace("3", true)),
		types.FlattenTrace(deleteTrace("4", false)),
	})
	require.NoError(t, err)
	require.True(t, s.Commit())

	for _, key := range []string{"1", "2", "4", "5", "6"} {
		_, ok := s.Get(key)
		require.True(t, ok, "expected key %q", key)
	}
	_, ok := s.Get("3")
	require.False(t, ok)
}

func TestStore_RootIsDeterministic(t *testing.T) {
	ctx := context.Background()
	block := []types.TraceArena{types.FlattenTrace(aelftest.FullSuccess())}

	a, b := newStore(t), newStore(t)
	outA, err := a.Execute(ctx, block)
	require.NoError(t, err)
	outB, err := b.Execute(ctx, block)
	require.NoError(t, err)
	require.Equal(t, outA.Root.Hex(), outB.Root.Hex())
	require.Len(t, outA.Root.Value, types.IdentifierLength)
}

func TestStore_MalformedBlockStagesNothing(t *testing.T) {
	s := newStore(t)

	_, err := s.Execute(context.Background(), []types.TraceArena{
		types.FlattenTrace(aelftest.FullSuccess()),
		{},
	})
	require.ErrorIs(t, err, types.ErrMalformedArena)
	require.False(t, s.Commit())
	require.Equal(t, uint64(0), s.Height())
}
