package local

import (
	"context"
	"testing"

	"github.com/blockberries/aelf"
	"github.com/blockberries/aelf/server"
	aelftest "github.com/blockberries/aelf/testing"
	"github.com/blockberries/aelf/types"
)

func TestLocalConnection_Compliance(t *testing.T) {
	aelftest.RunComplianceSuite(t, func(t *testing.T) aelf.Connection {
		conn, err := NewConnection()
		if err != nil {
			t.Fatalf("NewConnection: %v", err)
		}
		return conn
	})
}

func TestLocalConnection_FullCycle(t *testing.T) {
	conn, err := NewConnection()
	if err != nil {
		t.Fatalf("NewConnection: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	addr, err := conn.DecodeAddress(ctx, aelftest.VectorAddress)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	// Use the decoded address as a transaction id on a trace.
	root := aelftest.InlineFailure()
	root.TransactionId = types.Hash{Value: addr.Value}

	summary, err := conn.AnalyzeTrace(ctx, types.FlattenTrace(root))
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if summary.Successful {
		t.Fatal("expected unsuccessful trace")
	}
	if got := aelftest.Keys(summary.ValidStateChanges); len(got) != 2 {
		t.Fatalf("expected 2 valid state sets, got %v", got)
	}

	txID, err := conn.EncodeHash(ctx, root.TransactionId)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if txID != aelftest.VectorHash {
		t.Fatalf("expected %s, got %s", aelftest.VectorHash, txID)
	}
}

func TestLocalConnection_ServerAccessor(t *testing.T) {
	conn, err := NewConnection(server.WithLogger(nil))
	if err != nil {
		t.Fatalf("NewConnection: %v", err)
	}
	defer conn.Close()

	if conn.Server() == nil {
		t.Fatal("expected non-nil server")
	}
}
