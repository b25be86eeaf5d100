package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blockberries/cramberry/pkg/cramberry"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	aelftest "github.com/blockberries/aelf/testing"
	"github.com/blockberries/aelf/types"
)

// run executes the app with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"aelfid"}, args...))
	return out.String(), err
}

func TestAddressCommands(t *testing.T) {
	out, err := run(t, "address", "decode", aelftest.VectorAddress)
	require.NoError(t, err)
	require.Equal(t, aelftest.VectorHash+"\n", out)

	out, err = run(t, "address", "encode", aelftest.VectorHash)
	require.NoError(t, err)
	require.Equal(t, aelftest.VectorAddress+"\n", out)
}

func TestAddressDecodeReportsKind(t *testing.T) {
	tampered := aelftest.VectorAddress[:len(aelftest.VectorAddress)-1] + "T"
	_, err := run(t, "address", "decode", tampered)
	require.ErrorIs(t, err, types.ErrChecksumMismatch)
	require.True(t, strings.HasPrefix(err.Error(), "ChecksumMismatch: "), err.Error())

	_, err = run(t, "address", "decode")
	require.Error(t, err)
}

func TestHashCommands(t *testing.T) {
	out, err := run(t, "hash", "decode", strings.ToUpper(aelftest.VectorHash))
	require.NoError(t, err)
	require.Equal(t, aelftest.VectorHash+"\n", out)

	_, err = run(t, "hash", "decode", aelftest.VectorHash[:62])
	require.ErrorIs(t, err, types.ErrInvalidLength)

	out, err = run(t, "hash", "encode", "ABCD")
	require.NoError(t, err)
	require.Equal(t, "abcd\n", out)

	_, err = run(t, "hash", "encode", "xyz")
	require.Error(t, err)
}

func writeTrace(t *testing.T, root *types.TransactionTrace) string {
	t.Helper()
	arena := types.FlattenTrace(root)
	data, err := cramberry.Marshal(&arena)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "trace.cram")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestTraceCommand(t *testing.T) {
	root := aelftest.InlineFailure()
	root.TransactionId = types.Hash{Value: aelftest.VectorBytes()}
	path := writeTrace(t, root)

	out, err := run(t, "trace", path)
	require.NoError(t, err)
	require.Contains(t, out, "tx: "+aelftest.VectorHash+"\n")
	require.Contains(t, out, "status: Executed\n")
	require.Contains(t, out, "successful: false\n")
	require.Contains(t, out, "valid state sets: 2\n")
	require.Contains(t, out, "  [0] writes=[P] reads=[] deletes=[]\n")
	require.Contains(t, out, "  [1] writes=[Q] reads=[] deletes=[]\n")

	out, err = run(t, "trace", "--raw", "--merge", path)
	require.NoError(t, err)
	require.Contains(t, out, "raw state sets: 4\n")
	require.Contains(t, out, "  [2] writes=[I] reads=[] deletes=[]\n")
	require.Contains(t, out, "effective: writes=[P Q] reads=[] deletes=[]\n")
}

func TestTraceCommandErrors(t *testing.T) {
	_, err := run(t, "trace", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "dangling.cram")
	arena := types.TraceArena{Nodes: []types.TraceNode{{InlineTraces: []uint32{7}}}}
	data, err := cramberry.Marshal(&arena)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err = run(t, "trace", path)
	require.ErrorIs(t, err, types.ErrMalformedArena)
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		app := newApp()
		app.Writer = &bytes.Buffer{}
		done <- app.RunContext(ctx, []string{"aelfid", "serve",
			"--listen", "127.0.0.1:0",
			"--metrics-listen", "",
			"--log-level", "error",
		})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServeRejectsBadConfig(t *testing.T) {
	_, err := run(t, "serve", "--log-format", "xml")
	require.ErrorContains(t, err, "unknown log format")

	_, err = run(t, "serve", "--log-level", "loud")
	require.Error(t, err)

	_, err = run(t, "serve", "--listen", "not-an-address", "--metrics-listen", "")
	require.ErrorContains(t, err, "listen")
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger("debug", "console")
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zap.DebugLevel))
}
