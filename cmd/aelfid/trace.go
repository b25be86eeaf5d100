package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blockberries/cramberry/pkg/cramberry"
	"github.com/urfave/cli/v2"

	"github.com/blockberries/aelf/trace"
	"github.com/blockberries/aelf/types"
)

var (
	rawFlag = cli.BoolFlag{
		Name:  "raw",
		Usage: "print every state set, including those of failed calls",
	}
	mergeFlag = cli.BoolFlag{
		Name:  "merge",
		Usage: "also print the merged effective state of the valid state sets",
	}
)

var Trace = cli.Command{
	Action:    analyzeTrace,
	Name:      "trace",
	Usage:     "aggregates a cramberry-encoded trace arena",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		&rawFlag,
		&mergeFlag,
	},
}

func analyzeTrace(c *cli.Context) error {
	path, err := singleArg(c, "file")
	if err != nil {
		return err
	}
	root, err := readTrace(path)
	if err != nil {
		return err
	}

	summary := trace.Summarize(root)
	out := c.App.Writer
	fmt.Fprintf(out, "tx: %s\n", root.TransactionId)
	fmt.Fprintf(out, "status: %s\n", root.ExecutionStatus)
	fmt.Fprintf(out, "successful: %t\n", summary.Successful)

	sets, label := summary.ValidStateChanges, "valid"
	if c.Bool(rawFlag.Name) {
		sets, label = summary.StateChanges, "raw"
	}
	fmt.Fprintf(out, "%s state sets: %d\n", label, len(sets))
	for i := range sets {
		printStateSet(out, fmt.Sprintf("  [%d]", i), &sets[i])
	}

	if c.Bool(mergeFlag.Name) {
		printStateSet(out, "effective:", trace.EffectiveState(root))
	}
	return nil
}

func readTrace(path string) (*types.TransactionTrace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var arena types.TraceArena
	if err := cramberry.Unmarshal(data, &arena); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	root, err := arena.Tree()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

func printStateSet(w io.Writer, prefix string, s *types.TransactionExecutingStateSet) {
	var writes, reads, deletes []string
	for _, kv := range s.Writes {
		writes = append(writes, kv.Key)
	}
	for _, kv := range s.Reads {
		reads = append(reads, kv.Key)
	}
	for _, kv := range s.Deletes {
		deletes = append(deletes, kv.Key)
	}
	fmt.Fprintf(w, "%s writes=[%s] reads=[%s] deletes=[%s]\n", prefix,
		strings.Join(writes, " "), strings.Join(reads, " "), strings.Join(deletes, " "))
}
