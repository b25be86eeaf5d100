// Command aelfid decodes and encodes AElf identifiers, analyses
// transaction trace files, and serves the aelf service over gRPC.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "aelfid",
		Usage: "AElf identifier codec and transaction trace aggregator",
		Commands: []*cli.Command{
			&Address,
			&Hash,
			&Trace,
			&Serve,
		},
	}
}
