// Command poolctl is a small demonstration CLI for the pool package: it
// loads a YAML pool configuration into a sessionpool-backed pool, and
// either prefills it and dumps its debug state once (prefill) or serves
// its live /metrics endpoint (serve). See SPEC_FULL.md §4.12.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "poolctl",
		Short: "Inspect and exercise a gopool object pool from the command line",
	}
	root.AddCommand(newPrefillCmd())
	root.AddCommand(newServeCmd())
	return root
}
