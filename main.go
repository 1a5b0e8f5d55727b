// Command dhd is the engine's CLI entry point: it wires the module
// registry, action planner, and DAG executor behind a small set of cobra
// subcommands, matching the teacher's top-level subcommand dispatch
// (formerly `-gen2fcron`/`-disableLogDebounce`-style flags over `flag`,
// here replaced with cobra since every example manifest in this domain
// reaches for it).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dhd",
		Short:         "Declarative host configuration engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newListCommand())
	root.AddCommand(newPlanCommand())
	root.AddCommand(newApplyCommand())
	root.AddCommand(newTUICommand())
	return root
}
