package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive module browser (not implemented in the core engine)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("tui: not implemented in the core engine")
			return fmt.Errorf("tui not implemented")
		},
	}
}
