package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	var modulesDir *string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every module found in the module directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(*modulesDir)
			if err != nil {
				return err
			}
			ids := reg.AllIDs()
			for _, id := range ids {
				m, _ := reg.Get(id)
				fmt.Printf("  %s - %s\n", m.ID, m.Description)
			}
			fmt.Printf("Total: %d modules\n", len(ids))
			return nil
		},
	}
	modulesDir = addModulesFlag(cmd)
	return cmd
}
