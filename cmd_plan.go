package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/korora-tech/dhd/dag"
)

func newPlanCommand() *cobra.Command {
	var modulesDir *string
	cmd := &cobra.Command{
		Use:   "plan [modules...]",
		Short: "Resolve modules and print the resulting execution plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(*modulesDir)
			if err != nil {
				return err
			}
			ordered, err := reg.GetOrdered(allModuleIDs(reg, args))
			if err != nil {
				return err
			}
			atomList, err := planModules(ordered)
			if err != nil {
				return err
			}
			plan, err := dag.BuildPlan(atomList)
			if err != nil {
				return err
			}
			for _, node := range plan.Nodes {
				fmt.Printf("  %s\n", node.Describe())
			}
			fmt.Printf("Total: %d atoms across %d modules\n", len(plan.Nodes), len(ordered))
			return nil
		},
	}
	modulesDir = addModulesFlag(cmd)
	return cmd
}
