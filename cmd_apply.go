package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/korora-tech/dhd/dag"
	"github.com/korora-tech/dhd/metrics"
)

func applyLockPath() string {
	return filepath.Join(xdg.StateHome, "dhd", "apply.lock")
}

func newApplyCommand() *cobra.Command {
	var modulesDir *string
	var maxConcurrent int
	cmd := &cobra.Command{
		Use:   "apply [modules...]",
		Short: "Resolve modules and execute the resulting plan",
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

			lockPath := applyLockPath()
			if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
				return fmt.Errorf("creating lock directory: %w", err)
			}
			lock := flock.New(lockPath)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquiring apply lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another dhd apply is already running (lock held at %s)", lockPath)
			}
			defer lock.Unlock()

			executor := dag.NewExecutor(maxConcurrent)
			executor.Metrics = metrics.New()
			statuses, runErr := executor.Run(cmd.Context(), plan)

			var failed, skipped, completed int
			for _, s := range statuses {
				switch s.State {
				case dag.StateCompleted:
					completed++
					fmt.Printf("%s %s\n", render(styleOK, "ok"), s.ID)
				case dag.StateSkipped:
					skipped++
					fmt.Printf("%s %s\n", render(styleSkip, "skipped"), s.ID)
				case dag.StateSkippedDueToFailure:
					skipped++
					fmt.Printf("%s %s\n", render(styleSkip, "skipped (upstream failure)"), s.ID)
				case dag.StateFailed:
					failed++
					fmt.Printf("%s %s: %v\n", render(styleFail, "failed"), s.ID, s.Err)
				}
			}
			fmt.Printf("%s\n", render(styleBold, fmt.Sprintf(
				"Summary: %d completed, %d skipped, %d failed", completed, skipped, failed)))

			if runErr != nil {
				return runErr
			}
			return nil
		},
	}
	modulesDir = addModulesFlag(cmd)
	cmd.Flags().IntVar(&maxConcurrent, "max-concurrent", 4, "maximum number of atoms to run concurrently")
	return cmd
}
