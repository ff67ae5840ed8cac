package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	runsLimit int
	runsKeep  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show build run history",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run in detail, including its warnings",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old runs, keeping the most recent ones",
	RunE:  runRunsPrune,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	runsPruneCmd.Flags().IntVar(&runsKeep, "keep", 50, "number of recent runs to keep")
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsPruneCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	if err := ensureRuns(cmd.Context()); err != nil {
		return err
	}

	runs, err := runStore.ListRuns(cmd.Context(), runsLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		status := "ok"
		if !run.Success {
			status = "failed"
		}
		cmd.Printf("%s  %s  %-6s  %d rows, %d listings, %d regions, %d warnings\n",
			run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), status,
			run.RowsRead, run.Listings, run.Regions, len(run.Warnings))
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if err := ensureRuns(cmd.Context()); err != nil {
		return err
	}

	run, err := runStore.GetRun(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading run: %w", err)
	}

	cmd.Printf("Run %s\n", run.ID)
	cmd.Printf("  Source:   %s\n", run.Source)
	cmd.Printf("  Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Duration: %s\n", run.EndedAt.Sub(run.StartedAt).Round(0))
	if run.Success {
		cmd.Println("  Status:   ok")
	} else {
		cmd.Printf("  Status:   failed (%s)\n", run.Error)
	}
	cmd.Printf("  Rows:     %d read, %d listings, %d regions\n",
		run.RowsRead, run.Listings, run.Regions)
	if len(run.Warnings) > 0 {
		cmd.Printf("  Warnings:\n")
		for _, w := range run.Warnings {
			cmd.Printf("    row %d: %s\n", w.RowIndex, w.Reason)
		}
	}
	return nil
}

func runRunsPrune(cmd *cobra.Command, _ []string) error {
	if err := ensureRuns(cmd.Context()); err != nil {
		return err
	}

	if err := runStore.PruneRuns(cmd.Context(), runsKeep); err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}
	cmd.Printf("Pruned run history, kept the %d most recent runs.\n", runsKeep)
	return nil
}
