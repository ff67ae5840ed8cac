package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/townpages/townpages-cli/internal/core/domain"
	"github.com/townpages/townpages-cli/internal/core/ports/driving"
)

var buildWatch bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the directory artifact from the configured source",
	Long: `Fetches all rows from the configured source, validates them,
synthesizes the regional directory dataset and writes the JSON
artifact. Rows failing validation are skipped with a warning; source
and write failures abort the run and leave any existing artifact
untouched.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "rebuild whenever the source changes")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := ensureBuild(ctx); err != nil {
		return err
	}
	if err := buildOnce(ctx, cmd); err != nil {
		return err
	}
	if !buildWatch {
		return nil
	}
	return watchAndRebuild(ctx, cmd)
}

func buildOnce(ctx context.Context, cmd *cobra.Command) error {
	summary, err := buildOrchestrator.Build(ctx)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	printSummary(cmd, summary)
	return nil
}

func watchAndRebuild(ctx context.Context, cmd *cobra.Command) error {
	if rowSource == nil {
		return errors.New("row source not configured")
	}
	changes, err := rowSource.Watch(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrWatchUnsupported) {
			return fmt.Errorf("source %s does not support watching", rowSource.Type())
		}
		return fmt.Errorf("starting watch: %w", err)
	}

	cmd.Println("Watching for source changes. Press Ctrl+C to stop.")
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			// Editors fire bursts of events on save; let them settle
			// and collapse the burst into one rebuild.
			if err := settle(ctx, changes, 300*time.Millisecond); err != nil {
				return nil
			}
			cmd.Println("Source changed, rebuilding...")
			if err := buildOnce(ctx, cmd); err != nil {
				// Keep watching; a transient failure leaves the
				// previous artifact in place.
				cmd.PrintErrf("rebuild failed: %v\n", err)
			}
		}
	}
}

// settle absorbs further change signals until the window passes
// without one. Returns an error only on cancellation.
func settle(ctx context.Context, changes <-chan struct{}, window time.Duration) error {
	timer := time.NewTimer(window)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(window)
		case <-timer.C:
			return nil
		}
	}
}

func printSummary(cmd *cobra.Command, summary *driving.BuildSummary) {
	cmd.Printf("Build complete: %d rows read, %d listings, %d regions\n",
		summary.RowsRead, summary.Listings, summary.Regions)
	cmd.Printf("Artifact written to %s\n", summary.ArtifactPath)
	if len(summary.Warnings) > 0 {
		cmd.Printf("%d rows skipped:\n", len(summary.Warnings))
		for _, w := range summary.Warnings {
			cmd.Printf("  row %d: %s\n", w.RowIndex, w.Reason)
		}
	}
}
