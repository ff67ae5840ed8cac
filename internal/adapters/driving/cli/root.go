// Package cli implements the townpages command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/townpages/townpages-cli/internal/core/ports/driven"
	"github.com/townpages/townpages-cli/internal/core/ports/driving"
	"github.com/townpages/townpages-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services driving the commands, injected by Initialize. Tests swap
// these for mocks.
var (
	buildOrchestrator driving.BuildOrchestrator
	configStore       driven.ConfigStore
	runStore          driven.RunStore
	rowSource         driven.RowSource
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "townpages",
	Short: "Regional business directory builder",
	Long: `townpages builds a regional business directory dataset from a
tabular source (Google Sheets or CSV), emits it as a deterministic JSON
artifact, and serves the request-time subdomain router in front of the
generated pages.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context, which
// commands receive via cmd.Context() for cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}
