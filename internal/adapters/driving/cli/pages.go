package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/townpages/townpages-cli/internal/core/domain"
)

var pagesJSON bool

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List page descriptors from the current artifact",
	Long: `Enumerates the region pages the current artifact describes, one
per region slug in ascending order. The page-generation layer consumes
this list to decide which pages to render.`,
	RunE: runPages,
}

func init() {
	pagesCmd.Flags().BoolVar(&pagesJSON, "json", false, "emit machine-readable JSON")
	rootCmd.AddCommand(pagesCmd)
}

func runPages(cmd *cobra.Command, _ []string) error {
	if err := ensurePages(cmd.Context()); err != nil {
		return err
	}

	pages, err := buildOrchestrator.Pages(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoArtifact) {
			cmd.Println("No artifact found. Run 'townpages build' first.")
			return nil
		}
		return fmt.Errorf("enumerating pages: %w", err)
	}

	if pagesJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(pages)
	}

	if len(pages) == 0 {
		cmd.Println("No pages. Run 'townpages build' first.")
		return nil
	}
	for _, page := range pages {
		cmd.Printf("%s\t%s\t%d categories\n", page.Slug, page.DisplayName, len(page.Categories))
	}
	return nil
}
