package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild-index",
	Short: "Rescan every source directory and rewrite the index",
	Args:  cobra.NoArgs,
	RunE:  runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, args []string) error {
	idx, err := app.catalog.Rebuild()
	if err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}
	out := cmd.OutOrStdout()
	printer.Fprintf(out, "Indexed %d modules\n", len(idx.Modules))
	if n := len(idx.Warnings); n > 0 {
		printer.Fprintf(out, "Skipped %d unreadable directories (run with --verbose for details)\n", n)
	}
	return nil
}
