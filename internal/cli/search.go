package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search modules by name and description",
	Long: `Search every indexed module. The query matches names and descriptions
(case-insensitive substring). Exact name matches are listed first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	mods, err := app.catalog.Search(query)
	if err != nil {
		return fmt.Errorf("searching modules: %w", err)
	}

	if len(mods) == 0 && !searchJSON {
		fmt.Fprintf(cmd.OutOrStdout(), "No modules found matching %q\n", query)
		return nil
	}

	entries := toEntries(mods)
	if searchJSON {
		return printJSON(cmd, entries)
	}
	return printModuleTable(cmd, entries)
}
