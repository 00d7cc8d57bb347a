package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/shmod-labs/shmod/internal/module"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list [kind]",
	Short: "List available modules",
	Long: `List every indexed module, optionally restricted to one kind
(plugin, alias, completion, function, or the canonical kind names).

The index is rebuilt automatically when it is missing or older than --max-age.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// moduleEntry is a module as shown by list and search.
type moduleEntry struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Enabled     bool   `json:"enabled"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	Path        string `json:"path"`
}

func runList(cmd *cobra.Command, args []string) error {
	kind, err := optionalKind(args)
	if err != nil {
		return err
	}
	mods, err := app.catalog.List(kind)
	if err != nil {
		return fmt.Errorf("listing modules: %w", err)
	}

	if len(mods) == 0 && !listJSON {
		if kind != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "No %s modules found.\n", *kind)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No modules found.")
		}
		return nil
	}

	entries := toEntries(mods)
	if listJSON {
		return printJSON(cmd, entries)
	}
	return printModuleTable(cmd, entries)
}

func toEntries(mods []module.Module) []moduleEntry {
	entries := make([]moduleEntry, 0, len(mods))
	for _, m := range mods {
		entries = append(entries, moduleEntry{
			Kind:        m.Kind.String(),
			Name:        m.Name,
			Enabled:     app.catalog.IsEnabled(m.Kind, m.Name),
			Version:     m.Version,
			Description: m.Description,
			Source:      m.Source,
			Path:        m.SourcePath,
		})
	}
	return entries
}

func printModuleTable(cmd *cobra.Command, entries []moduleEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAME\tENABLED\tDESCRIPTION")
	for _, e := range entries {
		enabled := "-"
		if e.Enabled {
			enabled = "yes"
		}
		desc := e.Description
		if len([]rune(desc)) > 60 {
			desc = string([]rune(desc)[:57]) + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Kind, e.Name, enabled, desc)
	}
	return w.Flush()
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
