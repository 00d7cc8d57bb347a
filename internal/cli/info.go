package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Masterminds/semver/v3"
	"github.com/shmod-labs/shmod/internal/module"
	"github.com/spf13/cobra"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <kind> <name>",
	Short: "Show a module's metadata",
	Args:  cobra.ExactArgs(2),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(infoCmd)
}

type infoEntry struct {
	Kind         string   `json:"kind"`
	Name         string   `json:"name"`
	Enabled      bool     `json:"enabled"`
	Description  string   `json:"description,omitempty"`
	Author       string   `json:"author,omitempty"`
	Version      string   `json:"version,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Source       string   `json:"source"`
	Path         string   `json:"path"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	kind, err := module.ParseKind(args[0])
	if err != nil {
		return err
	}
	m, enabled, err := app.catalog.Info(kind, args[1])
	if err != nil {
		return err
	}

	e := infoEntry{
		Kind:         m.Kind.String(),
		Name:         m.Name,
		Enabled:      enabled,
		Description:  m.Description,
		Author:       m.Author,
		Version:      displayVersion(m.Version),
		Dependencies: m.Dependencies,
		Source:       m.Source,
		Path:         m.SourcePath,
	}
	if infoJSON {
		return printJSON(cmd, e)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(w, "%s:\t%s\n", label, value)
	}
	row("Kind", e.Kind)
	row("Name", e.Name)
	row("Enabled", fmt.Sprint(e.Enabled))
	row("Description", e.Description)
	row("Author", e.Author)
	row("Version", e.Version)
	row("Dependencies", strings.Join(e.Dependencies, ", "))
	row("Source", e.Source)
	row("Path", e.Path)
	return w.Flush()
}

// displayVersion shows a semantic version in canonical form ("v1.2" becomes
// "1.2.0") and anything else verbatim.
func displayVersion(v string) string {
	if v == "" {
		return ""
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return v
	}
	return sv.String()
}
