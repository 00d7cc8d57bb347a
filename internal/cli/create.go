package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shmod-labs/shmod/internal/module"
	"github.com/shmod-labs/shmod/internal/scaffold"
	"github.com/shmod-labs/shmod/internal/userdata"
	"github.com/spf13/cobra"
)

var (
	createDescription string
	createAuthor      string
	createVersion     string
	createDeps        []string
	createEnable      bool
)

var createCmd = &cobra.Command{
	Use:   "create <kind> <name>",
	Short: "Create a new custom module from a template",
	Long: `Create a module file with a complete metadata header in the custom
module directory of the installation root, where it overrides builtin and
extra modules of the same name.`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createDescription, "description", "", "Header description (default \"<kind> <name>\")")
	createCmd.Flags().StringVar(&createAuthor, "author", "", "Header author (default $USER)")
	createCmd.Flags().StringVar(&createVersion, "version", "", "Header version (default 0.1.0)")
	createCmd.Flags().StringSliceVar(&createDeps, "depends", nil, "Header dependencies (comma-separated)")
	createCmd.Flags().BoolVar(&createEnable, "enable", false, "Enable the module after creating it")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	kind, err := module.ParseKind(args[0])
	if err != nil {
		return err
	}
	data := scaffold.NewScaffoldData(kind, args[1])
	if createDescription != "" {
		data.Description = createDescription
	}
	if createAuthor != "" {
		data.Author = createAuthor
	}
	if createVersion != "" {
		data.Version = createVersion
	}
	data.Dependencies = createDeps

	dir := filepath.Join(app.root, userdata.CustomDir, kind.Dir())
	result, err := scaffold.Generate(appFs, data, dir)
	if err != nil {
		return fmt.Errorf("creating %s: %w", module.Key{Kind: kind, Name: args[1]}, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", result.Path)
	for _, w := range result.Warnings {
		app.logger.Warn("generated header", "problem", w)
	}

	if createEnable {
		if _, err := app.catalog.Enable(kind, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Enabled %s\n", module.Key{Kind: kind, Name: args[1]})
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintf(out, "Review the header of %s: %s\n", filepath.Base(result.Path), strings.Join(result.Warnings, "; "))
	}
	return nil
}
