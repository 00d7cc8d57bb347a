package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/shmod-labs/shmod/internal/activation"
	"github.com/spf13/cobra"
)

var enabledJSON bool

var enabledCmd = &cobra.Command{
	Use:   "enabled [kind]",
	Short: "List enabled modules",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEnabled,
}

func init() {
	enabledCmd.Flags().BoolVar(&enabledJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(enabledCmd)
}

func runEnabled(cmd *cobra.Command, args []string) error {
	kind, err := optionalKind(args)
	if err != nil {
		return err
	}
	recs, err := app.catalog.Enabled(kind)
	if err != nil {
		return fmt.Errorf("listing enabled modules: %w", err)
	}
	if enabledJSON {
		if recs == nil {
			recs = []activation.Record{}
		}
		return printJSON(cmd, recs)
	}
	if len(recs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing enabled.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAME\tENABLED AT")
	for _, r := range recs {
		at := "-"
		if !r.EnabledAt.IsZero() {
			at = r.EnabledAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Kind, r.Name, at)
	}
	return w.Flush()
}
