package cli

import (
	"fmt"

	"github.com/shmod-labs/shmod/internal/config"
	"github.com/shmod-labs/shmod/internal/userdata"
	"github.com/spf13/cobra"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing state and custom module directories")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the module registry",
	Long: `Check source directories, the persisted index, activation records and
the config file. Exits non-zero when a check fails.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if doctorFix {
		fmt.Fprintln(out, "Layout:")
		if err := userdata.Init(appFs, out, app.root, app.state); err != nil {
			return fmt.Errorf("auto-fix layout: %w", err)
		}
	}

	failures := 0
	fmt.Fprintln(out, "Config:")
	cfgPath := userdata.ConfigPath(app.state)
	res, err := config.ValidateFile(appFs, cfgPath)
	switch {
	case err != nil:
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		failures++
	case !res.Valid:
		fmt.Fprintf(out, "  [WARN] %s has %d validation issue(s):\n", cfgPath, len(res.Issues))
		for _, issue := range res.Issues {
			fmt.Fprintf(out, "    - %s\n", issue)
		}
	default:
		fmt.Fprintf(out, "  [ OK ] %s\n", cfgPath)
	}
	for _, p := range app.settings.Problems {
		fmt.Fprintf(out, "  [WARN] %s (default used)\n", p)
	}

	report := app.catalog.Doctor(out)
	failures += report.Failures
	if failures > 0 {
		return fmt.Errorf("doctor found %d problem(s)", failures)
	}
	return nil
}
