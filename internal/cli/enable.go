package cli

import (
	"errors"
	"fmt"

	"github.com/shmod-labs/shmod/internal/module"
	"github.com/spf13/cobra"
)

var enableCmd = &cobra.Command{
	Use:   "enable <kind> <name>...",
	Short: "Enable modules so they load at shell startup",
	Long: `Enable one or more modules of a kind. Enabling a module that is already
enabled is a no-op. The change takes effect in new shells.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEnable,
}

var disableCmd = &cobra.Command{
	Use:   "disable <kind> <name>...",
	Short: "Disable enabled modules",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runDisable,
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

func runEnable(cmd *cobra.Command, args []string) error {
	kind, err := module.ParseKind(args[0])
	if err != nil {
		return err
	}
	var errs []error
	for _, name := range args[1:] {
		already := app.catalog.IsEnabled(kind, name)
		if _, err := app.catalog.Enable(kind, name); err != nil {
			errs = append(errs, err)
			continue
		}
		key := module.Key{Kind: kind, Name: name}
		if already {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already enabled\n", key)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Enabled %s\n", key)
		}
	}
	return errors.Join(errs...)
}

func runDisable(cmd *cobra.Command, args []string) error {
	kind, err := module.ParseKind(args[0])
	if err != nil {
		return err
	}
	var errs []error
	for _, name := range args[1:] {
		if err := app.catalog.Disable(kind, name); err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Disabled %s\n", module.Key{Kind: kind, Name: name})
	}
	return errors.Join(errs...)
}
