package cli

import (
	"fmt"
	"path/filepath"

	"github.com/shmod-labs/shmod/internal/branding"
	"github.com/shmod-labs/shmod/internal/host"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [bash|zsh]",
	Short: "Print the shell startup script",
	Long: `Print the script that loads every enabled module, in kind precedence
then name order. Evaluate it from your shell rc file:

  eval "$(` + branding.CLIName() + ` init)"

The shell defaults to the detected host's shell, then to $SHELL.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"bash", "zsh"},
	RunE:      runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	h, err := detectHost()
	if err != nil {
		return err
	}
	shell := ""
	if len(args) > 0 {
		shell = args[0]
	} else if !host.IsForeign(h) {
		if sh := filepath.Base(envLookup("SHELL")); sh == "zsh" {
			shell = sh
		}
	}

	if host.IsForeign(h) && !host.Registered(appFs, h, envLookup) {
		app.logger.Info(fmt.Sprintf("%s is not registered as a plugin; run '%s host register'", branding.CLIName(), branding.CLIName()), "host", h.Name())
	}

	entries, err := app.catalog.ResolveLoadOrder()
	if err != nil {
		return fmt.Errorf("resolving load order: %w", err)
	}
	script, err := host.RenderInit(h, shell, entries)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), script)
	return err
}

// detectHost honours the configured host before environment detection.
func detectHost() (host.Host, error) {
	if name := app.settings.Host; name != "" {
		h, ok := host.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown host %q in config", name)
		}
		return h, nil
	}
	return host.Detect(envLookup)
}
