package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shmod-labs/shmod/internal/branding"
	"github.com/shmod-labs/shmod/internal/host"
	"github.com/spf13/cobra"
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Show the detected plugin host",
	Long: `Show which plugin framework ` + branding.CLIName() + ` is running under
(oh-my-bash, oh-my-zsh, or native) and which optional hooks it stubs out.`,
	Args: cobra.NoArgs,
	RunE: runHost,
}

var hostRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Install " + branding.CLIName() + " as a plugin of the detected host",
	Args:  cobra.NoArgs,
	RunE:  runHostRegister,
}

func init() {
	hostCmd.AddCommand(hostRegisterCmd)
	rootCmd.AddCommand(hostCmd)
}

func runHost(cmd *cobra.Command, args []string) error {
	h, err := detectHost()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Host:  %s\n", h.Name())
	fmt.Fprintf(out, "Shell: %s\n", h.Shell())
	if path, err := h.PluginFile(envLookup); err == nil {
		fmt.Fprintf(out, "Plugin file: %s\n", path)
	}
	if hooks := h.Hooks(); len(hooks) > 0 {
		fmt.Fprintf(out, "Provided hooks: %s\n", strings.Join(hooks, ", "))
	}
	fmt.Fprintf(out, "Stubbed hooks: %s\n", strings.Join(host.Stubs(h), ", "))
	return nil
}

func runHostRegister(cmd *cobra.Command, args []string) error {
	h, err := detectHost()
	if err != nil {
		return err
	}
	path, err := host.Register(appFs, h, envLookup)
	if errors.Is(err, host.ErrNativeHost) {
		return fmt.Errorf("%w; add 'eval \"$(%s init)\"' to your shell rc file instead", err, branding.CLIName())
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s plugin at %s\n", h.Name(), path)
	fmt.Fprintf(cmd.OutOrStdout(), "Add %q to the plugins list of %s.\n", branding.PluginName(), h.Name())
	return nil
}
