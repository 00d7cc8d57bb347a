package host

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shmod-labs/shmod/internal/branding"
	"github.com/shmod-labs/shmod/internal/module"
	"mvdan.cc/sh/v3/syntax"
)

// RenderInit produces the startup script the shell evaluates: no-op
// definitions for every hook h lacks, followed by one source line per entry
// in load order. shell selects the dialect ("bash" or "zsh"); empty means
// the host's own shell.
func RenderInit(h Host, shell string, entries []module.LoadEntry) (string, error) {
	if shell == "" {
		shell = h.Shell()
	}
	if shell != "bash" && shell != "zsh" {
		return "", fmt.Errorf("unsupported shell %q (want bash or zsh)", shell)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s init (host: %s, shell: %s)\n", branding.CLIName(), h.Name(), shell)
	for _, name := range Stubs(h) {
		if shell == "zsh" {
			fmt.Fprintf(&b, "(( ${+functions[%s]} )) || %s() { : }\n", name, name)
		} else {
			fmt.Fprintf(&b, "declare -F %s >/dev/null 2>&1 || %s() { :; }\n", name, name)
		}
	}
	for _, e := range entries {
		quoted, err := syntax.Quote(e.SourcePath, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("quoting %s %q path: %w", e.Kind, e.Name, err)
		}
		fmt.Fprintf(&b, "source %s # %s\n", quoted, e.Key())
	}

	if shell == "zsh" {
		return b.String(), nil
	}
	return formatBash(b.String())
}

// formatBash parses the generated script and prints it back, so a script
// that bash could not parse is caught here instead of at shell startup.
func formatBash(script string) (string, error) {
	file, err := syntax.NewParser(syntax.KeepComments(true), syntax.Variant(syntax.LangBash)).
		Parse(strings.NewReader(script), "init")
	if err != nil {
		return "", fmt.Errorf("generated init script does not parse: %w", err)
	}
	var buf bytes.Buffer
	if err := syntax.NewPrinter().Print(&buf, file); err != nil {
		return "", fmt.Errorf("printing init script: %w", err)
	}
	return buf.String(), nil
}
