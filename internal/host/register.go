package host

import (
	"fmt"

	"github.com/shmod-labs/shmod/internal/branding"
	"github.com/shmod-labs/shmod/internal/platform"
	"github.com/spf13/afero"
)

// PluginScript is the content of the plugin file registered with a foreign
// host. It hands startup over to the init command.
func PluginScript(h Host) string {
	cli := branding.CLIName()
	return fmt.Sprintf(`# %[1]s plugin for %[2]s.
# Loads every module enabled with '%[1]s enable' as part of this one plugin.
if command -v %[1]s >/dev/null 2>&1; then
  eval "$(%[1]s init %[3]s)"
fi
`, cli, h.Name(), h.Shell())
}

// Register installs shmod as a single plugin of the foreign host h and
// returns the plugin file path. It returns ErrNativeHost for Native.
// Registering twice rewrites the same file.
func Register(fs afero.Fs, h Host, env Env) (string, error) {
	if !IsForeign(h) {
		return "", ErrNativeHost
	}
	path, err := h.PluginFile(env)
	if err != nil {
		return "", fmt.Errorf("locating %s plugin directory: %w", h.Name(), err)
	}
	if err := platform.WriteFileAtomic(fs, path, []byte(PluginScript(h)), platform.FilePerm); err != nil {
		return "", fmt.Errorf("registering with %s: %w", h.Name(), err)
	}
	return path, nil
}

// Registered reports whether the plugin file for the foreign host h exists.
// Native is never registered.
func Registered(fs afero.Fs, h Host, env Env) bool {
	if !IsForeign(h) {
		return false
	}
	path, err := h.PluginFile(env)
	if err != nil {
		return false
	}
	ok, _ := afero.Exists(fs, path)
	return ok
}
