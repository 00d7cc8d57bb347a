package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shmod-labs/shmod/internal/branding"
	"github.com/shmod-labs/shmod/internal/module"
	"github.com/shmod-labs/shmod/internal/registry"
)

// Directory and file name constants for the state and root layout.
const (
	RootDir      = "root"
	AvailableDir = "available"
	CustomDir    = "custom"
	EnabledDir   = "enabled"
	IndexFile    = "index.json"
	ConfigFile   = "config.yaml"
)

// Source names, in ascending priority.
const (
	SourceBuiltin = "builtin"
	SourceCustom  = "custom"
)

// GetStateRoot returns the per-user state directory.
// It checks the SHMOD_STATE environment variable first,
// then falls back to ~/.shmod.
func GetStateRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("STATE")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// GetRoot returns the installation root holding the builtin and custom
// module trees. It checks SHMOD_ROOT first, then falls back to
// ~/.shmod/root.
func GetRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("ROOT")); v != "" {
		return v, nil
	}
	state, err := GetStateRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(state, RootDir), nil
}

// IndexPath returns the persisted index location under state.
func IndexPath(state string) string { return filepath.Join(state, IndexFile) }

// EnabledRoot returns the activation marker directory under state.
func EnabledRoot(state string) string { return filepath.Join(state, EnabledDir) }

// ConfigPath returns the config file location under state.
func ConfigPath(state string) string { return filepath.Join(state, ConfigFile) }

// Sources lays out the module directories in ascending priority:
// builtin (<root>/<kind>/available), then each extra directory in the
// order given (<extra>/<kind>), then custom (<root>/custom/<kind>).
func Sources(root string, extras []string) []registry.Source {
	sources := make([]registry.Source, 0, len(extras)+2)
	sources = append(sources, source(SourceBuiltin, func(k module.Kind) string {
		return filepath.Join(root, k.Dir(), AvailableDir)
	}))
	for i, extra := range extras {
		extra := extra
		sources = append(sources, source(fmt.Sprintf("extra:%d", i+1), func(k module.Kind) string {
			return filepath.Join(extra, k.Dir())
		}))
	}
	sources = append(sources, source(SourceCustom, func(k module.Kind) string {
		return filepath.Join(root, CustomDir, k.Dir())
	}))
	return sources
}

func source(name string, dir func(module.Kind) string) registry.Source {
	dirs := make(map[module.Kind][]string, len(module.AllKinds()))
	for _, k := range module.AllKinds() {
		dirs[k] = []string{dir(k)}
	}
	return registry.Source{Name: name, Dirs: dirs}
}
