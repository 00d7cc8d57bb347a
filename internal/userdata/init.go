package userdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shmod-labs/shmod/internal/module"
	"github.com/shmod-labs/shmod/internal/platform"
	"github.com/spf13/afero"
)

// Default content for config.yaml.
const defaultConfigContent = `# shmod settings. Environment variables (SHMOD_*) take precedence.
index_max_age: 24h
log_level: info
# sources:
#   - /usr/share/shmod
# kind_order: [behavior-extension, shortcut-set, input-completion, callable-routine]
`

// Init creates the state directory (markers, default config) and the
// custom module tree under root. Existing items are skipped with a message.
func Init(fs afero.Fs, w io.Writer, root, state string) error {
	if err := ensureDir(fs, w, state); err != nil {
		return err
	}
	for _, k := range module.AllKinds() {
		if err := ensureDir(fs, w, filepath.Join(EnabledRoot(state), k.String())); err != nil {
			return err
		}
	}
	if err := ensureFile(fs, w, ConfigPath(state), defaultConfigContent); err != nil {
		return err
	}
	for _, k := range module.AllKinds() {
		if err := ensureDir(fs, w, filepath.Join(root, CustomDir, k.Dir())); err != nil {
			return err
		}
	}
	return nil
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(fs afero.Fs, w io.Writer, path string) error {
	if info, err := fs.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := fs.MkdirAll(path, platform.DirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	// MkdirAll may not apply exact perms if parent dirs needed creation.
	if err := platform.Chmod(fs, path, platform.DirPerm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

// ensureFile creates a file with content if it doesn't exist.
func ensureFile(fs afero.Fs, w io.Writer, path, content string) error {
	if _, err := fs.Stat(path); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if err := platform.WriteFileAtomic(fs, path, []byte(content), platform.FilePerm); err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
