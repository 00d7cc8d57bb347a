package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shmod-labs/shmod/internal/module"
	"github.com/spf13/afero"
)

// writeModule creates a module file of kind under dir and returns its path.
func writeModule(t *testing.T, fs afero.Fs, dir string, kind module.Kind, name, content string) string {
	t.Helper()
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, kind.FileName(name))
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// layout returns a single-source directory map rooted at root, one
// directory per kind.
func layout(root string) map[module.Kind][]string {
	dirs := make(map[module.Kind][]string)
	for _, k := range module.AllKinds() {
		dirs[k] = []string{filepath.Join(root, k.Dir())}
	}
	return dirs
}

// symlinkedDir creates a real directory holding a git behavior extension
// (with a nested one under sub/) and returns a symlink pointing at it.
// The test is skipped where symlinks cannot be created.
func symlinkedDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	target := filepath.Join(tmp, "dotfiles", "plugins")
	fs := afero.NewOsFs()
	writeModule(t, fs, target, module.BehaviorExtension, "git", "# Description: linked\n")
	writeModule(t, fs, filepath.Join(target, "sub"), module.BehaviorExtension, "nested", "")
	link := filepath.Join(tmp, "plugins")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	return link
}
