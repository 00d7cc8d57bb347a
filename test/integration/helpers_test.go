//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/shmod-labs/shmod/internal/catalog"
	"github.com/shmod-labs/shmod/internal/module"
	"github.com/shmod-labs/shmod/internal/userdata"
	"github.com/spf13/afero"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	Root     string // SHMOD_ROOT: builtin and custom module trees
	State    string // SHMOD_STATE: index, markers, config
	ExtraDir string // an extra source directory
	Log      *strings.Builder
}

// setupTestEnv creates isolated temp directories and sets environment
// variables so every operation is sandboxed. The env vars are restored
// after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		Root:     t.TempDir(),
		State:    t.TempDir(),
		ExtraDir: t.TempDir(),
		Log:      &strings.Builder{},
	}
	t.Setenv("SHMOD_ROOT", env.Root)
	t.Setenv("SHMOD_STATE", env.State)
	t.Setenv("SHMOD_HOST", "")

	for _, k := range module.AllKinds() {
		for _, dir := range []string{
			filepath.Join(env.Root, k.Dir(), userdata.AvailableDir),
			filepath.Join(env.Root, userdata.CustomDir, k.Dir()),
		} {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				t.Fatalf("creating %s: %v", dir, err)
			}
		}
	}
	return env
}

// catalog opens a catalog over the environment's sources.
func (e *testEnv) catalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.New(catalog.Options{
		Fs:          afero.NewOsFs(),
		Sources:     userdata.Sources(e.Root, []string{e.ExtraDir}),
		IndexPath:   userdata.IndexPath(e.State),
		EnabledRoot: userdata.EnabledRoot(e.State),
		MaxAge:      catalog.DefaultMaxAge,
		Logger:      log.New(e.Log),
	})
}

// builtin writes a builtin module file and returns its path.
func (e *testEnv) builtin(t *testing.T, kind module.Kind, name, content string) string {
	t.Helper()
	path := filepath.Join(e.Root, kind.Dir(), userdata.AvailableDir, kind.FileName(name))
	writeFile(t, path, content)
	return path
}

// custom writes a custom module file and returns its path.
func (e *testEnv) custom(t *testing.T, kind module.Kind, name, content string) string {
	t.Helper()
	path := filepath.Join(e.Root, userdata.CustomDir, kind.Dir(), kind.FileName(name))
	writeFile(t, path, content)
	return path
}

// extra writes a module file into the extra source and returns its path.
func (e *testEnv) extra(t *testing.T, kind module.Kind, name, content string) string {
	t.Helper()
	path := filepath.Join(e.ExtraDir, kind.Dir(), kind.FileName(name))
	writeFile(t, path, content)
	return path
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}
