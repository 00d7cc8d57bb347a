package userdata

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shmod-labs/shmod/internal/platform"
	"github.com/spf13/afero"
)

func TestInit_CreatesStructure(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "root")
	state := filepath.Join(tmp, "state")

	var buf bytes.Buffer
	if err := Init(afero.NewOsFs(), &buf, root, state); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	assertDirExists(t, filepath.Join(state, "enabled", "behavior-extension"))
	assertDirExists(t, filepath.Join(state, "enabled", "callable-routine"))
	assertDirExists(t, filepath.Join(root, "custom", "plugins"))
	assertDirExists(t, filepath.Join(root, "custom", "aliases"))
	assertDirExists(t, filepath.Join(root, "custom", "completion"))
	assertDirExists(t, filepath.Join(root, "custom", "functions"))
	assertFileExists(t, filepath.Join(state, "config.yaml"))
	assertDirPerm(t, filepath.Join(root, "custom", "plugins"), platform.DirPerm)

	if !strings.Contains(buf.String(), "[ OK ]") {
		t.Error("expected [ OK ] in output")
	}
}

func TestInit_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "root")
	state := filepath.Join(tmp, "state")
	fs := afero.NewOsFs()

	var buf1 bytes.Buffer
	if err := Init(fs, &buf1, root, state); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	cfg := filepath.Join(state, "config.yaml")
	if err := os.WriteFile(cfg, []byte("log_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Run again; should succeed with SKIP messages.
	var buf2 bytes.Buffer
	if err := Init(fs, &buf2, root, state); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if strings.Contains(buf2.String(), "[ OK ]") {
		t.Errorf("second run created something:\n%s", buf2.String())
	}
	if !strings.Contains(buf2.String(), "[SKIP]") {
		t.Error("expected [SKIP] messages in second run")
	}

	data, err := os.ReadFile(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "log_level: debug\n" {
		t.Errorf("existing config was overwritten: %q", data)
	}
}

func TestInit_DefaultConfigContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	var buf bytes.Buffer
	if err := Init(fs, &buf, "/r", "/s"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	data, err := afero.ReadFile(fs, "/s/config.yaml")
	if err != nil {
		t.Fatalf("reading config.yaml: %v", err)
	}
	if !strings.Contains(string(data), "index_max_age: 24h") {
		t.Error("missing index_max_age in config.yaml")
	}
}

func TestInit_StateIsAFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/s", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Init(fs, &buf, "/r", "/s"); err == nil {
		t.Fatal("expected an error when the state path is a file")
	}
}

// Helpers

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("directory %s does not exist: %v", path, err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", path)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file %s does not exist: %v", path, err)
	}
	if info.IsDir() {
		t.Fatalf("%s is a directory, expected file", path)
	}
}

func assertDirPerm(t *testing.T, path string, expected os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	actual := info.Mode().Perm()
	if actual != expected {
		t.Errorf("permissions on %s: expected %o, got %o", path, expected, actual)
	}
}
