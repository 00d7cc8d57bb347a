package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shmod-labs/shmod/internal/module"
	"github.com/spf13/afero"
)

func mustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	return wd
}

func TestResolveMatchesBuilderPriority(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeModule(t, fs, "/builtin/plugins", module.BehaviorExtension, "git", "")
	custom := writeModule(t, fs, "/custom/plugins", module.BehaviorExtension, "git", "")
	sources := []Source{
		{Name: "builtin", Dirs: map[module.Kind][]string{module.BehaviorExtension: {"/builtin/plugins"}}},
		{Name: "custom", Dirs: map[module.Kind][]string{module.BehaviorExtension: {"/custom/plugins"}}},
	}

	got, err := NewResolver(fs, sources).Resolve(module.BehaviorExtension, "git")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != custom {
		t.Errorf("Resolve = %q, want %q", got, custom)
	}

	idx, err := NewBuilder(fs, nil).Build(sources)
	if err != nil {
		t.Fatal(err)
	}
	m, _ := idx.Find(module.BehaviorExtension, "git")
	if m.SourcePath != got {
		t.Errorf("builder chose %q, resolver chose %q", m.SourcePath, got)
	}
}

func TestResolveNotFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeModule(t, fs, "/root/plugins", module.BehaviorExtension, "git", "")
	r := NewResolver(fs, []Source{{Name: "builtin", Dirs: layout("/root")}})

	tests := []struct {
		kind module.Kind
		name string
	}{
		{module.BehaviorExtension, "missing"},
		{module.ShortcutSet, "git"},
		{module.BehaviorExtension, "../plugins/git"},
		{module.BehaviorExtension, ""},
		{module.Kind("theme"), "git"},
	}
	for _, tt := range tests {
		_, err := r.Resolve(tt.kind, tt.name)
		if !errors.Is(err, module.ErrNotFound) {
			t.Errorf("Resolve(%s, %q) err = %v, want ErrNotFound", tt.kind, tt.name, err)
		}
	}
}

func TestResolveThroughSymlinkedSourceDirectory(t *testing.T) {
	link := symlinkedDir(t)
	r := NewResolver(afero.NewOsFs(), []Source{
		{Name: "extra:0", Dirs: map[module.Kind][]string{module.BehaviorExtension: {link}}},
	})

	got, err := r.Resolve(module.BehaviorExtension, "nested")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.Join(link, "sub", "nested.plugin.bash"); got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}
