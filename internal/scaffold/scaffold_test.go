package scaffold

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shmod-labs/shmod/internal/metadata"
	"github.com/shmod-labs/shmod/internal/module"
	"github.com/spf13/afero"
	"mvdan.cc/sh/v3/syntax"
)

func TestNewScaffoldData(t *testing.T) {
	t.Setenv("USER", "ada")
	d := NewScaffoldData(module.CallableRoutine, "git-tools.v2")
	if d.AboutHook != "about-function" {
		t.Errorf("AboutHook = %q", d.AboutHook)
	}
	if d.FuncName != "git_tools_v2" {
		t.Errorf("FuncName = %q", d.FuncName)
	}
	if d.Author != "ada" {
		t.Errorf("Author = %q", d.Author)
	}
	if d.Version != "0.1.0" {
		t.Errorf("Version = %q", d.Version)
	}
}

func TestGenerateEveryKind(t *testing.T) {
	for _, kind := range module.AllKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			fs := afero.NewMemMapFs()
			data := NewScaffoldData(kind, "demo")
			data.Description = "Demo module, it's quoted"
			data.Author = "Ada Lovelace"
			data.Dependencies = []string{"base", "git"}

			result, err := Generate(fs, data, "/custom/"+kind.Dir())
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			if len(result.Warnings) != 0 {
				t.Errorf("unexpected warnings: %v", result.Warnings)
			}
			if want := "/custom/" + kind.Dir() + "/demo" + kind.Suffix(); result.Path != want {
				t.Errorf("Path = %q, want %q", result.Path, want)
			}

			md := metadata.Extract(fs, result.Path, kind)
			want := module.Metadata{
				Description:  "Demo module, it's quoted",
				Author:       "Ada Lovelace",
				Version:      "0.1.0",
				Dependencies: []string{"base", "git"},
			}
			if diff := cmp.Diff(want, md); diff != "" {
				t.Errorf("metadata mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateWithoutAuthor(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := NewScaffoldData(module.ShortcutSet, "general")
	data.Author = ""

	result, err := Generate(fs, data, "/custom/aliases")
	if err != nil {
		t.Fatal(err)
	}
	content, err := afero.ReadFile(fs, result.Path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(content), "Author:") {
		t.Errorf("empty author should be omitted:\n%s", content)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestGenerateRefusesOverwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := NewScaffoldData(module.BehaviorExtension, "git")
	if _, err := Generate(fs, data, "/custom/plugins"); err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(fs, data, "/custom/plugins"); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second Generate() err = %v, want already exists", err)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data *ScaffoldData
	}{
		{"path in name", NewScaffoldData(module.BehaviorExtension, "../evil")},
		{"unknown kind", NewScaffoldData(module.Kind("theme"), "dark")},
		{"space in name", NewScaffoldData(module.ShortcutSet, "a b")},
		{"newline in name", NewScaffoldData(module.BehaviorExtension, "a\nb")},
		{"routine name with metacharacter", NewScaffoldData(module.CallableRoutine, "x;y")},
		{"routine name starting with digit", NewScaffoldData(module.CallableRoutine, "1up")},
		{"multi-line description", func() *ScaffoldData {
			d := NewScaffoldData(module.BehaviorExtension, "git")
			d.Description = "one\ntwo"
			return d
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if _, err := Generate(fs, tt.data, "/custom"); err == nil {
				t.Error("expected an error")
			}
			if entries, _ := afero.ReadDir(fs, "/custom"); len(entries) != 0 {
				t.Errorf("rejected input left %d file(s) behind", len(entries))
			}
		})
	}
}

func TestGenerateRoutineParsesAsShell(t *testing.T) {
	fs := afero.NewMemMapFs()
	result, err := Generate(fs, NewScaffoldData(module.CallableRoutine, "git-tools.v2"), "/custom/functions")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	data, err := afero.ReadFile(fs, result.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "git_tools_v2() {") {
		t.Errorf("function definition missing:\n%s", data)
	}
	if _, err := syntax.NewParser().Parse(strings.NewReader(string(data)), result.Path); err != nil {
		t.Errorf("generated routine does not parse: %v", err)
	}
}
