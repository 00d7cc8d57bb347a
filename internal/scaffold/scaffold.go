package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/shmod-labs/shmod/internal/branding"
	"github.com/shmod-labs/shmod/internal/metadata"
	"github.com/shmod-labs/shmod/internal/module"
	"github.com/shmod-labs/shmod/internal/platform"
	"github.com/spf13/afero"
	"mvdan.cc/sh/v3/syntax"
)

// ScaffoldData holds all template variables available to scaffold templates.
type ScaffoldData struct {
	Kind         module.Kind
	Name         string   // e.g., "kubectl-helpers"
	Description  string   // Header description
	Author       string   // Header author, defaults to $USER
	Version      string   // Semver, e.g., "0.1.0"
	Dependencies []string // Header dependencies, may be empty
	CLIName      string   // Derived: branding CLI name
	AboutHook    string   // Derived: composure hook for the kind
	FuncName     string   // Derived: shell-safe function name (callable routines)
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Path     string
	Warnings []string
}

// NewScaffoldData creates a ScaffoldData with derived fields populated.
func NewScaffoldData(kind module.Kind, name string) *ScaffoldData {
	return &ScaffoldData{
		Kind:        kind,
		Name:        name,
		Description: fmt.Sprintf("%s %s", kind, name),
		Author:      os.Getenv("USER"),
		Version:     "0.1.0",
		CLIName:     branding.CLIName(),
		AboutHook:   kind.AboutHook(),
		FuncName:    strings.NewReplacer("-", "_", ".", "_").Replace(name),
	}
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"quote": func(s string) (string, error) {
		return syntax.Quote(s, syntax.LangBash)
	},
}

// Generate renders the template for data.Kind into dir and returns the
// written path. It refuses to overwrite an existing module. The header of
// the generated file is read back with the metadata extractor; anything it
// could not recover is reported in Result.Warnings.
func Generate(fs afero.Fs, data *ScaffoldData, dir string) (*Result, error) {
	if !data.Kind.Valid() {
		return nil, fmt.Errorf("unknown kind %q", data.Kind)
	}
	if !module.ValidName(data.Name) {
		return nil, fmt.Errorf("invalid module name %q", data.Name)
	}
	if strings.ContainsFunc(data.Name, func(r rune) bool { return unicode.IsSpace(r) || !unicode.IsPrint(r) }) {
		return nil, fmt.Errorf("module name %q must not contain spaces or control characters", data.Name)
	}
	if data.Kind == module.CallableRoutine && !syntax.ValidName(data.FuncName) {
		return nil, fmt.Errorf("module name %q does not make a valid shell function name", data.Name)
	}
	if strings.ContainsAny(data.Description, "\r\n") {
		return nil, errors.New("description must be a single line")
	}

	tmplPath := "templates/" + data.Kind.String() + ".tmpl"
	tmplBytes, err := scaffoldFS.ReadFile(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("template for %s not found: %w", data.Kind, err)
	}

	outPath := filepath.Join(dir, data.Kind.FileName(data.Name))
	if exists, _ := afero.Exists(fs, outPath); exists {
		return nil, fmt.Errorf("%s already exists; remove it first", outPath)
	}

	tmpl, err := template.New(tmplPath).Funcs(funcs).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	if _, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(bytes.NewReader(buf.Bytes()), outPath); err != nil {
		return nil, fmt.Errorf("generated %s does not parse: %w", outPath, err)
	}

	if err := platform.WriteFileAtomic(fs, outPath, buf.Bytes(), platform.FilePerm); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}

	result := &Result{Path: outPath}
	md := metadata.ExtractBytes(buf.Bytes(), data.Kind)
	if md.Degraded {
		result.Warnings = append(result.Warnings, "header: "+md.Reason)
	}
	if md.Description != data.Description {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("description reads back as %q", md.Description))
	}
	return result, nil
}
