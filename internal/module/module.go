package module

import (
	"fmt"
	"strings"
)

// Key is the (kind, name) natural key. Names are unique within a kind only.
type Key struct {
	Kind Kind
	Name string
}

func (k Key) String() string { return fmt.Sprintf("%s/%s", k.Kind, k.Name) }

// Metadata is the best-effort description extracted from a module header.
// Every field is optional. Degraded signals that the header could not be
// fully read; it is informational and never a failure.
type Metadata struct {
	Description  string
	Author       string
	Version      string
	Dependencies []string
	Degraded     bool
	Reason       string
}

// Module is a discovered module file.
type Module struct {
	Kind         Kind     `json:"kind"`
	Name         string   `json:"name"`
	SourcePath   string   `json:"source_path"`
	Source       string   `json:"source"`
	Description  string   `json:"description,omitempty"`
	Author       string   `json:"author,omitempty"`
	Version      string   `json:"version,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// Key returns the module's natural key.
func (m Module) Key() Key { return Key{Kind: m.Kind, Name: m.Name} }

// WithMetadata copies the extracted fields onto the module.
func (m Module) WithMetadata(md Metadata) Module {
	m.Description = md.Description
	m.Author = md.Author
	m.Version = md.Version
	m.Dependencies = md.Dependencies
	return m
}

// ValidName reports whether name can name a module file. Names that could
// escape a directory (separators, "." and "..") never resolve.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}

// LoadEntry is one module to load at shell startup.
type LoadEntry struct {
	Kind       Kind   `json:"kind"`
	Name       string `json:"name"`
	SourcePath string `json:"source_path"`
}

// Key returns the entry's natural key.
func (e LoadEntry) Key() Key { return Key{Kind: e.Kind, Name: e.Name} }
