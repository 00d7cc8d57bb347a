package registry

import (
	"github.com/shmod-labs/shmod/internal/module"
	"github.com/spf13/afero"
)

// Resolver finds the current defining file of a module directly on disk.
// It applies the same priority rules as Builder and never reads the index.
type Resolver struct {
	Fs      afero.Fs
	Sources []Source
}

// NewResolver returns a Resolver over the given sources.
func NewResolver(fs afero.Fs, sources []Source) *Resolver {
	return &Resolver{Fs: fs, Sources: sources}
}

// Resolve returns the absolute path of the winning file for kind/name, or a
// module.NotFoundError.
func (r *Resolver) Resolve(kind module.Kind, name string) (string, error) {
	if !kind.Valid() || !module.ValidName(name) {
		return "", module.NotFound(kind, name)
	}
	paths := r.Lookup(kind)
	if p, ok := paths[name]; ok {
		return p, nil
	}
	return "", module.NotFound(kind, name)
}

// Lookup returns name → winning path for every module of kind.
func (r *Resolver) Lookup(kind module.Kind) map[string]string {
	res := walkKind(r.Fs, r.Sources, kind)
	paths := make(map[string]string, len(res.found))
	for _, c := range res.found {
		paths[c.name] = c.path
	}
	return paths
}
