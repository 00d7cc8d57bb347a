package registry

import (
	"errors"
	"fmt"
	"time"

	"github.com/shmod-labs/shmod/internal/module"
)

// SchemaVersion is written into every persisted index. Loading an index
// whose major version differs forces a rebuild.
const SchemaVersion = "1.0.0"

var (
	// ErrNoReadableSources is the only failure Build reports: none of the
	// configured directories could be read.
	ErrNoReadableSources = errors.New("no readable source directories")
	// ErrIndexMissing means no index has been persisted yet.
	ErrIndexMissing = errors.New("index not found")
	// ErrIndexCorrupt means the persisted index could not be decoded.
	ErrIndexCorrupt = errors.New("index is corrupt")
	// ErrIndexSchema means the persisted index uses an incompatible schema.
	ErrIndexSchema = errors.New("index schema version is incompatible")
	// ErrIndexStale means the index is older than the caller's budget.
	ErrIndexStale = errors.New("index is stale")
)

// Source is one named set of module directories. Sources are listed in
// ascending priority: a module found in a later source replaces the same
// (kind, name) from an earlier one. Within a kind, later directories also
// take priority over earlier ones.
type Source struct {
	Name string
	Dirs map[module.Kind][]string
}

// DirectoryError records a configured directory that could not be scanned.
// It is a warning: the scan continues with the remaining directories.
type DirectoryError struct {
	Kind module.Kind
	Dir  string
	Err  error
}

func (e DirectoryError) Error() string {
	return fmt.Sprintf("%s directory %s unreadable: %v", e.Kind, e.Dir, e.Err)
}

func (e DirectoryError) Unwrap() error { return e.Err }

// Index is a point-in-time snapshot of every discovered module.
type Index struct {
	SchemaVersion string          `json:"schema_version"`
	GeneratedAt   time.Time       `json:"generated_at"`
	Modules       []module.Module `json:"modules"`

	// Warnings collects unreadable directories seen during Build. It is not
	// persisted.
	Warnings []DirectoryError `json:"-"`
}

// Find returns the module with the given key.
func (idx *Index) Find(kind module.Kind, name string) (module.Module, bool) {
	for _, m := range idx.Modules {
		if m.Kind == kind && m.Name == name {
			return m, true
		}
	}
	return module.Module{}, false
}

// Filter returns the modules of one kind, or all modules when kind is nil.
func (idx *Index) Filter(kind *module.Kind) []module.Module {
	out := make([]module.Module, 0, len(idx.Modules))
	for _, m := range idx.Modules {
		if kind != nil && m.Kind != *kind {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Stale reports whether the index is older than maxAge at now. A zero or
// negative maxAge never expires.
func (idx *Index) Stale(maxAge time.Duration, now time.Time) bool {
	return maxAge > 0 && now.Sub(idx.GeneratedAt) > maxAge
}
