package activation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shmod-labs/shmod/internal/module"
	"github.com/shmod-labs/shmod/internal/platform"
	"github.com/spf13/afero"
)

// Resolver locates the defining file of a module on disk.
type Resolver interface {
	Resolve(kind module.Kind, name string) (string, error)
}

// Record is one activation.
type Record struct {
	Kind      module.Kind `json:"kind"`
	Name      string      `json:"name"`
	EnabledAt time.Time   `json:"enabled_at"`
}

// Key returns the record's natural key.
func (r Record) Key() module.Key { return module.Key{Kind: r.Kind, Name: r.Name} }

// Store is the marker-directory activation store.
type Store struct {
	Fs       afero.Fs
	Root     string
	Resolver Resolver
	Now      func() time.Time
}

// NewStore returns a store rooted at root. Enable consults resolver to
// verify that a module file exists.
func NewStore(fs afero.Fs, root string, resolver Resolver) *Store {
	return &Store{Fs: fs, Root: root, Resolver: resolver, Now: time.Now}
}

func (s *Store) markerPath(kind module.Kind, name string) string {
	return filepath.Join(s.Root, string(kind), name)
}

// IsEnabled reports whether kind/name has an activation marker.
func (s *Store) IsEnabled(kind module.Kind, name string) bool {
	if !kind.Valid() || !module.ValidName(name) {
		return false
	}
	info, err := s.Fs.Stat(s.markerPath(kind, name))
	return err == nil && !info.IsDir()
}

// Enable records kind/name as enabled. The module file must resolve at call
// time, otherwise a module.NotFoundError is returned. Enabling an enabled
// module is a no-op that returns the existing record with its original
// EnabledAt.
func (s *Store) Enable(kind module.Kind, name string) (Record, error) {
	if s.Resolver == nil {
		return Record{}, fmt.Errorf("enabling %s %q: no resolver configured", kind, name)
	}
	if _, err := s.Resolver.Resolve(kind, name); err != nil {
		return Record{}, err
	}

	path := s.markerPath(kind, name)
	if rec, err := s.read(kind, name); err == nil {
		return rec, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Record{}, fmt.Errorf("enabling %s %q: %w", kind, name, err)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	rec := Record{Kind: kind, Name: name, EnabledAt: now().UTC().Truncate(time.Second)}
	data := []byte(rec.EnabledAt.Format(time.RFC3339) + "\n")
	if err := platform.WriteFileAtomic(s.Fs, path, data, platform.FilePerm); err != nil {
		return Record{}, fmt.Errorf("enabling %s %q: %w", kind, name, err)
	}
	return rec, nil
}

// Disable removes the activation of kind/name. It returns a
// module.NotEnabledError when there is none.
func (s *Store) Disable(kind module.Kind, name string) error {
	if !s.IsEnabled(kind, name) {
		return module.NotEnabled(kind, name)
	}
	if err := s.Fs.Remove(s.markerPath(kind, name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return module.NotEnabled(kind, name)
		}
		return fmt.Errorf("disabling %s %q: %w", kind, name, err)
	}
	return nil
}

// ListEnabled returns every activation, or only those of kind when it is
// non-nil, ordered by default kind precedence then name.
func (s *Store) ListEnabled(kind *module.Kind) ([]Record, error) {
	kinds := module.AllKinds()
	if kind != nil {
		kinds = []module.Kind{*kind}
	}

	var recs []Record
	for _, k := range kinds {
		dir := filepath.Join(s.Root, string(k))
		entries, err := afero.ReadDir(s.Fs, dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("listing enabled %s modules: %w", k, err)
		}
		for _, e := range entries {
			if e.IsDir() || platform.IsTemp(e.Name()) || !module.ValidName(e.Name()) {
				continue
			}
			rec, err := s.read(k, e.Name())
			if err != nil {
				continue // removed between ReadDir and read
			}
			recs = append(recs, rec)
		}
	}

	order := module.DefaultOrder()
	sort.SliceStable(recs, func(i, j int) bool {
		return order.Less(recs[i].Key(), recs[j].Key())
	})
	return recs, nil
}

// read loads one marker. A marker with unreadable content still denotes an
// activation; its EnabledAt is left zero.
func (s *Store) read(kind module.Kind, name string) (Record, error) {
	data, err := afero.ReadFile(s.Fs, s.markerPath(kind, name))
	if err != nil {
		return Record{}, err
	}
	rec := Record{Kind: kind, Name: name}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data))); err == nil {
		rec.EnabledAt = t
	}
	return rec, nil
}
