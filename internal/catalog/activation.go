package catalog

import (
	"sort"

	"github.com/shmod-labs/shmod/internal/activation"
	"github.com/shmod-labs/shmod/internal/module"
)

// IsEnabled reports whether kind/name is active.
func (c *Catalog) IsEnabled(kind module.Kind, name string) bool {
	return c.store.IsEnabled(kind, name)
}

// Enable activates kind/name. The module file is resolved on disk; the
// index is not consulted.
func (c *Catalog) Enable(kind module.Kind, name string) (activation.Record, error) {
	return c.store.Enable(kind, name)
}

// Disable deactivates kind/name.
func (c *Catalog) Disable(kind module.Kind, name string) error {
	return c.store.Disable(kind, name)
}

// Enabled lists activation records in configured kind order.
func (c *Catalog) Enabled(kind *module.Kind) ([]activation.Record, error) {
	recs, err := c.store.ListEnabled(kind)
	if err != nil {
		return nil, err
	}
	order := c.opts.KindOrder
	sort.SliceStable(recs, func(i, j int) bool {
		return order.Less(recs[i].Key(), recs[j].Key())
	})
	return recs, nil
}

// ResolveLoadOrder returns the enabled modules to load at shell startup,
// each re-resolved to its current file. Activations whose file has
// disappeared are dropped with a warning. The result is ordered by kind
// precedence, then name.
func (c *Catalog) ResolveLoadOrder() ([]module.LoadEntry, error) {
	recs, err := c.store.ListEnabled(nil)
	if err != nil {
		return nil, err
	}

	lookups := make(map[module.Kind]map[string]string)
	var entries []module.LoadEntry
	for _, rec := range recs {
		paths, ok := lookups[rec.Kind]
		if !ok {
			paths = c.resolver.Lookup(rec.Kind)
			lookups[rec.Kind] = paths
		}
		path, ok := paths[rec.Name]
		if !ok {
			c.logger.Warn("skipping enabled module with no file", "module", rec.Key().String())
			continue
		}
		entries = append(entries, module.LoadEntry{Kind: rec.Kind, Name: rec.Name, SourcePath: path})
	}

	order := c.opts.KindOrder
	sort.SliceStable(entries, func(i, j int) bool {
		return order.Less(entries[i].Key(), entries[j].Key())
	})
	return entries, nil
}

// Dangling returns activations whose module file no longer resolves.
func (c *Catalog) Dangling() ([]activation.Record, error) {
	recs, err := c.store.ListEnabled(nil)
	if err != nil {
		return nil, err
	}
	var out []activation.Record
	for _, rec := range recs {
		if _, err := c.resolver.Resolve(rec.Kind, rec.Name); err != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}
