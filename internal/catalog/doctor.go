package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shmod-labs/shmod/internal/module"
	"github.com/shmod-labs/shmod/internal/registry"
	"github.com/spf13/afero"
)

// Report summarizes a Doctor run.
type Report struct {
	Warnings int
	Failures int
}

// OK reports whether every check passed. Warnings do not count as failures.
func (r Report) OK() bool { return r.Failures == 0 }

// Doctor checks source directories, the persisted index and activation
// records, writing one line per finding to w. It never modifies state.
func (c *Catalog) Doctor(w io.Writer) Report {
	var r Report
	c.checkSources(w, &r)
	c.checkIndex(w, &r)
	c.checkActivations(w, &r)
	return r
}

func (c *Catalog) checkSources(w io.Writer, r *Report) {
	fmt.Fprintln(w, "Source directories:")
	readable := 0
	for _, src := range c.opts.Sources {
		for _, kind := range module.AllKinds() {
			for _, dir := range src.Dirs[kind] {
				info, err := c.opts.Fs.Stat(dir)
				switch {
				case errors.Is(err, os.ErrNotExist):
					fmt.Fprintf(w, "  [MISS] %s (%s, optional)\n", dir, src.Name)
				case err != nil:
					fmt.Fprintf(w, "  [FAIL] %s: %v\n", dir, err)
					r.Failures++
				case !info.IsDir():
					fmt.Fprintf(w, "  [FAIL] %s exists but is not a directory\n", dir)
					r.Failures++
				default:
					if _, err := afero.ReadDir(c.opts.Fs, dir); err != nil {
						fmt.Fprintf(w, "  [FAIL] %s: %v\n", dir, err)
						r.Failures++
						continue
					}
					readable++
					fmt.Fprintf(w, "  [ OK ] %s (%s)\n", dir, src.Name)
				}
			}
		}
	}
	if readable == 0 {
		fmt.Fprintf(w, "  [FAIL] %v\n", registry.ErrNoReadableSources)
		r.Failures++
	}
}

func (c *Catalog) checkIndex(w io.Writer, r *Report) {
	fmt.Fprintln(w, "Index:")
	if c.opts.IndexPath == "" {
		fmt.Fprintln(w, "  [INFO] persistence disabled")
		return
	}
	idx, err := registry.LoadIndex(c.opts.Fs, c.opts.IndexPath)
	switch {
	case errors.Is(err, registry.ErrIndexMissing):
		fmt.Fprintf(w, "  [MISS] %s (built on next use)\n", c.opts.IndexPath)
	case err != nil:
		fmt.Fprintf(w, "  [WARN] %v (rebuilt on next use)\n", err)
		r.Warnings++
	case idx.Stale(c.opts.MaxAge, c.opts.Now()):
		fmt.Fprintf(w, "  [WARN] %s is stale (generated %s)\n", c.opts.IndexPath, idx.GeneratedAt.Format("2006-01-02 15:04:05Z07:00"))
		r.Warnings++
	default:
		fmt.Fprintf(w, "  [ OK ] %s (%d modules, schema %s)\n", c.opts.IndexPath, len(idx.Modules), idx.SchemaVersion)
	}
}

func (c *Catalog) checkActivations(w io.Writer, r *Report) {
	fmt.Fprintln(w, "Activations:")
	recs, err := c.store.ListEnabled(nil)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		r.Failures++
		return
	}
	if len(recs) == 0 {
		fmt.Fprintln(w, "  [INFO] nothing enabled")
		return
	}
	dangling := 0
	for _, rec := range recs {
		if _, err := c.resolver.Resolve(rec.Kind, rec.Name); err != nil {
			fmt.Fprintf(w, "  [FAIL] %s is enabled but has no module file (run 'disable %s %s')\n", rec.Key(), rec.Kind, rec.Name)
			dangling++
		}
	}
	r.Failures += dangling
	fmt.Fprintf(w, "  [ OK ] %d of %d enabled modules resolve\n", len(recs)-dangling, len(recs))
}
