package catalog

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shmod-labs/shmod/internal/activation"
	"github.com/shmod-labs/shmod/internal/module"
	"github.com/shmod-labs/shmod/internal/registry"
	"github.com/spf13/afero"
)

// DefaultMaxAge is the default staleness budget for the persisted index.
const DefaultMaxAge = 24 * time.Hour

// Options configures a Catalog.
type Options struct {
	Fs          afero.Fs
	Sources     []registry.Source
	IndexPath   string
	EnabledRoot string
	// MaxAge is the staleness budget; zero or negative never expires.
	MaxAge    time.Duration
	KindOrder module.Order
	Logger    *log.Logger
	Now       func() time.Time
}

// Catalog is the registry facade.
type Catalog struct {
	opts     Options
	builder  *registry.Builder
	resolver *registry.Resolver
	store    *activation.Store
	logger   *log.Logger
}

// New assembles a Catalog from opts.
func New(opts Options) *Catalog {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if len(opts.KindOrder) == 0 {
		opts.KindOrder = module.DefaultOrder()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	resolver := registry.NewResolver(opts.Fs, opts.Sources)
	store := activation.NewStore(opts.Fs, opts.EnabledRoot, resolver)
	store.Now = opts.Now

	return &Catalog{
		opts: opts,
		builder: &registry.Builder{
			Fs:     opts.Fs,
			Logger: logger,
			Order:  opts.KindOrder,
			Now:    opts.Now,
		},
		resolver: resolver,
		store:    store,
		logger:   logger,
	}
}

// Store exposes the activation store.
func (c *Catalog) Store() *activation.Store { return c.store }

// Order returns the configured kind precedence.
func (c *Catalog) Order() module.Order { return c.opts.KindOrder }

// Rebuild walks every source, persists the new index and returns it. The
// previous index stays in place if the build fails.
func (c *Catalog) Rebuild() (*registry.Index, error) {
	idx, err := c.builder.Build(c.opts.Sources)
	if err != nil {
		return nil, err
	}
	if c.opts.IndexPath != "" {
		if err := registry.SaveIndex(c.opts.Fs, c.opts.IndexPath, idx); err != nil {
			return nil, err
		}
	}
	c.logger.Debug("index rebuilt", "modules", len(idx.Modules), "path", c.opts.IndexPath)
	return idx, nil
}

// Index returns a usable index: the persisted one when it exists, has a
// compatible schema and is within the staleness budget, otherwise a fresh
// build. A fresh build is saved on a best-effort basis; failing to save
// only costs the next invocation a rebuild.
func (c *Catalog) Index() (*registry.Index, error) {
	idx, _, err := c.index()
	return idx, err
}

// index also reports whether the result was built during this call.
func (c *Catalog) index() (*registry.Index, bool, error) {
	if c.opts.IndexPath != "" {
		idx, err := registry.LoadIndex(c.opts.Fs, c.opts.IndexPath)
		switch {
		case err == nil && !idx.Stale(c.opts.MaxAge, c.opts.Now()):
			return idx, false, nil
		case err == nil:
			c.logger.Debug("rebuilding index", "reason", registry.ErrIndexStale, "generated_at", idx.GeneratedAt)
		case errors.Is(err, registry.ErrIndexMissing):
			c.logger.Debug("rebuilding index", "reason", err)
		default:
			c.logger.Warn("discarding persisted index", "err", err)
		}
	}

	idx, err := c.builder.Build(c.opts.Sources)
	if err != nil {
		return nil, false, err
	}
	if c.opts.IndexPath != "" {
		if err := registry.SaveIndex(c.opts.Fs, c.opts.IndexPath, idx); err != nil {
			c.logger.Warn("could not persist index", "err", err)
		}
	}
	return idx, true, nil
}

// List returns the indexed modules, optionally restricted to one kind, in
// kind precedence then name order.
func (c *Catalog) List(kind *module.Kind) ([]module.Module, error) {
	idx, err := c.Index()
	if err != nil {
		return nil, err
	}
	mods := idx.Filter(kind)
	registry.SortModules(mods, c.opts.KindOrder)
	return mods, nil
}

// Search matches query against module names and descriptions.
func (c *Catalog) Search(query string) ([]module.Module, error) {
	idx, err := c.Index()
	if err != nil {
		return nil, err
	}
	return registry.Search(idx.Modules, query, c.opts.KindOrder), nil
}

// Info returns the indexed record of kind/name and whether it is enabled.
// When a persisted index lacks the key, one rebuild is attempted before
// reporting NotFound, since the module may have been added after the index
// was written.
func (c *Catalog) Info(kind module.Kind, name string) (module.Module, bool, error) {
	if !kind.Valid() || !module.ValidName(name) {
		return module.Module{}, false, module.NotFound(kind, name)
	}
	idx, fresh, err := c.index()
	if err != nil {
		return module.Module{}, false, err
	}
	m, ok := idx.Find(kind, name)
	if !ok && !fresh {
		c.logger.Debug("key missing from persisted index, rebuilding", "module", module.Key{Kind: kind, Name: name}.String())
		if idx, err = c.Rebuild(); err != nil {
			return module.Module{}, false, err
		}
		m, ok = idx.Find(kind, name)
	}
	if !ok {
		return module.Module{}, false, module.NotFound(kind, name)
	}
	return m, c.store.IsEnabled(kind, name), nil
}
