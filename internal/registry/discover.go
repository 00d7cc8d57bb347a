package registry

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shmod-labs/shmod/internal/metadata"
	"github.com/shmod-labs/shmod/internal/module"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Builder scans source directories into an Index. It never writes to the
// filesystem.
type Builder struct {
	Fs     afero.Fs
	Logger *log.Logger
	Order  module.Order
	Now    func() time.Time
}

// NewBuilder returns a Builder over fs. A nil logger discards output.
func NewBuilder(fs afero.Fs, logger *log.Logger) *Builder {
	return &Builder{Fs: fs, Logger: logger}
}

// Build walks every source and returns the resulting snapshot. When two
// files produce the same (kind, name), the one with higher priority (later
// source, later directory) wins and the shadowed file is logged.
// Unreadable directories are recorded in Index.Warnings; Build fails only
// when not a single configured directory could be read.
func (b *Builder) Build(sources []Source) (*Index, error) {
	logger := b.logger()
	readable := 0
	var warnings []DirectoryError
	byKey := make(map[module.Key]module.Module)

	for _, kind := range module.AllKinds() {
		res := walkKind(b.Fs, sources, kind)
		readable += res.readable
		for _, w := range res.warnings {
			logger.Warn("skipping unreadable directory", "kind", w.Kind, "dir", w.Dir, "err", w.Err)
		}
		warnings = append(warnings, res.warnings...)

		for _, c := range res.found {
			key := module.Key{Kind: kind, Name: c.name}
			if prev, ok := byKey[key]; ok {
				logger.Warn("module shadowed", "module", key.String(), "shadowed", prev.SourcePath, "by", c.path)
			}
			byKey[key] = module.Module{
				Kind:       kind,
				Name:       c.name,
				SourcePath: c.path,
				Source:     c.source,
			}
		}
	}

	if readable == 0 {
		return nil, fmt.Errorf("building index: %w", ErrNoReadableSources)
	}

	mods := make([]module.Module, 0, len(byKey))
	for _, m := range byKey {
		mods = append(mods, m)
	}
	SortModules(mods, b.Order)
	b.extractAll(mods)

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return &Index{
		SchemaVersion: SchemaVersion,
		GeneratedAt:   now().UTC(),
		Modules:       mods,
		Warnings:      warnings,
	}, nil
}

// extractAll fills in header metadata for every module. Only the winning
// file of each key is read. Extraction is total, so the group never fails.
func (b *Builder) extractAll(mods []module.Module) {
	logger := b.logger()
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range mods {
		g.Go(func() error {
			md := metadata.Extract(b.Fs, mods[i].SourcePath, mods[i].Kind)
			if md.Degraded {
				logger.Debug("metadata degraded", "path", mods[i].SourcePath, "reason", md.Reason)
			}
			mods[i] = mods[i].WithMetadata(md)
			return nil
		})
	}
	_ = g.Wait()
}

// BuildDirs builds from a plain kind → directories map, treated as a single
// source named "default".
func (b *Builder) BuildDirs(dirs map[module.Kind][]string) (*Index, error) {
	return b.Build([]Source{{Name: "default", Dirs: dirs}})
}

func (b *Builder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.New(io.Discard)
}

// SortModules orders modules by kind precedence, then name.
func SortModules(mods []module.Module, order module.Order) {
	if len(order) == 0 {
		order = module.DefaultOrder()
	}
	sort.SliceStable(mods, func(i, j int) bool {
		return order.Less(mods[i].Key(), mods[j].Key())
	})
}
