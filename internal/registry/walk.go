package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shmod-labs/shmod/internal/module"
	"github.com/shmod-labs/shmod/internal/platform"
	"github.com/spf13/afero"
)

// candidate is a module file found by a walk, before metadata extraction.
type candidate struct {
	name   string
	path   string
	source string
}

// walkResult holds the files found for one kind, in ascending priority.
type walkResult struct {
	found    []candidate
	readable int
	warnings []DirectoryError
}

// walkKind enumerates every file of the given kind across all sources, in
// ascending priority order: sources in order, directories in order, and
// lexical order inside each directory. Missing directories are skipped
// silently; directories that exist but cannot be read become warnings.
func walkKind(fs afero.Fs, sources []Source, kind module.Kind) walkResult {
	var res walkResult
	for _, src := range sources {
		for _, dir := range src.Dirs[kind] {
			info, err := fs.Stat(dir)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				res.warnings = append(res.warnings, DirectoryError{Kind: kind, Dir: dir, Err: err})
				continue
			}
			if !info.IsDir() {
				res.warnings = append(res.warnings, DirectoryError{Kind: kind, Dir: dir, Err: fmt.Errorf("not a directory")})
				continue
			}
			if _, err := afero.ReadDir(fs, dir); err != nil {
				res.warnings = append(res.warnings, DirectoryError{Kind: kind, Dir: dir, Err: err})
				continue
			}
			res.readable++

			// Walk lstats its root; the trailing separator makes a symlinked
			// source directory resolve while paths stay under dir.
			root := dir
			if !strings.HasSuffix(root, string(filepath.Separator)) {
				root += string(filepath.Separator)
			}
			_ = afero.Walk(fs, root, func(path string, fi os.FileInfo, err error) error {
				if err != nil {
					// Unreadable subdirectory: note it and keep walking.
					if path != root {
						res.warnings = append(res.warnings, DirectoryError{Kind: kind, Dir: path, Err: err})
					}
					return nil
				}
				if fi.IsDir() {
					return nil
				}
				base := filepath.Base(path)
				if platform.IsTemp(base) {
					return nil
				}
				name, ok := kind.NameFromFile(base)
				if !ok {
					return nil
				}
				res.found = append(res.found, candidate{name: name, path: absPath(path), source: src.Name})
				return nil
			})
		}
	}
	return res
}

func absPath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
