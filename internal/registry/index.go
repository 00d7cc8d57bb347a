package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/shmod-labs/shmod/internal/platform"
	"github.com/spf13/afero"
)

// schemaConstraint accepts every schema version this build can read.
var schemaConstraint = mustConstraint("^1.0.0")

func mustConstraint(c string) *semver.Constraints {
	sc, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return sc
}

// SaveIndex persists idx at path. The file is replaced atomically, so a
// concurrent LoadIndex observes either the previous or the new snapshot.
func SaveIndex(fs afero.Fs, path string, idx *Index) error {
	if idx.SchemaVersion == "" {
		idx.SchemaVersion = SchemaVersion
	}
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	data = append(data, '\n')
	if err := platform.WriteFileAtomic(fs, path, data, platform.FilePerm); err != nil {
		return fmt.Errorf("saving index: %w", err)
	}
	return nil
}

// LoadIndex reads a persisted index. It returns ErrIndexMissing,
// ErrIndexCorrupt or ErrIndexSchema (wrapped) when the snapshot cannot be
// used as is; callers respond to any of them by rebuilding.
func LoadIndex(fs afero.Fs, path string) (*Index, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrIndexMissing
		}
		return nil, fmt.Errorf("reading index %s: %w", path, err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIndexCorrupt, path, err)
	}
	if err := CheckSchema(idx.SchemaVersion); err != nil {
		return nil, err
	}
	return &idx, nil
}

// CheckSchema reports whether an index written with version v can be read.
func CheckSchema(v string) error {
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q is not a version", ErrIndexSchema, v)
	}
	if !schemaConstraint.Check(ver) {
		return fmt.Errorf("%w: have %s, want %s", ErrIndexSchema, ver, schemaConstraint)
	}
	return nil
}
