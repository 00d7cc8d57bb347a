package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// TempPrefix starts the name of every temporary file WriteFileAtomic
// creates. Directory scanners skip names with this prefix.
const TempPrefix = ".tmp-"

// WriteFileAtomic replaces path with data. The content goes to a temporary
// file in the same directory first and is then renamed over path, so a
// concurrent reader sees either the previous file or the complete new one.
// A crash mid-write leaves at most a stray temporary file.
func WriteFileAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, TempPrefix+filepath.Base(path)+"-")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = fs.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := Chmod(fs, tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// IsTemp reports whether a basename belongs to an in-flight or abandoned
// WriteFileAtomic temporary file.
func IsTemp(base string) bool {
	return strings.HasPrefix(base, TempPrefix)
}
