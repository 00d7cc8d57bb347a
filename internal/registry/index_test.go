package registry

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shmod-labs/shmod/internal/module"
	"github.com/spf13/afero"
)

func sampleIndex(n int) *Index {
	idx := &Index{SchemaVersion: SchemaVersion, GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	for i := 0; i < n; i++ {
		idx.Modules = append(idx.Modules, module.Module{
			Kind:       module.ShortcutSet,
			Name:       string(rune('a'+i%26)) + string(rune('a'+i/26)),
			SourcePath: "/root/aliases/x.aliases.bash",
			Source:     "builtin",
		})
	}
	return idx
}

func TestSaveLoadIndex(t *testing.T) {
	fs := afero.NewMemMapFs()
	idx := sampleIndex(3)
	idx.Modules[0].Dependencies = []string{"base"}

	if err := SaveIndex(fs, "/state/index.json", idx); err != nil {
		t.Fatalf("SaveIndex: %v", err)
	}
	loaded, err := LoadIndex(fs, "/state/index.json")
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if diff := cmp.Diff(idx.Modules, loaded.Modules); diff != "" {
		t.Errorf("modules mismatch (-saved +loaded):\n%s", diff)
	}
	if !loaded.GeneratedAt.Equal(idx.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", loaded.GeneratedAt, idx.GeneratedAt)
	}
}

func TestLoadIndexErrors(t *testing.T) {
	fs := afero.NewMemMapFs()

	if _, err := LoadIndex(fs, "/state/index.json"); !errors.Is(err, ErrIndexMissing) {
		t.Errorf("missing: err = %v, want ErrIndexMissing", err)
	}

	afero.WriteFile(fs, "/state/index.json", []byte("{not json"), 0o644)
	if _, err := LoadIndex(fs, "/state/index.json"); !errors.Is(err, ErrIndexCorrupt) {
		t.Errorf("corrupt: err = %v, want ErrIndexCorrupt", err)
	}

	afero.WriteFile(fs, "/state/index.json", []byte(`{"schema_version":"2.0.0","modules":[]}`), 0o644)
	if _, err := LoadIndex(fs, "/state/index.json"); !errors.Is(err, ErrIndexSchema) {
		t.Errorf("future schema: err = %v, want ErrIndexSchema", err)
	}

	afero.WriteFile(fs, "/state/index.json", []byte(`{"modules":[]}`), 0o644)
	if _, err := LoadIndex(fs, "/state/index.json"); !errors.Is(err, ErrIndexSchema) {
		t.Errorf("no schema: err = %v, want ErrIndexSchema", err)
	}
}

func TestCheckSchema(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"1.0.0", true},
		{"1.4.2", true},
		{"0.9.0", false},
		{"2.0.0", false},
		{"", false},
		{"banana", false},
	}
	for _, tt := range tests {
		err := CheckSchema(tt.version)
		if (err == nil) != tt.ok {
			t.Errorf("CheckSchema(%q) = %v, want ok=%v", tt.version, err, tt.ok)
		}
	}
}

func TestIndexStale(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	idx := &Index{GeneratedAt: now.Add(-2 * time.Hour)}

	if !idx.Stale(time.Hour, now) {
		t.Error("expected stale with a 1h budget")
	}
	if idx.Stale(3*time.Hour, now) {
		t.Error("expected fresh with a 3h budget")
	}
	if idx.Stale(0, now) {
		t.Error("a zero budget never expires")
	}
}

// Readers racing a rebuild must see one complete snapshot or the other.
func TestIndexAtomicVisibility(t *testing.T) {
	fs := afero.NewOsFs()
	path := filepath.Join(t.TempDir(), "index.json")
	small, large := sampleIndex(5), sampleIndex(400)
	if err := SaveIndex(fs, path, small); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			next := large
			if i%2 == 1 {
				next = small
			}
			if err := SaveIndex(fs, path, next); err != nil {
				t.Errorf("SaveIndex: %v", err)
				return
			}
		}
		close(stop)
	}()

	for {
		select {
		case <-stop:
			wg.Wait()
			return
		default:
		}
		idx, err := LoadIndex(fs, path)
		if err != nil {
			t.Fatalf("LoadIndex during rebuild: %v", err)
		}
		if n := len(idx.Modules); n != len(small.Modules) && n != len(large.Modules) {
			t.Fatalf("observed partial snapshot with %d modules", n)
		}
	}
}

func TestFilter(t *testing.T) {
	idx := &Index{Modules: []module.Module{
		{Kind: module.BehaviorExtension, Name: "a"},
		{Kind: module.ShortcutSet, Name: "b"},
	}}
	k := module.ShortcutSet
	if got := idx.Filter(&k); len(got) != 1 || got[0].Name != "b" {
		t.Errorf("Filter(shortcut-set) = %v", got)
	}
	if got := idx.Filter(nil); len(got) != 2 {
		t.Errorf("Filter(nil) returned %d modules, want 2", len(got))
	}
}
