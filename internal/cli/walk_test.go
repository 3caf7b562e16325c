package cli

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/nifstream/pkg/cache"
	"github.com/matzehuels/nifstream/pkg/nif"
	"github.com/matzehuels/nifstream/pkg/nif/schema"
	"github.com/matzehuels/nifstream/pkg/version"
)

func TestDefaultWalkConfig(t *testing.T) {
	cfg := defaultWalkConfig()

	want := []string{".nif", ".kf", ".kfa", ".nifcache"}
	if len(cfg.Extensions) != len(want) {
		t.Fatalf("extensions = %v, want %v", cfg.Extensions, want)
	}
	for i, ext := range want {
		if cfg.Extensions[i] != ext {
			t.Errorf("extensions[%d] = %q, want %q", i, cfg.Extensions[i], ext)
		}
	}
	if cfg.Decode || cfg.FailFast {
		t.Error("decode and fail_fast should default to false")
	}
}

func TestLoadWalkConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.toml")
	data := []byte("extensions = [\".nif\"]\ndecode = true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadWalkConfig(path)
	if err != nil {
		t.Fatalf("loadWalkConfig() error = %v", err)
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".nif" {
		t.Errorf("extensions = %v, want [.nif]", cfg.Extensions)
	}
	if !cfg.Decode {
		t.Error("decode should be true")
	}
	if cfg.FailFast {
		t.Error("fail_fast should keep its default")
	}
}

func TestLoadWalkConfigMissingFile(t *testing.T) {
	if _, err := loadWalkConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestWalkerMatches(t *testing.T) {
	w := &walker{cfg: defaultWalkConfig()}

	tests := []struct {
		path string
		want bool
	}{
		{"scene.nif", true},
		{"scene.NIF", true},
		{"anim.kf", true},
		{"readme.txt", false},
		{"scene.nif.bak", false},
	}
	for _, tt := range tests {
		if got := w.matches(tt.path); got != tt.want {
			t.Errorf("matches(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWalkerClassifyFailFast(t *testing.T) {
	w := &walker{cfg: walkConfig{FailFast: true}, versions: map[string]int{}}
	err := w.classify("bad.nif", probeResult{ErrorCode: "MALFORMED_FRAMING"})
	if err == nil {
		t.Fatal("expected an error with fail_fast enabled")
	}

	w = &walker{cfg: walkConfig{}, versions: map[string]int{}}
	if err := w.classify("bad.nif", probeResult{ErrorCode: "MALFORMED_FRAMING"}); err != nil {
		t.Fatalf("classify() error = %v", err)
	}
	if w.corrupt != 1 {
		t.Errorf("corrupt = %d, want 1", w.corrupt)
	}
}

// scanDir drives a walker over a directory the same way the walk command does.
func scanDir(t *testing.T, w *walker, root string) {
	t.Helper()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !w.matches(path) {
			return nil
		}
		return w.visit(context.Background(), path, d)
	})
	if err != nil {
		t.Fatalf("walk error = %v", err)
	}
}

func writeScene(t *testing.T, path string) {
	t.Helper()
	root := schema.NewNiNode()
	root.Name = "Scene Root"
	var buf bytes.Buffer
	if err := nif.Encode(&buf, version.Parse("20.0.0.5"), nil, []nif.Block{root}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkerScanClassifiesFiles(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, filepath.Join(dir, "scene.nif"))
	if err := os.WriteFile(filepath.Join(dir, "junk.nif"), []byte("not a scene graph"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := &walker{cfg: defaultWalkConfig(), store: cache.NewNullCache(), versions: map[string]int{}}
	scanDir(t, w, dir)

	if w.scanned != 2 {
		t.Errorf("scanned = %d, want 2", w.scanned)
	}
	if got := w.versions["20.0.0.5"]; got != 1 {
		t.Errorf("versions[20.0.0.5] = %d, want 1", got)
	}
	if w.notFormat != 1 {
		t.Errorf("notFormat = %d, want 1", w.notFormat)
	}
}

func TestWalkerScanUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, filepath.Join(dir, "scene.nif"))

	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	first := &walker{cfg: defaultWalkConfig(), store: store, versions: map[string]int{}}
	scanDir(t, first, dir)
	if first.cached != 0 {
		t.Errorf("first pass cached = %d, want 0", first.cached)
	}

	second := &walker{cfg: defaultWalkConfig(), store: store, versions: map[string]int{}}
	scanDir(t, second, dir)
	if second.cached != 1 {
		t.Errorf("second pass cached = %d, want 1", second.cached)
	}
	if got := second.versions["20.0.0.5"]; got != 1 {
		t.Errorf("versions[20.0.0.5] = %d, want 1", got)
	}
}

func TestWalkerScanWithDecode(t *testing.T) {
	dir := t.TempDir()
	writeScene(t, filepath.Join(dir, "scene.nif"))

	cfg := defaultWalkConfig()
	cfg.Decode = true
	w := &walker{cfg: cfg, store: cache.NewNullCache(), versions: map[string]int{}}
	scanDir(t, w, dir)

	if got := w.versions["20.0.0.5"]; got != 1 {
		t.Errorf("versions[20.0.0.5] = %d, want 1", got)
	}
	if w.corrupt != 0 {
		t.Errorf("corrupt = %d, want 0", w.corrupt)
	}
}
