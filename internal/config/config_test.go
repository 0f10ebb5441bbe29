package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), `
[scan]
nested = true
extensions = ["kt", ".java"]

[weave]
language = "kotlin"
`)
	nested := filepath.Join(root, "src", "main")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if !cfg.Scan.Nested || cfg.Weave.Language != "kotlin" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if diff := cmp.Diff([]string{".kt", ".java"}, cfg.Scan.Extensions); diff != "" {
		t.Errorf("extensions mismatch (-want +got):\n%s", diff)
	}
	// skip_markers не задан, остаётся значение по умолчанию
	if diff := cmp.Diff([]string{"todo:"}, cfg.Weave.SkipMarkers); diff != "" {
		t.Errorf("skip markers mismatch (-want +got):\n%s", diff)
	}
	if cfg.Path != filepath.Join(root, FileName) {
		t.Errorf("Path = %q", cfg.Path)
	}
}

func TestDiscoverDefaults(t *testing.T) {
	dir := t.TempDir()
	path, ok, err := Find(dir)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		// lem.toml above the temp dir would make this test meaningless
		t.Skipf("found %s above temp dir", path)
	}
	cfg, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[scan]\nnesting = true\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unknown keys: scan.nesting") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[scan\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "failed to parse TOML") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadRejectsEmptyExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[scan]\nextensions = [\"\"]\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty extension")
	}
}

func TestMatchExtension(t *testing.T) {
	exts := Default().Scan.Extensions
	if !MatchExtension("a/b/Main.KT", exts) {
		t.Error("extension match must be case-insensitive")
	}
	if MatchExtension("README.md", exts) {
		t.Error("markdown is not scanned by default")
	}
	if !MatchExtension("README.md", nil) {
		t.Error("empty list matches everything")
	}
}
