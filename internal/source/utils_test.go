package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatalf("failed to create other dir: %v", err)
	}

	target := filepath.Join(otherDir, "file.c")
	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "nested", "file.c")

	got, err := RelativePath(target, tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(filepath.Join("nested", "file.c")); got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestBuildLineIndex(t *testing.T) {
	got := buildLineIndex([]byte("a\r\nb\rc\n"))
	want := []uint32{2, 4, 6}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFormatPath(t *testing.T) {
	fs := NewFileSetWithBase("/proj")
	f := fs.Get(fs.Add("/proj/src/a.c", []byte("x"), 0))
	tests := []struct {
		mode string
		want string
	}{
		{"relative", "src/a.c"},
		{"absolute", "/proj/src/a.c"},
		{"basename", "a.c"},
		{"", "/proj/src/a.c"},
	}
	for _, tt := range tests {
		if got := f.FormatPath(tt.mode, fs.BaseDir()); got != tt.want {
			t.Errorf("FormatPath(%q) = %q, want %q", tt.mode, got, tt.want)
		}
	}
	if got := FormatPath("/elsewhere/b.c", "relative", fs.BaseDir()); got != "/elsewhere/b.c" {
		t.Errorf("outside base: got %q", got)
	}
}
