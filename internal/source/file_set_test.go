package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.c", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("test.c", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	if fs.Len() != 2 || fs.Get(id2).Path != "test.c" {
		t.Fatalf("same path must add a new version, got %d files", fs.Len())
	}

	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("first file content = %q", got)
	}
	if got := string(fs.Get(id2).Content); got != "hello universe" {
		t.Errorf("second file content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
}

func TestLoadKeepsLineTerminators(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.c")
	raw := "int a;\r\n// c\r\n\rx"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != raw {
		t.Fatalf("content changed on load: %q", f.Content)
	}
	if f.Flags != 0 {
		t.Fatalf("unexpected flags %b", f.Flags)
	}
}

func TestLoadStripsUTF8BOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.c")
	if err := os.WriteFile(path, append([]byte{0xEF, 0xBB, 0xBF}, "x//y"...), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "x//y" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Fatalf("FileHadBOM not set")
	}
}

func TestLoadDecodesUTF16(t *testing.T) {
	// "a/*b*/" в UTF-16LE с BOM
	raw := []byte{0xFF, 0xFE}
	for _, r := range "a/*b*/" {
		raw = append(raw, byte(r), 0)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "utf16.c")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a/*b*/" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileDecodedUTF16 == 0 {
		t.Fatalf("FileDecodedUTF16 not set")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	_, err := fs.Load(filepath.Join(t.TempDir(), "missing.c"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestLoadReader(t *testing.T) {
	fs := NewFileSet()
	id, err := fs.LoadReader("<stdin>", strings.NewReader("/* c */x"))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "/* c */x" || f.Flags&FileVirtual == 0 {
		t.Fatalf("unexpected file %+v", f)
	}

	if _, err := fs.LoadReader("<stdin>", failingReader{}); err == nil || !strings.Contains(err.Error(), "incomplete input") {
		t.Fatalf("expected incomplete input error, got %v", err)
	}
	if fs.Len() != 1 {
		t.Fatalf("failed read must not add a file")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.c", []byte("ab\ncd\r\nef\rgh"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // '\n'
		{3, LineCol{2, 1}},
		{5, LineCol{2, 3}}, // '\r' of CRLF
		{6, LineCol{2, 4}}, // '\n' of CRLF
		{7, LineCol{3, 1}},
		{9, LineCol{3, 3}}, // lone '\r'
		{10, LineCol{4, 1}},
		{12, LineCol{4, 3}}, // EOF
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestSliceSharesFileText(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("s.c", []byte("int x; /* c */")))
	sp := Span{File: f.ID, Start: 7, End: 14}
	if got := f.Slice(sp); got != "/* c */" {
		t.Fatalf("Slice = %q", got)
	}
	if allocs := testing.AllocsPerRun(50, func() { _ = f.Slice(sp) }); allocs != 0 {
		t.Errorf("Slice allocated %.0f times", allocs)
	}
}
