package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"

	"lem/internal/scanner"
	"lem/internal/segment"
	"lem/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.c", []byte("x = 1; // one\n/* two")))
	doc := segment.Parse(file, scanner.Options{})

	key := KeyFor(file, scanner.Options{})
	if err := cache.Put(key, NewDiskPayload(doc)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var payload DiskPayload
	ok, err := cache.Get(key, &payload)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	got, ok := payload.Document(file)
	if !ok {
		t.Fatal("payload does not match the file")
	}
	if diff := cmp.Diff(doc.Segments(), got.Segments()); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var payload DiskPayload
	ok, err := cache.Get(Digest{1}, &payload)
	if err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	var nilCache *DiskCache
	if ok, err := nilCache.Get(Digest{1}, &payload); ok || err != nil {
		t.Fatal("nil cache must always miss")
	}
	if err := nilCache.Put(Digest{1}, &DiskPayload{}); err != nil {
		t.Fatal(err)
	}
}

func TestDiskCacheSchemaMismatch(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Digest{7}
	old := &DiskPayload{Schema: diskCacheSchemaVersion + 1}
	data, err := msgpack.Marshal(old)
	if err != nil {
		t.Fatal(err)
	}
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatal(err)
	}
	var payload DiskPayload
	if ok, err := cache.Get(key, &payload); ok || err != nil {
		t.Fatalf("schema mismatch must be a miss, got ok=%v err=%v", ok, err)
	}
}

func TestDiskCacheCorruptEntry(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Digest{9}
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}
	var payload DiskPayload
	if _, err := cache.Get(key, &payload); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestKeyForDependsOnOptions(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.c", []byte("/* a /* b */ c */")))
	if KeyFor(file, scanner.Options{}) == KeyFor(file, scanner.Options{Nested: true}) {
		t.Fatal("nested and flat scans must not share a cache entry")
	}
}

func TestPayloadRejectsOtherContent(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.Get(fs.AddVirtual("a.c", []byte("// one")))
	b := fs.Get(fs.AddVirtual("b.c", []byte("// three")))
	payload := NewDiskPayload(segment.Parse(a, scanner.Options{}))
	if _, ok := payload.Document(b); ok {
		t.Fatal("payload for a shorter file must not apply")
	}
}

func TestScanFileUsesCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := writeTemp(t, t.TempDir(), "a.c", "a; /* b */ c;")
	opts := Options{Cache: cache}

	first, err := ScanFile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ScanFile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || !second.Cached {
		t.Fatalf("cached flags: first=%v second=%v", first.Cached, second.Cached)
	}
	if diff := cmp.Diff(first.Document.Segments(), second.Document.Segments()); diff != "" {
		t.Errorf("cached document differs (-want +got):\n%s", diff)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	third, err := ScanFile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Error("DropAll must invalidate entries")
	}
}
