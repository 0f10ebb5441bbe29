package driver

import (
	"context"
	"testing"

	"lem/internal/scanner"
	"lem/internal/segment"
	"lem/internal/source"
)

func TestMemoryCacheEvicts(t *testing.T) {
	m, err := NewMemoryCache(2)
	if err != nil {
		t.Fatal(err)
	}
	for i := byte(1); i <= 3; i++ {
		m.Add(Digest{i}, &DiskPayload{Schema: diskCacheSchemaVersion, Size: uint32(i)})
	}
	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
	if _, ok := m.Get(Digest{1}); ok {
		t.Error("oldest entry must be evicted")
	}
	if p, ok := m.Get(Digest{3}); !ok || p.Size != 3 {
		t.Errorf("Get(3) = %+v, %v", p, ok)
	}
	m.Purge()
	if m.Len() != 0 {
		t.Error("Purge must empty the cache")
	}

	var nilCache *MemoryCache
	nilCache.Add(Digest{1}, &DiskPayload{})
	if _, ok := nilCache.Get(Digest{1}); ok || nilCache.Len() != 0 {
		t.Error("nil memory cache must stay empty")
	}
}

func TestScanDirSharesMemoryCache(t *testing.T) {
	dir := t.TempDir()
	// одинаковое содержимое, один ключ
	writeTemp(t, dir, "a.c", "int a; /* same */")
	writeTemp(t, dir, "b.c", "int a; /* same */")

	mem, err := NewMemoryCache(0)
	if err != nil {
		t.Fatal(err)
	}
	_, results, err := ScanDir(context.Background(), dir, Options{Jobs: 1, Memory: mem})
	if err != nil {
		t.Fatal(err)
	}
	if mem.Len() != 1 {
		t.Errorf("memory cache has %d entries, want 1", mem.Len())
	}
	if results[0].Cached || !results[1].Cached {
		t.Errorf("cached flags: %v %v", results[0].Cached, results[1].Cached)
	}
	if results[1].Document.At(0).Span.File != results[1].FileID {
		t.Error("cached document must point at its own file")
	}
}

func TestMemoryCacheInFrontOfDisk(t *testing.T) {
	disk, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.c", []byte("// hi\nx")))
	doc := segment.Parse(file, scanner.Options{})
	key := KeyFor(file, scanner.Options{})
	if err := disk.Put(key, NewDiskPayload(doc)); err != nil {
		t.Fatal(err)
	}

	mem, err := NewMemoryCache(4)
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: disk, Memory: mem}
	got, ok := cacheLookup(context.Background(), opts, file)
	if !ok || got.Len() != doc.Len() {
		t.Fatalf("disk hit expected, got ok=%v", ok)
	}
	if _, ok := mem.Get(key); !ok {
		t.Error("disk hit must populate the memory cache")
	}
}
