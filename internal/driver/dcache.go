package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"lem/internal/scanner"
	"lem/internal/segment"
	"lem/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a cache key: SHA-256 over the content hash and scan options.
type Digest [sha256.Size]byte

// DiskCache хранит сегментированные документы на диске по Digest.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached form of a Document. Segment text is not stored:
// it is sliced back out of the file content on load.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Size of the content the segments were computed for
	Size     uint32
	Segments []CachedSegment
}

// CachedSegment is one segment without its text.
type CachedSegment struct {
	Kind         uint8
	Start        uint32
	End          uint32
	Unterminated bool
}

// OpenDiskCache initializes and returns a disk cache at the standard location
// ($XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// KeyFor derives the cache key of file scanned with opts.
func KeyFor(file *source.File, opts scanner.Options) Digest {
	h := sha256.New()
	var hdr [3]byte
	hdr[0] = byte(diskCacheSchemaVersion >> 8)
	hdr[1] = byte(diskCacheSchemaVersion)
	if opts.Nested {
		hdr[2] = 1
	}
	h.Write(hdr[:])
	h.Write(file.Hash[:])
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки: подкаталог "docs".
	return filepath.Join(c.dir, "docs", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache.
// A missing entry or an entry written with another schema is a miss, not an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", filepath.Base(p), err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// NewDiskPayload converts doc to its cached form.
func NewDiskPayload(doc *segment.Document) *DiskPayload {
	payload := &DiskPayload{
		Schema:   diskCacheSchemaVersion,
		Segments: make([]CachedSegment, 0, doc.Len()),
	}
	for _, seg := range doc.All() {
		payload.Segments = append(payload.Segments, CachedSegment{
			Kind:         uint8(seg.Kind),
			Start:        seg.Span.Start,
			End:          seg.Span.End,
			Unterminated: seg.Unterminated,
		})
		payload.Size = seg.Span.End
	}
	return payload
}

// Document rebuilds the cached segments against file.
// It reports false if the payload does not tile file's content.
func (p *DiskPayload) Document(file *source.File) (*segment.Document, bool) {
	if p.Schema != diskCacheSchemaVersion || p.Size != file.Size() {
		return nil, false
	}
	segments := make([]segment.Segment, 0, len(p.Segments))
	var off uint32
	for _, cs := range p.Segments {
		kind := segment.Kind(cs.Kind)
		if cs.Start != off || cs.End <= cs.Start || cs.End > p.Size {
			return nil, false
		}
		if kind != segment.DelimitedComment && kind != segment.LineComment && kind != segment.Code {
			return nil, false
		}
		span := source.Span{File: file.ID, Start: cs.Start, End: cs.End}
		segments = append(segments, segment.Segment{
			Kind:         kind,
			Span:         span,
			Text:         file.Slice(span),
			Unterminated: cs.Unterminated,
		})
		off = cs.End
	}
	if off != p.Size {
		return nil, false
	}
	return segment.NewDocument(file.ID, segments), true
}
