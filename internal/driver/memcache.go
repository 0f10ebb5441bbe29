package driver

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryCacheSize is the number of documents kept by NewMemoryCache(0).
const DefaultMemoryCacheSize = 1024

// MemoryCache keeps recently segmented documents in process, in front of the
// optional DiskCache. Safe for concurrent use.
type MemoryCache struct {
	entries *lru.Cache[Digest, *DiskPayload]
}

// NewMemoryCache creates a cache holding up to size payloads; size <= 0 means the default.
func NewMemoryCache(size int) (*MemoryCache, error) {
	if size <= 0 {
		size = DefaultMemoryCacheSize
	}
	entries, err := lru.New[Digest, *DiskPayload](size)
	if err != nil {
		return nil, fmt.Errorf("create memory cache: %w", err)
	}
	return &MemoryCache{entries: entries}, nil
}

// Get returns the payload stored under key.
func (m *MemoryCache) Get(key Digest) (*DiskPayload, bool) {
	if m == nil {
		return nil, false
	}
	return m.entries.Get(key)
}

// Add stores payload under key, evicting the least recently used entry when full.
func (m *MemoryCache) Add(key Digest, payload *DiskPayload) {
	if m == nil || payload == nil {
		return
	}
	m.entries.Add(key, payload)
}

// Len returns the number of cached payloads.
func (m *MemoryCache) Len() int {
	if m == nil {
		return 0
	}
	return m.entries.Len()
}

// Purge drops every entry.
func (m *MemoryCache) Purge() {
	if m != nil {
		m.entries.Purge()
	}
}
