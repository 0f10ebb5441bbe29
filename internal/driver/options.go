package driver

import (
	"lem/internal/observ"
	"lem/internal/scanner"
)

// Options configure file and directory scans.
type Options struct {
	// Scan is passed to the scanner. A nil Tracer is taken from the context.
	Scan scanner.Options
	// Extensions select files in directory scans; empty means every regular file.
	Extensions []string
	// Jobs limits parallel workers in ScanDir; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache stores and reuses documents across runs; nil disables it.
	Cache *DiskCache
	// Memory keeps documents within the process, checked before Cache; nil disables it.
	Memory *MemoryCache
	// Sink receives progress events; may be nil.
	Sink ProgressSink
	// Timer records load/scan/segment phases of single-file scans; may be nil.
	Timer *observ.Timer
}
