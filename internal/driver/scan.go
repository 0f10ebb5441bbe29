package driver

import (
	"context"
	"io"
	"strconv"

	"lem/internal/observ"
	"lem/internal/scanner"
	"lem/internal/segment"
	"lem/internal/source"
	"lem/internal/trace"
)

// ScanResult holds the segmented document of one file.
type ScanResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Document *segment.Document
	// Cached is true when the document came from the disk cache.
	Cached bool
}

// ScanFile loads path, scans and segments it.
func ScanFile(ctx context.Context, path string, opts Options) (*ScanResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadTimed(opts.Timer, func() (source.FileID, error) { return fs.Load(path) })
	if err != nil {
		return nil, err
	}
	return scanLoaded(ctx, fs, fileID, opts), nil
}

// ScanReader is ScanFile over an already open stream such as stdin.
func ScanReader(ctx context.Context, name string, r io.Reader, opts Options) (*ScanResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadTimed(opts.Timer, func() (source.FileID, error) { return fs.LoadReader(name, r) })
	if err != nil {
		return nil, err
	}
	return scanLoaded(ctx, fs, fileID, opts), nil
}

// scanLoaded segments an already loaded file, consulting the cache first.
func scanLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) *ScanResult {
	file := fs.Get(fileID)
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "segment", trace.CurrentSpan(ctx))

	res := &ScanResult{FileSet: fs, File: file}
	if doc, ok := cacheLookup(ctx, opts, file); ok {
		res.Document = doc
		res.Cached = true
		span.WithExtra("cached", "true").End(file.Path)
		return res
	}

	phase := beginPhase(opts.Timer, "scan+segment")
	res.Document = segment.Parse(file, scanOptions(ctx, opts))
	endPhase(opts.Timer, phase, itoa(res.Document.Len())+" segments")

	cacheStore(ctx, opts, file, res.Document)
	span.WithExtra("segments", itoa(res.Document.Len())).
		WithExtra("comments", itoa(res.Document.Len()-res.Document.Count(segment.Code))).
		End(file.Path)
	return res
}

// cacheLookup checks the memory cache, then the disk cache.
func cacheLookup(ctx context.Context, opts Options, file *source.File) (*segment.Document, bool) {
	if opts.Cache == nil && opts.Memory == nil {
		return nil, false
	}
	key := KeyFor(file, opts.Scan)
	if payload, ok := opts.Memory.Get(key); ok {
		if doc, ok := payload.Document(file); ok {
			return doc, true
		}
	}
	if opts.Cache == nil {
		return nil, false
	}
	var payload DiskPayload
	ok, err := opts.Cache.Get(key, &payload)
	if err != nil {
		// битый кэш трактуем как промах
		trace.Point(trace.FromContext(ctx), trace.ScopeFailure, "cache-read", err.Error(), trace.CurrentSpan(ctx))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	doc, ok := payload.Document(file)
	if !ok {
		trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache-stale", file.Path, trace.CurrentSpan(ctx))
		return nil, false
	}
	opts.Memory.Add(key, &payload)
	return doc, true
}

func cacheStore(ctx context.Context, opts Options, file *source.File, doc *segment.Document) {
	if opts.Cache == nil && opts.Memory == nil {
		return
	}
	key := KeyFor(file, opts.Scan)
	payload := NewDiskPayload(doc)
	opts.Memory.Add(key, payload)
	if err := opts.Cache.Put(key, payload); err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeFailure, "cache-write", err.Error(), trace.CurrentSpan(ctx))
	}
}

func scanOptions(ctx context.Context, opts Options) scanner.Options {
	sopts := opts.Scan
	if sopts.Tracer == nil {
		sopts.Tracer = trace.FromContext(ctx)
	}
	return sopts
}

func loadTimed(timer *observ.Timer, load func() (source.FileID, error)) (source.FileID, error) {
	phase := beginPhase(timer, "load")
	id, err := load()
	note := ""
	if err != nil {
		note = "failed"
	}
	endPhase(timer, phase, note)
	return id, err
}

func beginPhase(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func endPhase(t *observ.Timer, idx int, note string) {
	if t == nil {
		return
	}
	t.End(idx, note)
}

func itoa(n int) string { return strconv.Itoa(n) }
