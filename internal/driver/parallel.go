package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lem/internal/config"
	"lem/internal/segment"
	"lem/internal/source"
	"lem/internal/trace"
)

// ScanDirResult содержит результат сканирования одного файла
type ScanDirResult struct {
	Path     string            // Путь к файлу
	FileID   source.FileID     // ID файла в FileSet (0 при ошибке загрузки)
	Document *segment.Document // nil при ошибке
	Cached   bool
	Err      error // ошибка загрузки; остальные файлы не затрагивает
}

// ListFiles returns a sorted list of regular files under dir whose extension is in exts.
// Empty exts selects every file. Hidden directories are skipped.
func ListFiles(dir string, exts []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && config.MatchExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ScanDir сканирует все подходящие файлы в директории параллельно.
// Results are in ListFiles order. A file that fails to load gets its Err set;
// the returned error is only for listing failures and cancellation.
func ScanDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ScanDirResult, error) {
	files, err := ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	dirSpan := trace.Begin(tracer, trace.ScopeDriver, "scan-dir", trace.CurrentSpan(ctx))
	defer dirSpan.WithExtra("files", itoa(len(files))).End(dir)
	ctx = trace.WithSpan(ctx, dirSpan)

	for _, path := range files {
		emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен, поэтому все файлы загружаются заранее
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]ScanDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			started := time.Now()
			if loadErr, hadError := loadErrors[path]; hadError {
				results[i] = ScanDirResult{Path: path, Err: loadErr}
				trace.Point(tracer, trace.ScopeFailure, "load", loadErr.Error(), dirSpan.ID())
				emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			emit(opts.Sink, Event{File: path, Stage: StageScan, Status: StatusWorking})
			fileSpan := trace.Begin(tracer, trace.ScopeFile, "scan-file", dirSpan.ID())
			fileID := fileIDs[path]
			fileOpts := opts
			fileOpts.Timer = nil // observ.Timer не потокобезопасен
			res := scanLoaded(trace.WithSpan(gctx, fileSpan), fileSet, fileID, fileOpts)
			fileSpan.End(path)

			results[i] = ScanDirResult{
				Path:     path,
				FileID:   fileID,
				Document: res.Document,
				Cached:   res.Cached,
			}
			emit(opts.Sink, Event{
				File:    path,
				Stage:   StageSegment,
				Status:  StatusDone,
				Elapsed: time.Since(started),
				Cached:  res.Cached,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// Failed reports how many results carry a load error.
func Failed(results []ScanDirResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
