package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lem/internal/driver"
	"lem/internal/segfmt"
	"lem/internal/source"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] <file|dir|->",
	Short: "Split a source file (or every file in a directory) into segments",
	Long: `Scan partitions source text into delimited comments, line comments and code.
A directory is scanned recursively and in parallel; "-" reads stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	scanCmd.Flags().Bool("nested", false, "let /* open nested block comments")
	scanCmd.Flags().StringSlice("ext", nil, "file extensions to scan in directories (default from lem.toml)")
	scanCmd.Flags().String("ui", "auto", "progress UI for directory scans (auto|on|off)")
	scanCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	scanCmd.Flags().Bool("cache", false, "reuse segmented documents from the disk cache")
	scanCmd.Flags().Int("width", 60, "truncate pretty text to this many cells (0=no limit)")
	scanCmd.Flags().String("path-mode", "relative", "file headers of directory scans (relative|absolute|basename)")
}

// errFilesFailed is returned when a directory scan could not read some files.
var errFilesFailed = errors.New("some files could not be scanned")

func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := segfmt.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}
	colorOut, err := useColor(cmd, stdoutFile(cmd))
	if err != nil {
		return err
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := segfmt.ParsePathMode(pathModeStr)
	if err != nil {
		return err
	}
	pretty := segfmt.PrettyOpts{Color: colorOut, Width: width, PathMode: pathMode}

	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	if err := applyCacheFlag(cmd, &opts); err != nil {
		return err
	}

	if isDir(path) {
		return runScanDir(cmd, path, format, pretty, opts)
	}

	res, err := scanInput(cmd.Context(), cmd, path, opts)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return measureRender(func() error {
		return segfmt.WriteSegments(cmd.OutOrStdout(), format, res.Document, res.FileSet, pretty)
	})
}

func runScanDir(cmd *cobra.Command, dir string, format segfmt.Format, pretty segfmt.PrettyOpts, opts driver.Options) error {
	exts, err := cmd.Flags().GetStringSlice("ext")
	if err != nil {
		return fmt.Errorf("failed to get ext flag: %w", err)
	}
	if len(exts) > 0 {
		opts.Extensions = normalizeExts(exts)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	opts.Jobs = jobs
	// файлы с одинаковым содержимым сегментируются один раз
	if opts.Memory, err = driver.NewMemoryCache(0); err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := parseProgressMode(uiValue)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	ctx := cmd.Context()
	var (
		fileSet *source.FileSet
		results []driver.ScanDirResult
	)
	if out := progressOutput(cmd, mode, quiet); out != nil {
		files, err := driver.ListFiles(dir, opts.Extensions)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		fileSet, results, err = runScanDirWithUI(ctx, out, "scanning "+dir, dir, files, opts)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
	} else {
		fileSet, results, err = driver.ScanDir(ctx, dir, opts)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
	}

	files := make([]segfmt.FileDocument, 0, len(results))
	for _, r := range results {
		files = append(files, segfmt.FileDocument{Path: r.Path, Doc: r.Document, Err: r.Err})
	}
	if err := measureRender(func() error {
		return segfmt.WriteFiles(cmd.OutOrStdout(), format, files, fileSet, pretty)
	}); err != nil {
		return err
	}

	if failed := driver.Failed(results); failed > 0 {
		return fmt.Errorf("%w: %d of %d", errFilesFailed, failed, len(results))
	}
	if !quiet && len(results) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "no matching files in %s\n", dir)
	}
	return nil
}

func applyCacheFlag(cmd *cobra.Command, opts *driver.Options) error {
	s := settings()
	enabled := s.cfg.Cache.Enabled
	if f := cmd.Flags().Lookup("cache"); f != nil && f.Changed {
		v, err := cmd.Flags().GetBool("cache")
		if err != nil {
			return fmt.Errorf("failed to get cache flag: %w", err)
		}
		enabled = v
	}
	if !enabled {
		return nil
	}
	var (
		cache *driver.DiskCache
		err   error
	)
	if s.cfg.Cache.Dir != "" {
		cache, err = driver.OpenDiskCacheAt(s.cfg.Cache.Dir)
	} else {
		cache, err = driver.OpenDiskCache("lem")
	}
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	opts.Cache = cache
	return nil
}

func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func measureRender(render func() error) error {
	s := settings()
	if s.timer == nil {
		return render()
	}
	idx := s.timer.Begin("render")
	err := render()
	s.timer.End(idx, "")
	return err
}
