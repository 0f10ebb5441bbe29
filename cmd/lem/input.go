package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lem/internal/driver"
	"lem/internal/scanner"
)

const stdinName = "<stdin>"

// driverOptions builds driver options from the session config and command flags.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	s := settings()
	opts := driver.Options{
		Scan:       scanner.Options{Nested: s.cfg.Scan.Nested},
		Extensions: s.cfg.Scan.Extensions,
		Timer:      s.timer,
	}
	if f := cmd.Flags().Lookup("nested"); f != nil && f.Changed {
		nested, err := cmd.Flags().GetBool("nested")
		if err != nil {
			return opts, fmt.Errorf("failed to get nested flag: %w", err)
		}
		opts.Scan.Nested = nested
	}
	return opts, nil
}

// scanInput scans a file path or stdin ("-").
func scanInput(ctx context.Context, cmd *cobra.Command, path string, opts driver.Options) (*driver.ScanResult, error) {
	if path == "-" {
		return driver.ScanReader(ctx, stdinName, cmd.InOrStdin(), opts)
	}
	return driver.ScanFile(ctx, path, opts)
}

// tokenizeInput tokenizes a file path or stdin ("-").
func tokenizeInput(ctx context.Context, cmd *cobra.Command, path string, opts driver.Options) (*driver.TokenizeResult, error) {
	if path == "-" {
		return driver.TokenizeReader(ctx, stdinName, cmd.InOrStdin(), opts)
	}
	return driver.Tokenize(ctx, path, opts)
}

func isDir(path string) bool {
	if path == "-" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// stdoutFile returns cmd's stdout as *os.File when it is one, for tty detection.
func stdoutFile(cmd *cobra.Command) *os.File {
	f, _ := cmd.OutOrStdout().(*os.File)
	return f
}
