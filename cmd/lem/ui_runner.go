package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"lem/internal/driver"
	"lem/internal/source"
	"lem/internal/ui"
)

// progressMode is the --ui setting of directory scans.
type progressMode uint8

const (
	progressAuto progressMode = iota
	progressOn
	progressOff
)

func parseProgressMode(value string) (progressMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return progressAuto, nil
	case "on":
		return progressOn, nil
	case "off":
		return progressOff, nil
	default:
		return progressAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// progressOutput returns the writer the progress view draws on, or nil when
// there should be no view. Results own stdout, so the view only ever takes stderr.
func progressOutput(cmd *cobra.Command, mode progressMode, quiet bool) io.Writer {
	if quiet || mode == progressOff {
		return nil
	}
	out := cmd.ErrOrStderr()
	if mode == progressOn {
		return out
	}
	if f, ok := out.(*os.File); ok && isTerminal(f) {
		return out
	}
	return nil
}

type scanDirOutcome struct {
	fileSet *source.FileSet
	results []driver.ScanDirResult
	err     error
}

// runScanDirWithUI runs driver.ScanDir while a progress view renders its events on out.
func runScanDirWithUI(ctx context.Context, out io.Writer, title, dir string, files []string, opts driver.Options) (*source.FileSet, []driver.ScanDirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan scanDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = driver.ChannelSink{Ch: events}
		fs, results, err := driver.ScanDir(ctx, dir, optsCopy)
		outcomeCh <- scanDirOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out))
	_, uiErr := program.Run()
	// после выхода из UI (в т.ч. по Ctrl+C) дочитываем канал, чтобы ScanDir не завис
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
