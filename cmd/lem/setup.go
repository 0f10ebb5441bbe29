package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lem/internal/config"
	"lem/internal/observ"
	"lem/internal/prof"
)

// session is the per-invocation state prepared by setupCommand.
type session struct {
	cfg     config.Config
	timer   *observ.Timer
	tracing func()
	prof    *prof.Session
}

var current *session

// setupCommand runs before every subcommand: it loads lem.toml and starts
// tracing and profiling.
func setupCommand(cmd *cobra.Command, _ []string) error {
	root := cmd.Root()
	s := &session{tracing: func() {}}
	current = s

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s.cfg = cfg

	if timings, _ := root.PersistentFlags().GetBool("timings"); timings {
		s.timer = observ.NewTimer()
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	s.tracing = cleanup

	pcfg := prof.Config{}
	pcfg.CPU, _ = root.PersistentFlags().GetString("cpu-profile")
	pcfg.Mem, _ = root.PersistentFlags().GetString("mem-profile")
	pcfg.RuntimeTrace, _ = root.PersistentFlags().GetString("runtime-trace")
	ps, err := prof.Start(pcfg)
	if err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	s.prof = ps
	return nil
}

// teardownCommand flushes everything setupCommand started. Safe to call when setup failed.
func teardownCommand(cmd *cobra.Command) {
	s := current
	current = nil
	if s == nil {
		return
	}
	if s.timer != nil && len(s.timer.Report().Phases) > 0 {
		s.timer.WriteSummary(cmd.ErrOrStderr())
	}
	s.tracing()
	if err := s.prof.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Discover(".")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load %s: %w", config.FileName, err)
	}
	return cfg, nil
}

// settings returns the session prepared for cmd, or defaults when setup did not run (tests).
func settings() *session {
	if current == nil {
		current = &session{cfg: config.Default(), tracing: func() {}}
	}
	return current
}
