package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lem/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lem",
	Short: "Split C-style sources into comments and code",
	Long: `lem scans source text with C-style comments and partitions it into
delimited comments, line comments and code. The segments can be printed,
woven into markdown or used to strip comments.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupCommand,
}

// main registers subcommands and persistent flags and executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	teardownCommand(rootCmd)
	if err != nil {
		return 1
	}
	return 0
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Collect().Version

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(weaveCmd)
	rootCmd.AddCommand(stripCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "print phase timings to stderr")
	rootCmd.PersistentFlags().String("config", "", "path to lem.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for output written to f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return f != nil && isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}
