package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lem/internal/driver"
	"lem/internal/weave"
)

var weaveCmd = &cobra.Command{
	Use:   "weave [flags] <file|->",
	Short: "Turn comments into markdown prose and code into fenced blocks",
	Args:  cobra.ExactArgs(1),
	RunE:  runWeave,
}

func init() {
	weaveCmd.Flags().String("lang", "", "info string for code fences (default: lem.toml, then file extension)")
	weaveCmd.Flags().StringArray("skip", nil, "skip comments containing this marker (repeatable, replaces the defaults)")
	weaveCmd.Flags().Bool("nested", false, "let /* open nested block comments")
	weaveCmd.Flags().String("format", "markdown", "output format (markdown|html)")
	weaveCmd.Flags().StringP("out", "o", "", "write to this file instead of stdout")
}

func runWeave(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "markdown" && format != "html" {
		return fmt.Errorf("unknown format: %s (expected markdown|html)", format)
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}

	s := settings()
	wopts := weave.Options{
		Language:    s.cfg.Weave.Language,
		SkipMarkers: s.cfg.Weave.SkipMarkers,
	}
	if cmd.Flags().Changed("lang") {
		lang, err := cmd.Flags().GetString("lang")
		if err != nil {
			return fmt.Errorf("failed to get lang flag: %w", err)
		}
		wopts.Language = lang
	}
	if cmd.Flags().Changed("skip") {
		skip, err := cmd.Flags().GetStringArray("skip")
		if err != nil {
			return fmt.Errorf("failed to get skip flag: %w", err)
		}
		wopts.SkipMarkers = skip
	}

	if wopts.Language == "" && !cmd.Flags().Changed("lang") && args[0] != "-" {
		wopts.Language = weave.LanguageForPath(args[0])
	}

	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	res, err := scanInput(cmd.Context(), cmd, args[0], opts)
	if err != nil {
		return fmt.Errorf("weave failed: %w", err)
	}
	return measureRender(func() error {
		return writeWoven(cmd.OutOrStdout(), outPath, format, res, wopts)
	})
}

// writeWoven renders to stdout, or replaces outPath when it is set.
func writeWoven(stdout io.Writer, outPath, format string, res *driver.ScanResult, wopts weave.Options) (err error) {
	w := stdout
	if outPath != "" {
		// #nosec G304 -- path is provided by the user
		f, createErr := os.Create(outPath)
		if createErr != nil {
			return fmt.Errorf("weave output: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		w = f
	}
	if format == "html" {
		return weave.HTML(w, res.Document, wopts)
	}
	_, err = io.WriteString(w, weave.Markdown(res.Document, wopts))
	return err
}
