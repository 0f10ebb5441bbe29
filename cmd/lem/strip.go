package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lem/internal/segment"
	"lem/internal/strip"
)

var stripCmd = &cobra.Command{
	Use:   "strip [flags] <file|->",
	Short: "Print a source file with all comments removed",
	Args:  cobra.ExactArgs(1),
	RunE:  runStrip,
}

func init() {
	stripCmd.Flags().Bool("keep-lines", false, "keep line breaks of removed block comments (default from lem.toml)")
	stripCmd.Flags().Bool("nested", false, "let /* open nested block comments")
}

func runStrip(cmd *cobra.Command, args []string) error {
	keepLines := settings().cfg.Strip.KeepLines
	if cmd.Flags().Changed("keep-lines") {
		v, err := cmd.Flags().GetBool("keep-lines")
		if err != nil {
			return fmt.Errorf("failed to get keep-lines flag: %w", err)
		}
		keepLines = v
	}

	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	res, err := scanInput(cmd.Context(), cmd, args[0], opts)
	if err != nil {
		return fmt.Errorf("strip failed: %w", err)
	}

	stripper := strip.New(strip.Options{KeepLines: keepLines})
	return measureRender(func() error {
		segment.Walk(res.Document, stripper)
		if _, err := io.WriteString(cmd.OutOrStdout(), stripper.String()); err != nil {
			return err
		}
		if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet && stripper.Removed() > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "removed %d comments\n", stripper.Removed())
		}
		return nil
	})
}
