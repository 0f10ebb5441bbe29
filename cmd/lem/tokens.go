package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lem/internal/segfmt"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] <file|->",
	Short: "Print the raw token stream of a source file",
	Long:  `Tokens prints every DelimitedComment, LineComment and single-character Any token.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokensCmd.Flags().Bool("nested", false, "let /* open nested block comments")
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}

	result, err := tokenizeInput(cmd.Context(), cmd, args[0], opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	switch format {
	case "pretty":
		colorOut, err := useColor(cmd, stdoutFile(cmd))
		if err != nil {
			return err
		}
		return measureRender(func() error {
			return segfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet, segfmt.PrettyOpts{Color: colorOut})
		})
	case "json":
		return measureRender(func() error {
			return segfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
		})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
