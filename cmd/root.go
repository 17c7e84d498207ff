// Package cmd implements the CLI commands for mdconvert using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mdconvert",
	Short: "mdconvert — convert Markdown documents into DOCX, PDF, JSON or text",
	Long: `mdconvert converts Markdown (and HTML) documents into structured outputs.
Lists, nested lists, HTML-authored lists, tables with rich cells, code blocks
and blockquotes are carried over as real document structure.

Usage:
  mdconvert convert <path|url> [flags]`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
