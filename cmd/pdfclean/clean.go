// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfclean/internal/clean"
	"github.com/pdiddy/pdfclean/pkg/types"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Clean already-extracted text from a file or stdin",
	Long: `Clean applies the same header, footer, and page-number removal used by
convert to plain text. Form feed characters separate pages, matching the
output of pdftotext. The cleaned pages are written to stdout separated by a
blank line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().String("top-margin", "0", "lines to drop from the top of each page")
	cleanCmd.Flags().String("bottom-margin", "0", "lines to drop from the bottom of each page")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	top, _ := cmd.Flags().GetString("top-margin")
	bottom, _ := cmd.Flags().GetString("bottom-margin")
	m, err := types.ParseMargins(top, bottom)
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	return cleanText(in, cmd.OutOrStdout(), m)
}

// cleanText reads form-feed separated pages from r and writes the cleaned
// document to w. Nothing is written when no text survives.
func cleanText(r io.Reader, w io.Writer, m types.Margins) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	pages := strings.Split(string(data), "\f")
	text := clean.Join(clean.Pages(pages, m))
	if text == "" {
		return nil
	}
	_, err = fmt.Fprintln(w, text)
	return err
}
