// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfclean/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversion runs",
	Long: `History lists batch runs recorded by convert --history-db, newest
first. Use --run with a run ID to list the outcome of each file in that run.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("db", "", "history database (default: history_db from config or environment)")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "show the files of this run")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("history_db")
	}
	if dbPath == "" {
		return fmt.Errorf("no history database: pass --db or set history_db")
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if runID, _ := cmd.Flags().GetInt64("run"); runID > 0 {
		files, err := store.Files(cmd.Context(), runID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(out, files)
		}
		if len(files) == 0 {
			fmt.Fprintf(out, "No files recorded for run %d.\n", runID)
			return nil
		}
		fmt.Fprintf(out, "%-10s  %-40s  %-5s  %s\n", "Status", "Source", "Pages", "Detail")
		fmt.Fprintln(out, strings.Repeat("-", 90))
		for _, f := range files {
			detail := f.Output
			if f.Error != "" {
				detail = f.Error
			}
			fmt.Fprintf(out, "%-10s  %-40s  %-5d  %s\n", f.Status, truncate(f.Source, 40), f.Pages, detail)
		}
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(out, runs)
	}
	return formatRuns(out, runs)
}

func formatRuns(w io.Writer, runs []history.RunSummary) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-30s  %-7s  %-9s  %-5s  %s\n",
		"ID", "Started", "Input", "Margins", "Converted", "Empty", "Failed")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range runs {
		fmt.Fprintf(w, "%-5d  %-20s  %-30s  %-7s  %-9d  %-5d  %d\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(r.InputDir, 30),
			fmt.Sprintf("%d/%d", r.Margins.Top, r.Margins.Bottom),
			r.Converted, r.Empty, r.Failed)
	}

	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
