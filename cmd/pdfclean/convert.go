// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdfclean/internal/container"
	"github.com/pdiddy/pdfclean/internal/convert"
	"github.com/pdiddy/pdfclean/internal/history"
	"github.com/pdiddy/pdfclean/internal/pdftext"
	"github.com/pdiddy/pdfclean/internal/preflight"
	"github.com/pdiddy/pdfclean/internal/report"
	"github.com/pdiddy/pdfclean/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert every PDF in a folder to cleaned text files",
	Long: `Convert reads each .pdf file in the input folder, removes the configured
number of header lines (top margin) and footer lines (bottom margin) from
every page along with page-number lines, and writes <name>.txt to the
output folder. Pages are separated by a blank line. PDFs that yield no text
produce no file.

A failing PDF is reported and the batch continues; the command exits
non-zero when any file failed. Invalid margins stop the run before any file
is touched.`,
	RunE: runConvert,
}

func init() {
	flags := convertCmd.Flags()
	flags.String("input", "", "folder containing the PDFs to convert")
	flags.String("output", "", "folder for the .txt files (created if missing)")
	flags.String("top-margin", "0", "lines to drop from the top of each page")
	flags.String("bottom-margin", "0", "lines to drop from the bottom of each page")
	flags.String("backend", string(types.BackendNative), "extraction backend: native or pdftotext")
	flags.String("pdftotext-image", pdftext.DefaultPdftotextImage, "container image providing pdftotext")
	flags.String("container-runtime", "", "container CLI for pdftotext: docker or podman (default: detect)")
	flags.Bool("validate", false, "check PDF structure with pdfcpu before extraction")
	flags.String("collision", string(types.CollisionSuffix), "output name collision policy: suffix or error")
	flags.String("report", "", "write a run report to this path (.yaml or .json)")
	flags.String("history-db", "", "record the run in this SQLite database")

	for key, flag := range map[string]string{
		"input":             "input",
		"output":            "output",
		"top_margin":        "top-margin",
		"bottom_margin":     "bottom-margin",
		"backend":           "backend",
		"pdftotext_image":   "pdftotext-image",
		"container_runtime": "container-runtime",
		"validate":          "validate",
		"collision":         "collision",
		"report":            "report",
		"history_db":        "history-db",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(convertCmd)
}

// conversionConfig assembles the run configuration from viper. Margins are
// parsed first so that bad input is rejected before anything else happens.
func conversionConfig() (types.ConversionConfig, error) {
	margins, err := types.ParseMargins(viper.GetString("top_margin"), viper.GetString("bottom_margin"))
	if err != nil {
		return types.ConversionConfig{}, fmt.Errorf("invalid input: %w", err)
	}

	cfg := types.ConversionConfig{
		InputDir:  viper.GetString("input"),
		OutputDir: viper.GetString("output"),
		Margins:   margins,
		Backend:   types.ExtractionBackend(viper.GetString("backend")),
		Validate:  viper.GetBool("validate"),
		Collision: types.CollisionPolicy(viper.GetString("collision")),
	}
	if err := cfg.Check(); err != nil {
		return types.ConversionConfig{}, fmt.Errorf("invalid input: %w", err)
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := conversionConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	defer logger.Sync()

	exOpts := []pdftext.Option{
		pdftext.WithLogger(logger),
		pdftext.WithImage(viper.GetString("pdftotext_image")),
	}
	if cfg.Backend == types.BackendPdftotext {
		rt, err := container.Select(viper.GetString("container_runtime"))
		if err != nil {
			return err
		}
		exOpts = append(exOpts, pdftext.WithRuntime(rt))
	}

	ex, err := pdftext.New(cfg.Backend, exOpts...)
	if err != nil {
		return err
	}

	opts := []convert.Option{convert.WithLogger(logger)}
	if cfg.Validate {
		opts = append(opts, convert.WithValidator(preflight.NewValidator()))
	}

	out := cmd.OutOrStdout()
	started := time.Now()
	result, err := convert.New(ex, opts...).ConvertDir(cmd.Context(), cfg, out)
	if err != nil {
		return err
	}
	rep := result.Report(cfg, started, time.Now())

	if err := saveRun(cmd.Context(), rep, out, logger); err != nil {
		return err
	}

	if result.HasFailures() {
		return fmt.Errorf("%d PDF(s) failed conversion", result.Failed)
	}
	return nil
}

// saveRun writes the run report and history entry when they are configured.
func saveRun(ctx context.Context, rep types.RunReport, w io.Writer, logger *zap.Logger) error {
	if path := viper.GetString("report"); path != "" {
		if err := report.Write(path, rep); err != nil {
			return err
		}
		fmt.Fprintf(w, "Report written to %s\n", path)
	}

	if dbPath := viper.GetString("history_db"); dbPath != "" {
		store, err := history.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.Record(ctx, rep)
		if err != nil {
			return err
		}
		logger.Debug("run recorded", zap.String("db", dbPath), zap.Int64("run_id", id))
	}
	return nil
}
