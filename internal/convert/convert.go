// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a folder of PDFs into cleaned plain-text files.
//
// Each PDF is extracted page by page, every page is cleaned with the run's
// margins, and the pages are joined with a blank line. A file is written
// only when some text survives. A failing PDF is reported and the batch
// moves on to the next file.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/pdfclean/internal/clean"
	"github.com/pdiddy/pdfclean/internal/pdftext"
	"github.com/pdiddy/pdfclean/pkg/types"
)

const (
	pdfExt = ".pdf"
	txtExt = ".txt"
)

// ErrCollision is reported for a file whose output name is already taken
// under the error collision policy.
var ErrCollision = errors.New("output name already used by another input")

// Validator checks a PDF before its text is extracted.
type Validator interface {
	Validate(path string) error
}

// PageCounter is implemented by validators that can also count pages.
type PageCounter interface {
	PageCount(path string) (int, error)
}

// Converter runs the extract, clean, write pipeline.
type Converter struct {
	extractor pdftext.Extractor
	validator Validator
	logger    *zap.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithValidator enables structural validation before extraction.
func WithValidator(v Validator) Option {
	return func(c *Converter) {
		c.validator = v
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// New creates a Converter that reads page text through ex.
func New(ex pdftext.Extractor, options ...Option) *Converter {
	c := &Converter{
		extractor: ex,
		logger:    zap.NewNop(),
	}
	for _, o := range options {
		o(c)
	}
	return c
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Empty     int
	Failed    int
	Files     []types.FileResult
}

// Total returns the number of PDFs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Empty + r.Failed
}

// HasFailures reports whether any PDF failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(fr types.FileResult) {
	switch fr.Status {
	case types.ConversionDone:
		r.Converted++
	case types.ConversionEmpty:
		r.Empty++
	case types.ConversionFailed:
		r.Failed++
	}
	r.Files = append(r.Files, fr)
}

// Report packages the result with the run's configuration and timing.
func (r BatchResult) Report(cfg types.ConversionConfig, started, finished time.Time) types.RunReport {
	return types.RunReport{
		StartedAt:  started.UTC(),
		FinishedAt: finished.UTC(),
		Config:     cfg,
		Files:      r.Files,
		Converted:  r.Converted,
		Empty:      r.Empty,
		Failed:     r.Failed,
	}
}

// Document extracts and cleans one PDF. Pages without text are skipped
// entirely; the rest are cleaned and joined with a blank line. It also
// returns the page count and the number of pages that had text.
func (c *Converter) Document(pdfPath string, m types.Margins) (text string, pages, textPages int, err error) {
	if c.validator != nil {
		if err := c.validator.Validate(pdfPath); err != nil {
			return "", 0, 0, err
		}
	}

	raw, err := c.extractor.PageTexts(pdfPath)
	if err != nil {
		return "", 0, 0, err
	}

	c.checkPageCount(pdfPath, len(raw))

	cleaned := clean.Pages(raw, m)
	return clean.Join(cleaned), len(raw), len(cleaned), nil
}

// checkPageCount logs when the validator and the extractor disagree on the
// number of pages in a file.
func (c *Converter) checkPageCount(pdfPath string, extracted int) {
	pc, ok := c.validator.(PageCounter)
	if !ok {
		return
	}
	n, err := pc.PageCount(pdfPath)
	if err != nil {
		c.logger.Debug("page count unavailable", zap.String("source", pdfPath), zap.Error(err))
		return
	}
	if n != extracted {
		c.logger.Warn("page count mismatch",
			zap.String("source", pdfPath),
			zap.Int("validator_pages", n),
			zap.Int("extracted_pages", extracted),
		)
	}
}

// ConvertFile converts the PDF at pdfPath and writes the cleaned text to
// outPath, replacing any existing file. Nothing is written when the cleaned
// text is empty.
func (c *Converter) ConvertFile(pdfPath, outPath string, m types.Margins) types.FileResult {
	fr := types.FileResult{Source: pdfPath}

	text, pages, textPages, err := c.Document(pdfPath, m)
	fr.Pages, fr.TextPages = pages, textPages
	if err != nil {
		fr.Status = types.ConversionFailed
		fr.Error = err.Error()
		return fr
	}

	if text == "" {
		fr.Status = types.ConversionEmpty
		return fr
	}

	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		fr.Status = types.ConversionFailed
		fr.Error = fmt.Sprintf("writing %s: %v", outPath, err)
		return fr
	}

	fr.Status = types.ConversionDone
	fr.Output = outPath
	return fr
}

// ConvertDir converts every PDF in cfg.InputDir, printing one status line
// per file and a closing summary to w. Per-file failures are counted and
// reported; only configuration, folder, and cancellation errors end the
// run early.
func (c *Converter) ConvertDir(ctx context.Context, cfg types.ConversionConfig, w io.Writer) (BatchResult, error) {
	var result BatchResult

	if err := cfg.Check(); err != nil {
		return result, err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return result, fmt.Errorf("creating output folder %s: %w", cfg.OutputDir, err)
	}

	pdfs, err := ListPDFs(cfg.InputDir)
	if err != nil {
		return result, err
	}
	c.logger.Info("starting batch",
		zap.String("input", cfg.InputDir),
		zap.String("output", cfg.OutputDir),
		zap.Int("pdfs", len(pdfs)),
		zap.Int("top_margin", cfg.Margins.Top),
		zap.Int("bottom_margin", cfg.Margins.Bottom),
	)

	names := newNamer(cfg.Collision)
	for _, name := range pdfs {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		pdfPath := filepath.Join(cfg.InputDir, name)
		base := strings.TrimSuffix(name, filepath.Ext(name))

		outName, renamed, err := names.pick(base)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
			result.add(types.FileResult{Source: pdfPath, Status: types.ConversionFailed, Error: err.Error()})
			continue
		}

		fr := c.ConvertFile(pdfPath, filepath.Join(cfg.OutputDir, outName), cfg.Margins)
		switch fr.Status {
		case types.ConversionDone:
			names.take(outName)
			if renamed {
				fmt.Fprintf(w, "renamed:   %s -> %s (name collision)\n", name, outName)
			}
			fmt.Fprintf(w, "converted: %s -> %s\n", name, outName)
		case types.ConversionEmpty:
			fmt.Fprintf(w, "empty:     %s (no text after cleaning)\n", name)
		case types.ConversionFailed:
			fmt.Fprintf(w, "failed:    %s (%s)\n", name, fr.Error)
		}
		c.logger.Debug("file done",
			zap.String("source", pdfPath),
			zap.String("status", string(fr.Status)),
			zap.Int("pages", fr.Pages),
			zap.Int("text_pages", fr.TextPages),
		)
		result.add(fr)
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d empty, %d failed (total: %d)\n",
		result.Converted, result.Empty, result.Failed, result.Total())
	return result, nil
}

// ListPDFs returns the names of the non-directory entries in dir with a .pdf
// extension, compared case-insensitively, in lexical order.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input folder %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), pdfExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
