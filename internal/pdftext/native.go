// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// gapFactor is the horizontal gap, as a fraction of the font size, above
// which two glyphs on the same row are treated as separate words.
const gapFactor = 0.2

// rowTolerance is the baseline spread, as a fraction of the font size, that
// still counts as one row. minRowTolerance is the floor for tiny or unknown
// font sizes.
const (
	rowTolerance    = 0.5
	minRowTolerance = 1.0
)

// NativeExtractor reads PDFs in-process with github.com/ledongthuc/pdf.
// Glyphs sharing a baseline form one line; lines run top to bottom.
type NativeExtractor struct {
	logger *zap.Logger
}

// NewNativeExtractor creates the pure-Go extractor.
func NewNativeExtractor(logger *zap.Logger) *NativeExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NativeExtractor{logger: logger}
}

// PageTexts opens the PDF at path and returns one entry per page.
func (n *NativeExtractor) PageTexts(path string) (pages []string, err error) {
	// The reader panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("reading PDF %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			n.logger.Debug("null page object", zap.String("path", path), zap.Int("page", i))
			pages = append(pages, "")
			continue
		}
		pages = append(pages, layoutText(p.Content().Text))
	}

	n.logger.Debug("extracted pages", zap.String("path", path), zap.Int("pages", numPages))
	return pages, nil
}

// layoutText groups glyphs into rows by baseline, orders rows top to bottom
// and glyphs left to right, and renders one line per row. A glyph joins the
// current row when its baseline is within rowTolerance of the row's font
// size from the row's first glyph.
func layoutText(glyphs []pdf.Text) string {
	if len(glyphs) == 0 {
		return ""
	}

	sorted := slices.Clone(glyphs)
	// PDF user space grows upward.
	slices.SortStableFunc(sorted, func(a, b pdf.Text) int { return cmp.Compare(b.Y, a.Y) })

	var (
		lines []string
		row   []pdf.Text
	)
	flush := func() {
		slices.SortStableFunc(row, func(a, b pdf.Text) int { return cmp.Compare(a.X, b.X) })
		lines = append(lines, rowText(row))
		row = nil
	}
	for _, g := range sorted {
		if len(row) > 0 && row[0].Y-g.Y > tolerance(row[0]) {
			flush()
		}
		row = append(row, g)
	}
	flush()

	return blankToEmpty(strings.Join(lines, "\n"))
}

// tolerance is the baseline distance below g still treated as g's row.
func tolerance(g pdf.Text) float64 {
	return max(rowTolerance*g.FontSize, minRowTolerance)
}

func rowText(row []pdf.Text) string {
	var b strings.Builder
	for i, g := range row {
		if i > 0 {
			prev := row[i-1]
			gap := g.X - (prev.X + prev.W)
			if gap > gapFactor*g.FontSize && prev.S != " " && g.S != " " {
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}
	return b.String()
}
