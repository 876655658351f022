// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/pdfclean/internal/container"
)

// DefaultPdftotextImage is a locally built image with poppler-utils installed.
const DefaultPdftotextImage = "pdftotext:latest"

// pdftotextArgs reads the PDF from stdin and writes UTF-8 text to stdout.
var pdftotextArgs = []string{"pdftotext", "-enc", "UTF-8", "-", "-"}

// pageBreak is the form feed pdftotext writes after every page.
const pageBreak = "\f"

// PdftotextExtractor pipes PDFs through poppler's pdftotext inside a
// container.
type PdftotextExtractor struct {
	runtime container.Runtime
	image   string
	logger  *zap.Logger
}

// NewPdftotextExtractor checks that image exists in rt before returning.
func NewPdftotextExtractor(rt container.Runtime, image string, logger *zap.Logger) (*PdftotextExtractor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &PdftotextExtractor{runtime: rt, image: image, logger: logger}, nil
}

// PageTexts runs pdftotext over the PDF at path and splits its output into pages.
func (p *PdftotextExtractor) PageTexts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := p.runtime.Run(p.image, pdftotextArgs, f, &out); err != nil {
		return nil, fmt.Errorf("extracting %s with pdftotext: %w", path, err)
	}

	pages := splitPages(out.String())
	p.logger.Debug("extracted pages",
		zap.String("path", path),
		zap.String("runtime", p.runtime.Name()),
		zap.Int("pages", len(pages)),
	)
	return pages, nil
}

// splitPages splits pdftotext output on form feeds. The trailing form feed
// after the last page does not start a new page.
func splitPages(out string) []string {
	if out == "" {
		return nil
	}
	out = strings.TrimSuffix(out, pageBreak)
	parts := strings.Split(out, pageBreak)
	for i, part := range parts {
		parts[i] = blankToEmpty(part)
	}
	return parts
}
