// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidMargins is returned when a margin value is not a non-negative integer.
var ErrInvalidMargins = errors.New("please enter valid numeric values for margins")

// Margins holds the number of leading and trailing lines discarded from
// every page as header and footer content.
type Margins struct {
	// Top is the number of lines dropped from the start of each page.
	Top int `json:"top" yaml:"top"`

	// Bottom is the number of lines dropped from the end of each page.
	Bottom int `json:"bottom" yaml:"bottom"`
}

// Validate reports whether both margins are non-negative.
func (m Margins) Validate() error {
	if m.Top < 0 || m.Bottom < 0 {
		return fmt.Errorf("%w: top=%d bottom=%d", ErrInvalidMargins, m.Top, m.Bottom)
	}
	return nil
}

// ParseMargins converts user-entered margin strings into Margins. Blank
// input means zero; anything else must parse as a non-negative integer.
func ParseMargins(top, bottom string) (Margins, error) {
	t, err := parseMargin("top", top)
	if err != nil {
		return Margins{}, err
	}
	b, err := parseMargin("bottom", bottom)
	if err != nil {
		return Margins{}, err
	}
	return Margins{Top: t, Bottom: b}, nil
}

func parseMargin(name, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s margin %q", ErrInvalidMargins, name, s)
	}
	return n, nil
}

// ExtractionBackend identifies the PDF text extraction tool.
type ExtractionBackend string

const (
	BackendNative    ExtractionBackend = "native"
	BackendPdftotext ExtractionBackend = "pdftotext"
)

// CollisionPolicy decides what happens when two input PDFs map to the same
// output file name, compared case-insensitively.
type CollisionPolicy string

const (
	// CollisionSuffix renames later files to <base>-2.txt, <base>-3.txt, ...
	CollisionSuffix CollisionPolicy = "suffix"
	// CollisionError fails later files that would overwrite an earlier output.
	CollisionError CollisionPolicy = "error"
)

// ConversionConfig holds everything one batch run needs. It replaces the
// form fields of an interactive front end, so the batch can run headless.
type ConversionConfig struct {
	// InputDir is the folder scanned for .pdf files.
	InputDir string `json:"input" yaml:"input"`

	// OutputDir receives one .txt per converted PDF. Created if missing.
	OutputDir string `json:"output" yaml:"output"`

	// Margins are applied to every page of every document in the run.
	Margins Margins `json:"margins" yaml:"margins"`

	// Backend selects the extraction tool: native or pdftotext.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// Validate runs structural PDF validation before extraction.
	Validate bool `json:"validate" yaml:"validate"`

	// Collision selects the output name collision policy (default suffix).
	Collision CollisionPolicy `json:"collision" yaml:"collision"`
}

// Check verifies the configuration before any file I/O happens.
func (c ConversionConfig) Check() error {
	if c.InputDir == "" {
		return errors.New("input folder is required")
	}
	if c.OutputDir == "" {
		return errors.New("output folder is required")
	}
	if err := c.Margins.Validate(); err != nil {
		return err
	}
	switch c.Backend {
	case "", BackendNative, BackendPdftotext:
	default:
		return fmt.Errorf("unsupported backend %q: use native or pdftotext", c.Backend)
	}
	switch c.Collision {
	case "", CollisionSuffix, CollisionError:
	default:
		return fmt.Errorf("unsupported collision policy %q: use suffix or error", c.Collision)
	}
	return nil
}
