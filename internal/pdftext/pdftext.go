// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts plain text from PDF files one page at a time.
// Backends are pluggable: a pure-Go reader and poppler's pdftotext run in a
// container.
package pdftext

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/pdfclean/internal/container"
	"github.com/pdiddy/pdfclean/pkg/types"
)

// Extractor returns the raw text of every page of a PDF, in page order.
// An empty string marks a page with no extractable text.
type Extractor interface {
	PageTexts(path string) ([]string, error)
}

type options struct {
	logger  *zap.Logger
	runtime container.Runtime
	image   string
}

// Option configures an extractor built by New.
type Option func(*options)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRuntime sets the container runtime used by the pdftotext backend.
// Without it the runtime is detected on first use of New.
func WithRuntime(rt container.Runtime) Option {
	return func(o *options) {
		o.runtime = rt
	}
}

// WithImage overrides the container image used by the pdftotext backend.
func WithImage(image string) Option {
	return func(o *options) {
		o.image = image
	}
}

// New builds the extractor for backend. An empty backend selects native.
func New(backend types.ExtractionBackend, opts ...Option) (Extractor, error) {
	o := options{
		logger: zap.NewNop(),
		image:  DefaultPdftotextImage,
	}
	for _, opt := range opts {
		opt(&o)
	}

	switch backend {
	case "", types.BackendNative:
		return NewNativeExtractor(o.logger), nil
	case types.BackendPdftotext:
		rt := o.runtime
		if rt == nil {
			var err error
			if rt, err = container.DetectRuntime(); err != nil {
				return nil, err
			}
		}
		return NewPdftotextExtractor(rt, o.image, o.logger)
	default:
		return nil, fmt.Errorf("unsupported backend %q: use native or pdftotext", backend)
	}
}

// blankToEmpty normalizes whitespace-only page text to the no-text marker.
func blankToEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
