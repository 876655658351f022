// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preflight checks PDF structure with pdfcpu before text extraction,
// so that broken files are reported with a structural cause.
package preflight

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Keep pdfcpu from creating a config directory under the user's home.
	model.ConfigPath = "disable"
}

// Validator runs pdfcpu validation in relaxed mode.
type Validator struct {
	conf *model.Configuration
}

// NewValidator returns a Validator with pdfcpu's default configuration and
// relaxed validation.
func NewValidator() *Validator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Validator{conf: conf}
}

// Validate returns an error describing why the PDF at path is malformed.
func (v *Validator) Validate(path string) error {
	if err := api.ValidateFile(path, v.conf); err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	return nil
}

// PageCount returns the number of pages in the PDF at path.
func (v *Validator) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}
