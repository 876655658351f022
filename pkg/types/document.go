// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one PDF.
type ConversionStatus string

const (
	// ConversionDone means a .txt file was written.
	ConversionDone ConversionStatus = "converted"
	// ConversionEmpty means no text survived cleaning and nothing was written.
	ConversionEmpty ConversionStatus = "empty"
	// ConversionFailed means the file could not be read, validated, or written.
	ConversionFailed ConversionStatus = "failed"
)

// FileResult records what happened to a single input PDF.
type FileResult struct {
	// Source is the path of the input PDF.
	Source string `json:"source" yaml:"source"`

	// Output is the written .txt path. Empty unless Status is converted.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	Status ConversionStatus `json:"status" yaml:"status"`

	// Pages is the number of pages reported by the extractor.
	Pages int `json:"pages" yaml:"pages"`

	// TextPages is the number of pages that yielded any text.
	TextPages int `json:"text_pages" yaml:"text_pages"`

	// Error holds the failure cause when Status is failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunReport describes one finished batch run.
type RunReport struct {
	StartedAt  time.Time        `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time        `json:"finished_at" yaml:"finished_at"`
	Config     ConversionConfig `json:"config" yaml:"config"`
	Files      []FileResult     `json:"files" yaml:"files"`
	Converted  int              `json:"converted" yaml:"converted"`
	Empty      int              `json:"empty" yaml:"empty"`
	Failed     int              `json:"failed" yaml:"failed"`
}
