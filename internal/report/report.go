// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report saves and loads batch run reports. The format follows the
// file extension: .json writes JSON, anything else writes YAML.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfclean/pkg/types"
)

// Write saves rep to path, creating parent directories as needed.
func Write(path string, rep types.RunReport) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(rep, "", "  ")
	} else {
		data, err = yaml.Marshal(&rep)
	}
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a report written by Write.
func Read(path string) (*types.RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run report: %w", err)
	}

	var rep types.RunReport
	if isJSON(path) {
		err = json.Unmarshal(data, &rep)
	} else {
		err = yaml.Unmarshal(data, &rep)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing run report: %w", err)
	}
	return &rep, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
