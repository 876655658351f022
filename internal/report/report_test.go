// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfclean/pkg/types"
)

func sampleReport() types.RunReport {
	started := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	return types.RunReport{
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Config: types.ConversionConfig{
			InputDir:  "scans",
			OutputDir: "text",
			Margins:   types.Margins{Top: 2, Bottom: 1},
			Backend:   types.BackendNative,
		},
		Files: []types.FileResult{
			{Source: "scans/a.pdf", Output: "text/a.txt", Status: types.ConversionDone, Pages: 3, TextPages: 3},
			{Source: "scans/b.pdf", Status: types.ConversionFailed, Error: "malformed PDF: invalid header"},
		},
		Converted: 1,
		Failed:    1,
	}
}

func TestWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.yaml")
	require.NoError(t, Write(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "input: scans")
	assert.Contains(t, content, "top: 2")
	assert.Contains(t, content, "status: failed")
	assert.Contains(t, content, "malformed PDF: invalid header")

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, sampleReport(), *got)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.JSON")
	require.NoError(t, Write(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"text_pages": 3`)

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Converted)
	assert.Equal(t, "text/a.txt", got.Files[0].Output)
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("files: [unterminated"), 0o644))
	_, err = Read(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing run report")
}
