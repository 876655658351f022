// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfclean/internal/pdftest"
)

func TestValidate_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

	err := NewValidator().Validate(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.pdf")
}

func TestValidate_Missing(t *testing.T) {
	err := NewValidator().Validate(filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
}

func TestPageCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.pdf")
	pdftest.Write(t, path, []string{"first"}, []string{"second"})

	n, err := NewValidator().PageCount(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
