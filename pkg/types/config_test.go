// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMargins(t *testing.T) {
	tests := []struct {
		name    string
		top     string
		bottom  string
		want    Margins
		wantErr bool
	}{
		{name: "plain integers", top: "2", bottom: "3", want: Margins{Top: 2, Bottom: 3}},
		{name: "surrounding whitespace", top: " 1 ", bottom: "\t4\n", want: Margins{Top: 1, Bottom: 4}},
		{name: "blank means zero", top: "", bottom: "  ", want: Margins{}},
		{name: "non-numeric top", top: "two", bottom: "1", wantErr: true},
		{name: "non-numeric bottom", top: "1", bottom: "1.5", wantErr: true},
		{name: "negative", top: "-1", bottom: "0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMargins(tt.top, tt.bottom)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidMargins)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConversionConfigCheck(t *testing.T) {
	valid := ConversionConfig{InputDir: "in", OutputDir: "out"}
	require.NoError(t, valid.Check())

	tests := []struct {
		name   string
		mutate func(c *ConversionConfig)
		errMsg string
	}{
		{name: "missing input", mutate: func(c *ConversionConfig) { c.InputDir = "" }, errMsg: "input folder"},
		{name: "missing output", mutate: func(c *ConversionConfig) { c.OutputDir = "" }, errMsg: "output folder"},
		{name: "negative margin", mutate: func(c *ConversionConfig) { c.Margins.Bottom = -2 }, errMsg: "numeric"},
		{name: "unknown backend", mutate: func(c *ConversionConfig) { c.Backend = "ocr" }, errMsg: "unsupported backend"},
		{name: "unknown collision policy", mutate: func(c *ConversionConfig) { c.Collision = "merge" }, errMsg: "collision policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Check()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
