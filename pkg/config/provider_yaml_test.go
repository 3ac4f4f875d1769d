package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chrissnell/snowbalance/pkg/snowpack"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected func() snowpack.Params
		wantErr  error
	}{
		{
			name:     "empty file keeps defaults",
			yaml:     "",
			expected: snowpack.DefaultParams,
		},
		{
			name: "partial override",
			yaml: `
melt:
  melt-rate: 0.5
sublimation:
  threshold-snowcover: 12
`,
			expected: func() snowpack.Params {
				p := snowpack.DefaultParams()
				p.Melt.MeltRate = 0.5
				p.Sublimation.ThresholdSnowCover = 12
				return p
			},
		},
		{
			name: "explicit zero is kept",
			yaml: `
accumulation:
  threshold-upper: 1
  threshold-lower: 0
`,
			expected: func() snowpack.Params {
				p := snowpack.DefaultParams()
				p.Accumulation.ThresholdUpper = 1
				p.Accumulation.ThresholdLower = 0
				return p
			},
		},
		{
			name: "degenerate thresholds",
			yaml: `
accumulation:
  threshold-upper: -6
`,
			wantErr: snowpack.ErrDegenerateThresholds,
		},
		{
			name: "negative melt rate",
			yaml: `
melt:
  melt-rate: -1
`,
			wantErr: snowpack.ErrInvalidMeltRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams([]byte(tt.yaml))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *got != tt.expected() {
				t.Errorf("expected %+v, got %+v", tt.expected(), *got)
			}
		})
	}
}

func TestParseParamsRejectsUnknownKeys(t *testing.T) {
	_, err := ParseParams([]byte("melt:\n  meltrate: 0.3\n"))
	if err == nil {
		t.Fatal("expected an error for a misspelled key")
	}
}

func TestParseParamsRejectsNonNumeric(t *testing.T) {
	_, err := ParseParams([]byte("melt:\n  melt-rate: fast\n"))
	if err == nil {
		t.Fatal("expected an error for a non-numeric value")
	}
}

func TestYAMLProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte("melt:\n  threshold-max: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	params, err := NewProvider(path).LoadParams()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Melt.ThresholdMax != 3 {
		t.Errorf("expected threshold-max 3, got %g", params.Melt.ThresholdMax)
	}
	if params.Melt.ThresholdMin != snowpack.DefaultThresholdMin {
		t.Errorf("expected default threshold-min, got %g", params.Melt.ThresholdMin)
	}

	if _, err := NewYAMLProvider(filepath.Join(t.TempDir(), "missing.yaml")).LoadParams(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestDefaultProvider(t *testing.T) {
	params, err := NewProvider("").LoadParams()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *params != snowpack.DefaultParams() {
		t.Errorf("expected defaults, got %+v", *params)
	}
}
