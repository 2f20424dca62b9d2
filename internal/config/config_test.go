package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestOverridesApply(t *testing.T) {
	tests := []struct {
		name      string
		overrides Overrides
		want      Options
	}{
		{
			name:      "empty overrides keep defaults",
			overrides: Overrides{},
			want: Options{
				Headless:       false,
				Timeout:        60 * time.Second,
				SaveScreenshot: true,
				Verbose:        false,
			},
		},
		{
			name: "single field override",
			overrides: Overrides{
				Headless: boolPtr(true),
			},
			want: Options{
				Headless:       true,
				Timeout:        60 * time.Second,
				SaveScreenshot: true,
				Verbose:        false,
			},
		},
		{
			name: "all fields overridden",
			overrides: Overrides{
				Headless:       boolPtr(true),
				TimeoutMs:      intPtr(15000),
				SaveScreenshot: boolPtr(false),
				Verbose:        boolPtr(true),
			},
			want: Options{
				Headless:       true,
				Timeout:        15 * time.Second,
				SaveScreenshot: false,
				Verbose:        true,
			},
		},
		{
			name: "explicit false beats true default",
			overrides: Overrides{
				SaveScreenshot: boolPtr(false),
			},
			want: Options{
				Headless:       false,
				Timeout:        60 * time.Second,
				SaveScreenshot: false,
				Verbose:        false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.overrides.Apply(Default())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	f, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &File{}, f)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
output_dir: /tmp/reports
data_dir: ./data
defaults:
  headless: true
  timeout_ms: 30000
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/reports", f.OutputDir)
	assert.Equal(t, "./data", f.DataDir)

	opts := f.Defaults.Apply(Default())
	assert.True(t, opts.Headless)
	assert.Equal(t, 30*time.Second, opts.Timeout)
	assert.True(t, opts.SaveScreenshot)
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("::: not yaml"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
