package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
quantity: phase
component: rz
plot:
  width: 1024
  y_scale: log
report:
  title: Bracket FRF
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "unset fields keep defaults")
	assert.Equal(t, "phase", cfg.Quantity)
	assert.Equal(t, "rz", cfg.Component)
	assert.Equal(t, 1024.0, cfg.Plot.Width)
	assert.Equal(t, 400.0, cfg.Plot.Height)
	assert.Equal(t, "log", cfg.Plot.YScale)
	assert.Equal(t, "Bracket FRF", cfg.Report.Title)
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_DefaultSearch(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pch_reader.yaml"), []byte("output_dir: out\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		contains string
	}{
		{name: "bad yaml", content: "plot: [", contains: "failed to parse"},
		{name: "bad quantity", content: "quantity: power", contains: "unknown quantity"},
		{name: "bad scale", content: "plot:\n  x_scale: semilog", contains: "plot.x_scale"},
		{name: "bad component", content: "component: tw", contains: "unknown component"},
		{name: "bad level", content: "log_level: loud", contains: "log_level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
