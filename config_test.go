package sctview

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"vtx", "trk", "vtrk"}, cfg.Show)
	assert.Equal(t, 0.2, cfg.Alpha)
	assert.EqualValues(t, 50, cfg.Cache.Before)
	assert.EqualValues(t, 100, cfg.Cache.After)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "display.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
show: [vtx, mc]
mc: longlived
alpha: 0.5
colors:
  mc: "#00ff0080"
limits:
  z: [-200, 800]
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"vtx", "mc"}, cfg.Show)
	assert.Equal(t, "longlived", cfg.MC)
	assert.Equal(t, 0.5, cfg.Alpha)
	assert.Equal(t, "#00ff0080", cfg.Colors.MC)
	assert.Equal(t, []float64{-200, 800}, cfg.Limits.Z)

	// untouched values keep their defaults
	assert.Equal(t, "#0000ff", cfg.Colors.Velo)
	assert.Equal(t, DefaultWidth, cfg.Width)
	assert.Equal(t, DefaultPadZ, cfg.Pad.Z)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	for name, body := range map[string]string{
		"syntax":  "show: [vtx",
		"alpha":   "alpha: 2",
		"color":   "colors:\n  trk: red\n",
		"limits":  "limits:\n  x: [1]\n",
		"size":    "width: 0",
		"cache":   "cache:\n  after: 0\n",
		"padding": "padding:\n  z: -1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 128, B: 0, A: 255}, c)

	c, err = ParseColor("00000010")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{A: 16}, c)

	_, err = ParseColor("#fff")
	assert.Error(t, err)
	_, err = ParseColor("#gggggg")
	assert.Error(t, err)
}
