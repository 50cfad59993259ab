package display

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/sctview"
)

func testScene(t *testing.T) *Scene {
	t.Helper()
	s, err := BuildScene(testEvent(), testBounds, Options{Show: all(), NEvents: 10})
	require.NoError(t, err)
	return s
}

func smallStyle() Style {
	st := DefaultStyle()
	st.Width, st.Height = 6*vg.Inch, 3*vg.Inch
	return st
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "png", testScene(t), smallStyle()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
	assert.Greater(t, img.Bounds().Dy(), 0)
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "svg", testScene(t), smallStyle()))
	assert.True(t, strings.Contains(buf.String(), "<svg"))
}

func TestWriteUnsupported(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, "bmp", testScene(t), smallStyle()))
	assert.Zero(t, buf.Len())
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"event.png", "event.pdf", "event.eps"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, testScene(t), smallStyle()))
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, fi.Size(), int64(0), name)
	}

	path := filepath.Join(dir, "event.gif")
	assert.Error(t, Save(path, testScene(t), smallStyle()))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStyleFromConfig(t *testing.T) {
	cfg := sctview.DefaultConfig()
	cfg.Width = 8
	cfg.Alpha = 0.5
	cfg.Colors.MC = "#123456"

	st, err := StyleFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 8*vg.Inch, st.Width)
	assert.Equal(t, color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}, st.Colors[MC])
	assert.Equal(t, color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 127}, st.lineColor(MC))

	cfg.Colors.Long = "nope"
	_, err = StyleFromConfig(cfg)
	assert.Error(t, err)
}
