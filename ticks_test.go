package sctview

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
)

func labeled(ticks []plot.Tick) []string {
	var out []string
	for _, t := range ticks {
		if t.Label != "" {
			out = append(out, t.Label)
		}
	}
	return out
}

func TestPreciseTicks(t *testing.T) {
	ticks := PreciseTicks{NSuggestedTicks: 5}.Ticks(0, 10)
	assert.Equal(t, []string{"0", "2", "4", "6", "8", "10"}, labeled(ticks))
	assert.Len(t, ticks, 11)

	for _, tick := range ticks {
		assert.GreaterOrEqual(t, tick.Value, 0.0)
		assert.LessOrEqual(t, tick.Value, 10.0)
	}

	assert.Panics(t, func() { PreciseTicks{}.Ticks(1, 1) })
}

func TestPreciseTicksDefault(t *testing.T) {
	ticks := PreciseTicks{}.Ticks(-300, 300)
	require.NotEmpty(t, labeled(ticks))
	assert.Contains(t, labeled(ticks), "0")
}

func TestPreciseTicksNegativeRange(t *testing.T) {
	ticks := PreciseTicks{NSuggestedTicks: 5}.Ticks(-10, -0.5)
	assert.Equal(t, []string{"-10", "-8", "-6", "-4", "-2"}, labeled(ticks))

	ticks = PreciseTicks{NSuggestedTicks: 5}.Ticks(-250, -120)
	assert.Equal(t, []string{"-240", "-210", "-180", "-150", "-120"}, labeled(ticks))
	for _, tick := range ticks {
		assert.GreaterOrEqual(t, tick.Value, -250.0)
		assert.LessOrEqual(t, tick.Value, -120.0)
	}
}

func TestPreciseTicksFraction(t *testing.T) {
	labels := labeled(PreciseTicks{NSuggestedTicks: 5}.Ticks(0, 1))
	assert.GreaterOrEqual(t, len(labels), 5)
	assert.Contains(t, labels, "0.4")
	assert.Contains(t, labels, "0.6")

	labels = labeled(PreciseTicks{NSuggestedTicks: 5}.Ticks(-1, -0.001))
	assert.Contains(t, labels, "-0.4")
	assert.NotContains(t, labels, "0")
}

func TestLogTicks(t *testing.T) {
	ticks := LogTicks{}.Ticks(1, 1000)
	assert.Len(t, ticks, 28)
	assert.Equal(t, []string{"1", "10", "100", "1000"}, labeled(ticks))

	ticks = LogTicks{}.Ticks(0, 10)
	assert.Equal(t, []string{"0.1", "1", "10"}, labeled(ticks))
}

func TestLogScale(t *testing.T) {
	var s LogScale
	assert.InDelta(t, 0.5, s.Normalize(1, 100, 10), 1e-12)
	assert.InDelta(t, 0, s.Normalize(1, 100, 1), 1e-12)
	assert.InDelta(t, 1, s.Normalize(1, 100, 100), 1e-12)
	assert.InDelta(t, 0, s.Normalize(0, 100, 0), 1e-12)
	assert.InDelta(t, 0, s.Normalize(0, 100, -5), 1e-12)
}

func TestSeriesColor(t *testing.T) {
	seen := map[color.Color]bool{}
	for i := 0; i < 4; i++ {
		c := SeriesColor(i)
		require.False(t, seen[c], "series %d repeats a color", i)
		seen[c] = true
	}
	_, _, _, a := SeriesColor(0).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	assert.NotNil(t, SeriesColor(7))
}
