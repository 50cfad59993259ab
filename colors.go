package sctview

import (
	"image/color"

	"gonum.org/v1/plot/plotutil"
)

// SeriesColor is the color of the i-th data series in plots that overlay
// several input files.
func SeriesColor(i int) color.Color {
	switch i {
	case 0:
		return color.RGBA{A: 255}
	case 1:
		return color.RGBA{G: 255, A: 255}
	case 2:
		return color.RGBA{B: 255, A: 255}
	case 3:
		return color.RGBA{R: 255, B: 127, G: 127, A: 255}
	}
	return plotutil.Color(i)
}
