package display

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/decibelcooper/sctview"
	"github.com/decibelcooper/sctview/geom"
)

// Style sets the look of a rendered scene.
type Style struct {
	Width, Height vg.Length

	Colors map[Category]color.Color
	// Alpha is the opacity of track lines.
	Alpha float64

	LineWidth    vg.Length
	VertexRadius vg.Length
	Ticks        int
}

// DefaultStyle draws vertices and Long tracks in red, VELO tracks in blue
// and MC tracks in green.
func DefaultStyle() Style {
	return Style{
		Width:  sctview.DefaultWidth * vg.Inch,
		Height: sctview.DefaultHeight * vg.Inch,
		Colors: map[Category]color.Color{
			Vertices: color.NRGBA{R: 255, A: 255},
			Long:     color.NRGBA{R: 255, A: 255},
			Velo:     color.NRGBA{B: 255, A: 255},
			MC:       color.NRGBA{G: 128, A: 255},
		},
		Alpha:        sctview.DefaultAlpha,
		LineWidth:    vg.Points(1),
		VertexRadius: vg.Points(2.5),
		Ticks:        sctview.DefaultTicks,
	}
}

// StyleFromConfig applies the figure size, colors, alpha and tick count of
// cfg to DefaultStyle.
func StyleFromConfig(cfg *sctview.Config) (Style, error) {
	st := DefaultStyle()
	st.Width = vg.Length(cfg.Width) * vg.Inch
	st.Height = vg.Length(cfg.Height) * vg.Inch
	st.Alpha = cfg.Alpha
	st.Ticks = cfg.Ticks

	for c, s := range map[Category]string{
		Vertices: cfg.Colors.Vertices,
		Long:     cfg.Colors.Long,
		Velo:     cfg.Colors.Velo,
		MC:       cfg.Colors.MC,
	} {
		col, err := sctview.ParseColor(s)
		if err != nil {
			return st, err
		}
		st.Colors[c] = col
	}
	return st, nil
}

func (st Style) lineColor(c Category) color.Color {
	r, g, b, a := st.Colors[c].RGBA()
	if a == 0 {
		return color.NRGBA{}
	}
	// un-premultiply, then apply the track opacity
	return color.NRGBA{
		R: uint8(r * 0xff / a),
		G: uint8(g * 0xff / a),
		B: uint8(b * 0xff / a),
		A: uint8(float64(a>>8) * st.Alpha),
	}
}

// segmentLayer draws a set of independent line segments, like a
// matplotlib LineCollection.
type segmentLayer struct {
	segs  []geom.Segment2
	style draw.LineStyle
}

func (l *segmentLayer) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	lines := make([][]vg.Point, 0, len(l.segs))
	for _, s := range l.segs {
		lines = append(lines, []vg.Point{
			{X: trX(s.From.X), Y: trY(s.From.Y)},
			{X: trX(s.To.X), Y: trY(s.To.Y)},
		})
	}
	c.StrokeLines(l.style, c.ClipLinesXY(lines...)...)
}

func (st Style) panelPlot(p *Panel) (*plot.Plot, error) {
	plt, err := plot.New()
	if err != nil {
		return nil, err
	}

	h, v := p.Plane.Axes()
	plt.X.Label.Text = h + " / mm"
	plt.Y.Label.Text = v + " / mm"
	plt.X.Tick.Marker = sctview.PreciseTicks{NSuggestedTicks: st.Ticks}
	plt.Y.Tick.Marker = sctview.PreciseTicks{NSuggestedTicks: st.Ticks}

	for _, c := range AllCategories {
		if c == Vertices {
			continue
		}
		segs, ok := p.Segments[c]
		if !ok || len(segs) == 0 {
			continue
		}
		plt.Add(&segmentLayer{
			segs:  segs,
			style: draw.LineStyle{Color: st.lineColor(c), Width: st.LineWidth},
		})
	}

	if len(p.Vertices) > 0 {
		xys := make(plotter.XYs, len(p.Vertices))
		for i, pt := range p.Vertices {
			xys[i].X, xys[i].Y = pt.X, pt.Y
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = st.Colors[Vertices]
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = st.VertexRadius
		plt.Add(sc)
	}

	plt.X.Min, plt.X.Max = p.H.Min, p.H.Max
	plt.Y.Min, plt.Y.Max = p.V.Min, p.V.Max
	return plt, nil
}

// Draw renders s onto dc: the xy projection on the left, zy on the upper
// right and zx on the lower right. The zy panel shares its z axis with zx
// and hides it.
func Draw(dc draw.Canvas, s *Scene, st Style) error {
	w := dc.Max.X - dc.Min.X
	h := dc.Max.Y - dc.Min.Y

	regions := map[geom.Plane]draw.Canvas{
		geom.XY: draw.Crop(dc, 0, -0.55*w, 0, 0),
		geom.ZY: draw.Crop(dc, 0.45*w, 0, 0.5*h, 0),
		geom.ZX: draw.Crop(dc, 0.45*w, 0, 0, -0.5*h),
	}

	for i := range s.Panels {
		p := &s.Panels[i]
		region, ok := regions[p.Plane]
		if !ok {
			return fmt.Errorf("no region for plane %v", p.Plane)
		}
		plt, err := st.panelPlot(p)
		if err != nil {
			return fmt.Errorf("could not create %v plot: %w", p.Plane, err)
		}
		switch p.Plane {
		case geom.XY:
			plt.Title.Text = s.Title
		case geom.ZY:
			plt.HideX()
		}
		plt.Draw(region)
	}
	return nil
}

type canvasFunc func(w, h vg.Length) vg.CanvasWriterTo

var canvases = map[string]canvasFunc{
	"png":  func(w, h vg.Length) vg.CanvasWriterTo { return vgimg.PngCanvas{Canvas: vgimg.New(w, h)} },
	"jpg":  func(w, h vg.Length) vg.CanvasWriterTo { return vgimg.JpegCanvas{Canvas: vgimg.New(w, h)} },
	"jpeg": func(w, h vg.Length) vg.CanvasWriterTo { return vgimg.JpegCanvas{Canvas: vgimg.New(w, h)} },
	"tif":  func(w, h vg.Length) vg.CanvasWriterTo { return vgimg.TiffCanvas{Canvas: vgimg.New(w, h)} },
	"tiff": func(w, h vg.Length) vg.CanvasWriterTo { return vgimg.TiffCanvas{Canvas: vgimg.New(w, h)} },
	"svg":  func(w, h vg.Length) vg.CanvasWriterTo { return vgsvg.New(w, h) },
	"pdf":  func(w, h vg.Length) vg.CanvasWriterTo { return vgpdf.New(w, h) },
	"eps":  func(w, h vg.Length) vg.CanvasWriterTo { return vgeps.New(w, h) },
}

func canvasFor(format string) (canvasFunc, error) {
	fn, ok := canvases[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	return fn, nil
}

// Write renders s in the given image format (png, jpg, tiff, svg, pdf or
// eps) to w.
func Write(w io.Writer, format string, s *Scene, st Style) error {
	newCanvas, err := canvasFor(format)
	if err != nil {
		return err
	}
	c := newCanvas(st.Width, st.Height)
	if err := Draw(draw.New(c), s, st); err != nil {
		return err
	}
	_, err = c.WriteTo(w)
	return err
}

// Save renders s to path, choosing the format from the file extension.
func Save(path string, s *Scene, st Style) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if _, err := canvasFor(format); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, format, s, st); err != nil {
		f.Close()
		return fmt.Errorf("could not render %s: %w", path, err)
	}
	return f.Close()
}
