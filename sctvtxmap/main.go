package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"go-hep.org/x/hep/hbook"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/decibelcooper/sctview"
	"github.com/decibelcooper/sctview/event"
	"github.com/decibelcooper/sctview/geom"
)

var (
	planeName = flag.String("plane", "zx", "projection plane (xy, zx or zy)")
	stat      = flag.String("stat", "count", "bin value: count, or mean or rms of the out-of-plane coordinate")
	useMC     = flag.Bool("mc", false, "use MC production vertices instead of reconstructed vertices")
	nBinsH    = flag.Int("nbinsh", 40, "number of horizontal bins")
	nBinsV    = flag.Int("nbinsv", 40, "number of vertical bins")
	zMax      = flag.Float64("zmax", 0, "maximum of the color map (default: largest bin value)")
	title     = flag.String("title", "", "plot title")
	output    = flag.String("output", "vtxmap.png", "output file")
	treeName  = flag.String("tree", "", "ROOT tree name (default sct, then ana)")
	chunk     = flag.Int64("chunk", 1000, "number of events read at once")
	verbose   = flag.Bool("v", false, "verbose logging")
	hLim      sctview.RangeFlag
	vLim      sctview.RangeFlag
)

func init() {
	flag.Var(&hLim, "hlim", "horizontal axis range lo,hi in mm (default: from the first chunk)")
	flag.Var(&vLim, "vlim", "vertical axis range lo,hi in mm (default: from the first chunk)")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <sct-input-file>

Fills a heat map of vertex positions projected onto one plane.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	plane, err := geom.ParsePlane(*planeName)
	if flag.NArg() != 1 || err != nil || *nBinsH < 1 || *nBinsV < 1 || *chunk < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	value, ok := statFuncs[*stat]
	if !ok {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	logger := sctview.NewLogger(*verbose)
	defer logger.Sync()

	opts := []event.Option{event.WithLogger(logger)}
	if *treeName != "" {
		opts = append(opts, event.WithTree(*treeName))
	}
	src, err := event.Open(flag.Arg(0), opts...)
	if err != nil {
		logger.Fatal("could not open input", zap.Error(err))
	}
	defer src.Close()

	grid, err := fillGrid(src, plane, *chunk, *useMC)
	if err != nil {
		logger.Fatal("could not fill map", zap.Error(err))
	}
	grid.value = value

	p, err := plot.New()
	if err != nil {
		logger.Fatal("could not create plot", zap.Error(err))
	}
	h, v := plane.Axes()
	p.Title.Text = *title
	p.X.Label.Text = h + " / mm"
	p.Y.Label.Text = v + " / mm"
	p.X.Tick.Marker = sctview.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = sctview.PreciseTicks{NSuggestedTicks: 5}

	img := vgimg.New(670, 400)
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)

	lo, hi := colorRange(grid, *stat == "mean", *zMax)
	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(lo)
	colorMap.SetMax(hi)
	pal := colorMap.Palette(1000)
	heatMap := plotter.NewHeatMap(grid, pal)
	heatMap.Min = lo
	heatMap.Max = hi
	p.Add(heatMap)

	p.Draw(dc0)

	p, _ = plot.New()

	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	p.Add(colorBar)
	p.HideX()
	p.Y.Padding = 0

	p.Draw(dc1)

	w, err := os.Create(*output)
	if err != nil {
		logger.Fatal("could not create output", zap.Error(err))
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(w); err != nil {
		logger.Fatal("could not write output", zap.Error(err))
	}
	if err := w.Close(); err != nil {
		logger.Fatal("could not write output", zap.Error(err))
	}
	logger.Info("wrote vertex map", zap.String("output", *output), zap.Stringer("plane", plane))
}

// fillGrid reads all events of src and fills the positions onto a grid.
// The grid covers the -hlim and -vlim ranges, or else the padded bounds
// of the first chunk.
func fillGrid(src event.Source, plane geom.Plane, chunk int64, mc bool) (*VertexGrid, error) {
	var grid *VertexGrid
	for start := int64(0); start < src.Len(); start += chunk {
		stop := start + chunk
		if stop > src.Len() {
			stop = src.Len()
		}
		evts, err := src.Read(start, stop)
		if err != nil {
			return nil, err
		}

		if grid == nil {
			hr, vr, err := gridRanges(evts, plane, mc)
			if err != nil {
				return nil, err
			}
			grid = NewVertexGrid(*nBinsH, hr, *nBinsV, vr)
		}

		for i := range evts {
			for _, pos := range positions(&evts[i], mc) {
				pt := plane.Project(pos)
				grid.Fill(pt.X, pt.Y, plane.Depth(pos))
			}
		}
	}
	if grid == nil {
		return nil, event.ErrEmpty
	}
	return grid, nil
}

func gridRanges(evts []event.Event, plane geom.Plane, mc bool) (h, v geom.Range, err error) {
	if !hLim.IsSet || !vLim.IsSet {
		var points [][]geom.Vec3
		for i := range evts {
			points = append(points, positions(&evts[i], mc))
		}
		b, err := geom.BoundsOf(geom.PadXY, geom.PadZ, points...)
		if err != nil {
			return h, v, err
		}
		h, v = plane.Ranges(b)
	}
	if hLim.IsSet {
		h = geom.Range{Min: hLim.Min, Max: hLim.Max}
	}
	if vLim.IsSet {
		v = geom.Range{Min: vLim.Min, Max: vLim.Max}
	}
	return h, v, nil
}

func positions(evt *event.Event, mc bool) []geom.Vec3 {
	if mc {
		return evt.MCPoints()
	}
	out := make([]geom.Vec3, len(evt.Vertices))
	for i, vtx := range evt.Vertices {
		out[i] = vtx.Pos()
	}
	return out
}

var statFuncs = map[string]func(n, sum, sum2 float64) float64{
	"count": func(n, _, _ float64) float64 { return n },
	"mean": func(n, sum, _ float64) float64 {
		if n < 1 {
			return math.NaN()
		}
		return sum / n
	},
	"rms": func(n, sum, sum2 float64) float64 {
		if n < 3 {
			return math.NaN()
		}
		mean := sum / n
		return math.Sqrt(math.Max(sum2/n-mean*mean, 0))
	},
}

// VertexGrid accumulates the count and the first two moments of a value
// per bin. It implements plotter.GridXYZ. Bins where the statistic is
// undefined hold NaN and are left blank by the heat map.
type VertexGrid struct {
	hCount, hV, hV2 *hbook.H2D
	nBinsX, nBinsY  int
	value           func(n, sum, sum2 float64) float64
}

func NewVertexGrid(nBinsX int, x geom.Range, nBinsY int, y geom.Range) *VertexGrid {
	return &VertexGrid{
		hCount: hbook.NewH2D(nBinsX, x.Min, x.Max, nBinsY, y.Min, y.Max),
		hV:     hbook.NewH2D(nBinsX, x.Min, x.Max, nBinsY, y.Min, y.Max),
		hV2:    hbook.NewH2D(nBinsX, x.Min, x.Max, nBinsY, y.Min, y.Max),
		nBinsX: nBinsX,
		nBinsY: nBinsY,
		value:  statFuncs["count"],
	}
}

func (g *VertexGrid) Fill(x, y, z float64) {
	g.hCount.Fill(x, y, 1)
	g.hV.Fill(x, y, z)
	g.hV2.Fill(x, y, z*z)
}

func (g *VertexGrid) Dims() (int, int) {
	return g.nBinsX, g.nBinsY
}

func (g *VertexGrid) Z(i, j int) float64 {
	return g.value(
		g.hCount.GridXYZ().Z(i, j),
		g.hV.GridXYZ().Z(i, j),
		g.hV2.GridXYZ().Z(i, j),
	)
}

func (g *VertexGrid) X(i int) float64 {
	return g.hCount.GridXYZ().X(i)
}

func (g *VertexGrid) Y(j int) float64 {
	return g.hCount.GridXYZ().Y(j)
}

// zRange returns the extent of the defined bin values, or [0, 1] when no
// bin has a value.
func (g *VertexGrid) zRange() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for i := 0; i < g.nBinsX; i++ {
		for j := 0; j < g.nBinsY; j++ {
			z := g.Z(i, j)
			if math.IsNaN(z) {
				continue
			}
			min = math.Min(min, z)
			max = math.Max(max, z)
		}
	}
	if min > max {
		return 0, 1
	}
	return min, max
}

// colorRange is the color map extent. Counts and spreads start at zero.
// Means are signed and span the filled bins. A positive zMax replaces the
// upper end.
func colorRange(g *VertexGrid, signed bool, zMax float64) (lo, hi float64) {
	min, max := g.zRange()
	if signed {
		lo = min
	}
	hi = max
	if zMax > 0 {
		hi = zMax
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}
