package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"

	"go-hep.org/x/hep/hbook"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/sctview"
	"github.com/decibelcooper/sctview/event"
	"github.com/decibelcooper/sctview/mctree"
)

var (
	pTMin    = flag.Float64("minpt", 0.5, "minimum transverse momentum in GeV")
	etaMin   = flag.Float64("etamin", 2, "minimum eta")
	etaMax   = flag.Float64("etamax", 5, "maximum eta")
	nBins    = flag.Int("nbins", 30, "number of bins")
	title    = flag.String("title", "", "plot title")
	prefix   = flag.String("prefix", "eff", "output file prefix")
	treeName = flag.String("tree", "", "ROOT tree name (default sct, then ana)")
	chunk    = flag.Int64("chunk", 1000, "number of events read at once")
	verbose  = flag.Bool("v", false, "verbose logging")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <sct-input-files>...

Plots the fraction of charged final-state MC particles that are associated
with a reconstructed track, versus eta. Writes <prefix>.pdf and <prefix>.png.

options:
`,
	)
	flag.PrintDefaults()
}

// chargedStable holds the absolute PDG codes of long-lived charged
// particles that leave tracks.
var chargedStable = map[int]bool{
	11: true, 13: true, 211: true, 321: true, 2212: true,
	3112: true, 3312: true, 3334: true,
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 || *nBins < 1 || *etaMax <= *etaMin || *chunk < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	logger := sctview.NewLogger(*verbose)
	defer logger.Sync()

	p, err := plot.New()
	if err != nil {
		logger.Fatal("could not create plot", zap.Error(err))
	}
	p.Title.Text = *title
	p.X.Label.Text = "eta"
	p.Y.Label.Text = "track association efficiency"
	p.X.Tick.Marker = sctview.PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = sctview.PreciseTicks{NSuggestedTicks: 5}

	for i, filename := range flag.Args() {
		c := newCounter(*nBins, *etaMin, *etaMax, *pTMin*1e3)
		if err := c.fillFile(filename, logger); err != nil {
			logger.Fatal("could not process input", zap.String("file", filename), zap.Error(err))
		}

		label := ""
		if flag.NArg() > 1 {
			label = filename
		}
		if err := addSeries(p, label, c.efficiency(), sctview.SeriesColor(i)); err != nil {
			logger.Fatal("could not plot efficiency", zap.Error(err))
		}
	}

	for _, ext := range []string{".pdf", ".png"} {
		if err := p.Save(6*vg.Inch, 4*vg.Inch, *prefix+ext); err != nil {
			logger.Fatal("could not save plot", zap.Error(err))
		}
	}
}

// addSeries draws pts as error bars in color c. A non-empty label adds a
// legend entry, shown with the point marker.
func addSeries(p *plot.Plot, label string, pts plotutil.ErrorPoints, c color.Color) error {
	xerr, err := plotter.NewXErrorBars(pts)
	if err != nil {
		return err
	}
	yerr, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return err
	}
	marks, err := plotter.NewScatter(pts.XYs)
	if err != nil {
		return err
	}
	xerr.LineStyle.Color = c
	yerr.LineStyle.Color = c
	marks.GlyphStyle.Color = c
	marks.GlyphStyle.Radius = vg.Points(1.5)

	p.Add(xerr, yerr, marks)
	if label != "" {
		p.Legend.Add(label, marks)
	}
	return nil
}

// counter histograms the eta of all selected MC particles and of those
// associated with a track.
type counter struct {
	all, associated *hbook.H1D
	nBins           int
	etaMin, etaMax  float64
	pTMin           float64 // MeV
}

func newCounter(nBins int, etaMin, etaMax, pTMin float64) *counter {
	return &counter{
		all:        hbook.NewH1D(nBins, etaMin, etaMax),
		associated: hbook.NewH1D(nBins, etaMin, etaMax),
		nBins:      nBins,
		etaMin:     etaMin,
		etaMax:     etaMax,
		pTMin:      pTMin,
	}
}

func (c *counter) fillFile(filename string, logger *zap.Logger) error {
	opts := []event.Option{event.WithLogger(logger)}
	if *treeName != "" {
		opts = append(opts, event.WithTree(*treeName))
	}
	src, err := event.Open(filename, opts...)
	if err != nil {
		return err
	}
	defer src.Close()

	return c.fill(src, *chunk)
}

func (c *counter) fill(src event.Source, chunk int64) error {
	for start := int64(0); start < src.Len(); start += chunk {
		stop := start + chunk
		if stop > src.Len() {
			stop = src.Len()
		}
		evts, err := src.Read(start, stop)
		if err != nil {
			return err
		}
		for i := range evts {
			c.fillEvent(&evts[i])
		}
	}
	return nil
}

func (c *counter) fillEvent(evt *event.Event) {
	for _, part := range evt.MC {
		if part.Flag&mctree.FinalState == 0 {
			continue
		}
		pid := part.PID
		if pid < 0 {
			pid = -pid
		}
		if !chargedStable[pid] {
			continue
		}

		pMag := math.Sqrt(part.PX*part.PX + part.PY*part.PY + part.PZ*part.PZ)
		pT := math.Hypot(part.PX, part.PY)
		// cuts
		if pT < c.pTMin || pMag == 0 {
			continue
		}
		eta := math.Atanh(part.PZ / pMag)

		c.all.Fill(eta, 1)
		if part.Flag&mctree.TrackAssociated != 0 {
			c.associated.Fill(eta, 1)
		}
	}
}

// efficiency returns the associated fraction per bin with binomial
// errors. Bins without particles are left at zero.
func (c *counter) efficiency() plotutil.ErrorPoints {
	points := make(plotter.XYs, c.nBins)
	xErrors := make(plotter.XErrors, c.nBins)
	yErrors := make(plotter.YErrors, c.nBins)
	binHalfWidth := (c.etaMax - c.etaMin) / float64(2*c.nBins)
	binSigma := binHalfWidth / math.Sqrt(3.)
	for i := range points {
		trueX, trueY := c.all.XY(i)

		points[i].X = trueX + binHalfWidth
		xErrors[i].Low = binSigma
		xErrors[i].High = binSigma

		_, trackY := c.associated.XY(i)
		if trueY > 0 {
			points[i].Y = trackY / trueY
			yErrors[i].Low = math.Sqrt((1 - trackY/trueY) * trackY / math.Pow(trueY, 2))
			yErrors[i].High = yErrors[i].Low
		}
	}
	return plotutil.ErrorPoints{XYs: points, XErrors: xErrors, YErrors: yErrors}
}
