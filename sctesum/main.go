package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/sctview"
	"github.com/decibelcooper/sctview/event"
	"github.com/decibelcooper/sctview/mctree"
)

var (
	nBins    = flag.Int("nbins", 50, "number of bins")
	eMin     = flag.Float64("min", 0, "lower edge of the histogram in TeV")
	eMax     = flag.Float64("max", 10, "upper edge of the histogram in TeV")
	logY     = flag.Bool("logy", false, "logarithmic y axis")
	title    = flag.String("title", "", "plot title")
	output   = flag.String("output", "esum.png", "output file")
	treeName = flag.String("tree", "", "ROOT tree name (default sct, then ana)")
	chunk    = flag.Int64("chunk", 1000, "number of events read at once")
	verbose  = flag.Bool("v", false, "verbose logging")

	edges = sctview.FloatArrayFlags{}
)

func init() {
	flag.Var(&edges, "edge", "bin edge in TeV, repeat for variable binning (overrides -nbins, -min and -max)")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <sct-input-files>...

Histograms the prompt energy sum per primary vertex of all events, one
histogram per input file.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 || *chunk < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	logger := sctview.NewLogger(*verbose)
	defer logger.Sync()

	if _, err := newHist(); err != nil {
		printUsage()
		log.Fatal(err)
	}

	p := newPlot(*logY)

	for i, filename := range flag.Args() {
		hist, _ := newHist()
		stats, err := fill(hist, filename, logger)
		if err != nil {
			logger.Fatal("could not process input", zap.String("file", filename), zap.Error(err))
		}
		logger.Info("processed input",
			zap.String("file", filename),
			zap.Int64("events", stats.events),
			zap.Int64("without_mc", stats.noMC),
		)

		h := hplot.NewH1D(hist)
		h.LineStyle.Color = sctview.SeriesColor(i)
		h.FillColor = nil
		h.Infos.Style = hplot.HInfoNone
		if flag.NArg() == 1 {
			h.Infos.Style = hplot.HInfoSummary
		}
		p.Add(h)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
		logger.Fatal("could not save plot", zap.Error(err))
	}
}

func newPlot(logY bool) *hplot.Plot {
	p := hplot.New()
	p.Title.Text = *title
	p.X.Label.Text = "esum[prompt]/Npv (TeV)"
	p.X.Tick.Marker = sctview.PreciseTicks{NSuggestedTicks: 5}
	if logY {
		p.Y.Tick.Marker = sctview.LogTicks{}
		p.Y.Scale = sctview.LogScale{}
	} else {
		p.Y.Tick.Marker = sctview.PreciseTicks{NSuggestedTicks: 5}
	}
	return p
}

func newHist() (*hbook.H1D, error) {
	if len(edges.Array) > 0 {
		if len(edges.Array) < 2 {
			return nil, fmt.Errorf("need at least two bin edges")
		}
		for i := 1; i < len(edges.Array); i++ {
			if edges.Array[i] <= edges.Array[i-1] {
				return nil, fmt.Errorf("bin edges must increase")
			}
		}
		return hbook.NewH1DFromEdges(edges.Array), nil
	}
	if *nBins < 1 || *eMax <= *eMin {
		return nil, fmt.Errorf("invalid binning %d bins in [%g, %g)", *nBins, *eMin, *eMax)
	}
	return hbook.NewH1D(*nBins, *eMin, *eMax), nil
}

type fillStats struct {
	events, noMC int64
}

// fill adds the prompt energy sum of every event in filename to hist.
func fill(hist *hbook.H1D, filename string, logger *zap.Logger) (fillStats, error) {
	var stats fillStats

	opts := []event.Option{event.WithLogger(logger)}
	if *treeName != "" {
		opts = append(opts, event.WithTree(*treeName))
	}
	src, err := event.Open(filename, opts...)
	if err != nil {
		return stats, err
	}
	defer src.Close()

	return fillFrom(hist, src, *chunk)
}

func fillFrom(hist *hbook.H1D, src event.Source, chunk int64) (fillStats, error) {
	var stats fillStats
	for start := int64(0); start < src.Len(); start += chunk {
		stop := start + chunk
		if stop > src.Len() {
			stop = src.Len()
		}
		evts, err := src.Read(start, stop)
		if err != nil {
			return stats, err
		}

		for i := range evts {
			stats.events++
			if !evts[i].HasMC() {
				stats.noMC++
				continue
			}
			tree, err := mctree.Build(evts[i].Record())
			if err != nil {
				return stats, fmt.Errorf("event %d: %w", evts[i].Index, err)
			}
			hist.Fill(tree.ESumPrompt/1e6, 1)
		}
	}
	return stats, nil
}
