package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/decibelcooper/sctview"
	"github.com/decibelcooper/sctview/event"
	"github.com/decibelcooper/sctview/geom"
	"github.com/decibelcooper/sctview/mctree"
)

var (
	eventIdx = flag.Int64("event", 0, "event index (0 is the first event)")
	allEvts  = flag.Bool("all", false, "print every event from -event on")
	check    = flag.Bool("check", false, "verify that branch energies add up to the total energy")
	treeName = flag.String("tree", "", "ROOT tree name (default sct, then ana)")
	verbose  = flag.Bool("v", false, "verbose logging")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <sct-input-file>

Prints the MC decay tree of events. Children are listed below their
parent, ordered by energy.

options:
`,
	)
	flag.PrintDefaults()
}

// errEnergy is returned by -check when the tree loses or gains energy.
var errEnergy = errors.New("branch energies do not add up to the total energy")

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
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

	// The tree printer draws nothing, so skip deriving display bounds.
	win, err := event.NewWindow(src, event.WithBounds(geom.Bounds{}))
	if err != nil {
		logger.Fatal("could not read events", zap.Error(err))
	}
	if err := win.Goto(*eventIdx); err != nil {
		logger.Fatal("invalid event", zap.Error(err))
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for {
		if err := printEvent(out, win.Current()); err != nil {
			out.Flush()
			logger.Fatal("could not print event", zap.Int64("event", win.Index()), zap.Error(err))
		}
		if !*allEvts {
			break
		}
		ok, err := win.Forward()
		if err != nil {
			out.Flush()
			logger.Fatal("could not read event", zap.Error(err))
		}
		if !ok {
			break
		}
	}
}

func printEvent(w io.Writer, evt *event.Event) error {
	if !evt.HasMC() {
		_, err := fmt.Fprintf(w, "event %d: no MC record\n", evt.Index)
		return err
	}

	rec := evt.Record()
	tree, err := mctree.Build(rec)
	if err != nil {
		return err
	}

	if *check {
		var flat float64
		for i := 0; i < rec.Len(); i++ {
			flat += rec.Energy(i)
		}
		if sum := tree.TotalEnergy(); math.Abs(sum-flat) > 1e-9*math.Max(1, math.Abs(flat)) {
			return fmt.Errorf("tree %g, particles %g: %w", sum, flat, errEnergy)
		}
	}

	if _, err := fmt.Fprintln(w, mctree.Header(evt.Index, tree)); err != nil {
		return err
	}
	return mctree.Format(w, tree)
}
