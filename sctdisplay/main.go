package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/decibelcooper/sctview"
	"github.com/decibelcooper/sctview/display"
	"github.com/decibelcooper/sctview/event"
	"github.com/decibelcooper/sctview/geom"
)

var (
	first    = flag.Int64("first", 0, "index of the first event (0 is the first event)")
	nEvents  = flag.Int64("n", 1, "number of events to render")
	show     = flag.String("show", "", "categories to draw: vtx, trk, vtrk, mc or all (default from config)")
	mcSel    = flag.String("mc", "", "MC tracks to draw: all, final or longlived (default from config)")
	prefix   = flag.String("prefix", "event", "output file prefix")
	format   = flag.String("format", "png", "output format: png, jpg, tiff, svg, pdf or eps")
	cfgPath  = flag.String("config", "", "YAML display config")
	treeName = flag.String("tree", "", "ROOT tree name (default sct, then ana)")
	nThreads = flag.Int("t", 2, "number of concurrent renderings")
	debug    = flag.Bool("debug", false, "log a summary of every event")
	cpuProf  = flag.Bool("cpuprofile", false, "write a CPU profile to the working directory")
	project  = flag.Bool("projected", false, "clip reconstructed tracks per projection instead of in 3D")

	xlim, ylim, zlim sctview.RangeFlag
)

func init() {
	flag.Var(&xlim, "xlim", "x display limits in mm as lo,hi")
	flag.Var(&ylim, "ylim", "y display limits in mm as lo,hi")
	flag.Var(&zlim, "zlim", "z display limits in mm as lo,hi")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <sct-input-file>

Renders the xy, zx and zy projections of events to <prefix>-<event>.<format>.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 || *nEvents < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	logger := sctview.NewLogger(*debug)
	defer logger.Sync()

	cfg := sctview.DefaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = sctview.LoadConfig(*cfgPath); err != nil {
			logger.Fatal("could not load config", zap.Error(err))
		}
	}

	opts, err := sceneOptions(cfg)
	if err != nil {
		printUsage()
		log.Fatal(err)
	}
	style, err := display.StyleFromConfig(cfg)
	if err != nil {
		logger.Fatal("invalid style", zap.Error(err))
	}

	err = withProfile(*cpuProf, ".", func() error {
		return render(flag.Arg(0), cfg, opts, style, logger)
	})
	if err != nil {
		logger.Error("could not render events", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// withProfile runs fn, under a CPU profile written to dir when enabled.
// The profile is flushed whether or not fn fails.
func withProfile(enabled bool, dir string, fn func() error) error {
	if !enabled {
		return fn()
	}
	defer profile.Start(profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet).Stop()
	return fn()
}

// render draws the selected events of the input at path to image files.
func render(path string, cfg *sctview.Config, opts display.Options, style display.Style, logger *zap.Logger) error {
	srcOpts := []event.Option{event.WithLogger(logger)}
	if *treeName != "" {
		srcOpts = append(srcOpts, event.WithTree(*treeName))
	}
	src, err := event.Open(path, srcOpts...)
	if err != nil {
		return fmt.Errorf("could not open input: %w", err)
	}
	defer src.Close()

	winOpts := []event.WindowOption{
		event.WithCache(cfg.Cache.Before, cfg.Cache.After),
		event.WithPadding(cfg.Pad.XY, cfg.Pad.Z),
	}
	if *debug {
		winOpts = append(winOpts, event.WithDebug(logger))
	}
	win, err := event.NewWindow(src, winOpts...)
	if err != nil {
		return fmt.Errorf("could not read events: %w", err)
	}
	win.SetBounds(limits(win.Bounds(), cfg))
	logger.Info("display bounds", zap.Stringer("bounds", win.Bounds()), zap.Int64("events", win.Len()))

	scenes, err := display.Scenes(win, *first, *nEvents, opts)
	if err != nil {
		return fmt.Errorf("could not build scenes: %w", err)
	}

	jobs := make([]display.Job, len(scenes))
	for i, s := range scenes {
		jobs[i] = display.Job{Scene: s, Path: fmt.Sprintf("%s-%04d.%s", *prefix, s.Index, *format)}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := display.SaveAll(ctx, jobs, style, *nThreads, logger); err != nil {
		return err
	}
	logger.Info("wrote event displays", zap.Int("files", len(jobs)), zap.String("prefix", *prefix))
	return nil
}

func sceneOptions(cfg *sctview.Config) (display.Options, error) {
	var opts display.Options

	shown := cfg.Show
	if *show != "" {
		shown = []string{*show}
	}
	cats, err := display.ParseCategories(shown...)
	if err != nil {
		return opts, err
	}

	sel := cfg.MC
	if *mcSel != "" {
		sel = *mcSel
	}
	filter, err := display.ParseMCFilter(sel)
	if err != nil {
		return opts, err
	}

	opts.Show, opts.MC = cats, filter
	opts.Projected = *project
	return opts, nil
}

// limits applies the config limits, then the command-line limits, to b.
func limits(b geom.Bounds, cfg *sctview.Config) geom.Bounds {
	for _, l := range []struct {
		axis *geom.Range
		cfg  []float64
		flag sctview.RangeFlag
	}{
		{&b.X, cfg.Limits.X, xlim},
		{&b.Y, cfg.Limits.Y, ylim},
		{&b.Z, cfg.Limits.Z, zlim},
	} {
		if len(l.cfg) == 2 && l.cfg[1] > l.cfg[0] {
			*l.axis = geom.Range{Min: l.cfg[0], Max: l.cfg[1]}
		}
		if l.flag.IsSet {
			*l.axis = geom.Range{Min: l.flag.Min, Max: l.flag.Max}
		}
	}
	return b
}
