package event

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/decibelcooper/sctview/geom"
)

// Default number of events cached before and after the current one.
const (
	DefaultBefore = 50
	DefaultAfter  = 100
)

// Window steps through the events of a Source, keeping the events in
// [i-before, i+after) of the current index i in memory.
type Window struct {
	src           Source
	n             int64
	before, after int64
	debug         bool
	log           *zap.Logger

	cur         int64
	start, stop int64
	cache       []Event

	bounds      geom.Bounds
	haveBounds  bool
	padXY, padZ float64
}

// WindowOption configures a Window.
type WindowOption func(*Window)

// WithCache sets the number of events cached before and after the current
// event.
func WithCache(before, after int64) WindowOption {
	return func(w *Window) {
		if before >= 0 {
			w.before = before
		}
		if after > 0 {
			w.after = after
		}
	}
}

// WithBounds fixes the display bounds instead of deriving them from the
// first cached events.
func WithBounds(b geom.Bounds) WindowOption {
	return func(w *Window) {
		w.bounds, w.haveBounds = b, true
	}
}

// WithPadding sets the margins added around the data when deriving the
// display bounds.
func WithPadding(xy, z float64) WindowOption {
	return func(w *Window) {
		w.padXY, w.padZ = xy, z
	}
}

// WithDebug logs a summary of every event that becomes current.
func WithDebug(l *zap.Logger) WindowOption {
	return func(w *Window) {
		w.debug = true
		w.log = l
	}
}

// NewWindow positions a window on the first event of src.
func NewWindow(src Source, opts ...WindowOption) (*Window, error) {
	w := &Window{
		src:    src,
		n:      src.Len(),
		before: DefaultBefore,
		after:  DefaultAfter,
		log:    zap.NewNop(),
		padXY:  geom.PadXY,
		padZ:   geom.PadZ,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.n == 0 {
		return nil, ErrEmpty
	}

	if err := w.load(0); err != nil {
		return nil, err
	}
	if !w.haveBounds {
		if err := w.initBounds(); err != nil {
			return nil, err
		}
	}
	w.report()
	return w, nil
}

func (w *Window) initBounds() error {
	var pts [][]geom.Vec3
	for i := range w.cache {
		pts = append(pts, w.cache[i].Points())
	}
	b, err := geom.BoundsOf(w.padXY, w.padZ, pts...)
	if err != nil {
		// No reconstruction in the file: fall back to the MC record.
		pts = pts[:0]
		for i := range w.cache {
			pts = append(pts, w.cache[i].MCPoints())
		}
		if b, err = geom.BoundsOf(w.padXY, w.padZ, pts...); err != nil {
			return fmt.Errorf("could not compute display bounds: %w", err)
		}
	}
	w.bounds, w.haveBounds = b, true
	return nil
}

// load caches the events around i and makes i current.
func (w *Window) load(i int64) error {
	start := i - w.before
	if start < 0 {
		start = 0
	}
	stop := i + w.after
	if stop > w.n {
		stop = w.n
	}

	evts, err := w.src.Read(start, stop)
	if err != nil {
		return fmt.Errorf("could not read events [%d, %d): %w", start, stop, err)
	}
	if int64(len(evts)) != stop-start {
		return fmt.Errorf("read %d events for [%d, %d): %w", len(evts), start, stop, ErrFormat)
	}

	w.cache, w.start, w.stop, w.cur = evts, start, stop, i
	return nil
}

func (w *Window) move(i int64) error {
	if i < w.start || i >= w.stop {
		if err := w.load(i); err != nil {
			return err
		}
	}
	w.cur = i
	w.report()
	return nil
}

func (w *Window) report() {
	if !w.debug {
		return
	}
	e := w.Current()
	w.log.Debug(fmt.Sprintf("debug log for event %d", w.cur+1),
		zap.Int64("index", w.cur),
		zap.Int("vertices", len(e.Vertices)),
		zap.Int("long", len(e.Long)),
		zap.Int("velo", len(e.Velo)),
		zap.Int("mc", len(e.MC)),
		zap.Int64("cache_start", w.start),
		zap.Int64("cache_stop", w.stop),
	)
}

// Len returns the number of events in the source.
func (w *Window) Len() int64 { return w.n }

// Index returns the index of the current event.
func (w *Window) Index() int64 { return w.cur }

// Current returns the current event.
func (w *Window) Current() *Event { return &w.cache[w.cur-w.start] }

// Cached returns the range of cached event indices.
func (w *Window) Cached() (start, stop int64) { return w.start, w.stop }

// Bounds returns the display bounds.
func (w *Window) Bounds() geom.Bounds { return w.bounds }

// SetBounds replaces the display bounds.
func (w *Window) SetBounds(b geom.Bounds) { w.bounds = b }

// Forward moves to the next event. It returns false at the last event.
func (w *Window) Forward() (bool, error) {
	if w.cur == w.n-1 {
		return false, nil
	}
	return true, w.move(w.cur + 1)
}

// Backward moves to the previous event. It returns false at the first
// event.
func (w *Window) Backward() (bool, error) {
	if w.cur == 0 {
		return false, nil
	}
	return true, w.move(w.cur - 1)
}

// Goto moves to event i.
func (w *Window) Goto(i int64) error {
	if i < 0 || i >= w.n {
		return fmt.Errorf("event %d of %d: %w", i, w.n, ErrOutOfRange)
	}
	return w.move(i)
}
