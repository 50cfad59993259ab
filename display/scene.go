// Package display turns events into the xy, zx and zy projections and
// renders them with gonum/plot.
package display

import (
	"fmt"

	"github.com/decibelcooper/sctview/event"
	"github.com/decibelcooper/sctview/geom"
	"github.com/decibelcooper/sctview/mctree"
)

// Panel is the content of one projection.
type Panel struct {
	Plane geom.Plane
	H, V  geom.Range

	Vertices []geom.Point
	Segments map[Category][]geom.Segment2
}

// Scene holds the three projections of an event.
type Scene struct {
	Index  int64
	Title  string
	Bounds geom.Bounds
	Panels []Panel
}

// Panel returns the panel of plane p.
func (s *Scene) Panel(p geom.Plane) *Panel {
	for i := range s.Panels {
		if s.Panels[i].Plane == p {
			return &s.Panels[i]
		}
	}
	return nil
}

// Options controls which parts of an event are drawn.
type Options struct {
	Show Categories
	MC   MCFilter

	// NEvents is the number of events in the input, used in the title.
	NEvents int64

	// Projected clips reconstructed tracks in each plane against the
	// panel rectangle instead of against the 3D bounds.
	Projected bool
}

// BuildScene projects ev onto the display planes. Reconstructed tracks run
// from their reference point to the edge of b. MC tracks stop at the
// nearest production vertex of one of their daughters.
func BuildScene(ev *event.Event, b geom.Bounds, opts Options) (*Scene, error) {
	segs := make(map[Category][]geom.Segment)
	recoTracks := map[Category][]event.Track{}
	if opts.Show.Has(Long) {
		recoTracks[Long] = ev.Long
	}
	if opts.Show.Has(Velo) {
		recoTracks[Velo] = ev.Velo
	}
	if !opts.Projected {
		for c, trks := range recoTracks {
			segs[c] = raySegments(trks, b)
		}
	}
	if opts.Show.Has(MC) && ev.HasMC() {
		mc, err := mcSegments(ev, b, opts.MC)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", ev.Index, err)
		}
		segs[MC] = mc
	}

	s := &Scene{Index: ev.Index, Title: Title(ev, opts.NEvents), Bounds: b}
	for _, plane := range geom.Planes {
		h, v := plane.Ranges(b)
		p := Panel{Plane: plane, H: h, V: v, Segments: make(map[Category][]geom.Segment2)}
		if opts.Show.Has(Vertices) {
			for _, vtx := range ev.Vertices {
				p.Vertices = append(p.Vertices, plane.Project(vtx.Pos()))
			}
		}
		for c, ss := range segs {
			out := make([]geom.Segment2, len(ss))
			for i, seg := range ss {
				out[i] = plane.ProjectSegment(seg)
			}
			p.Segments[c] = out
		}
		if opts.Projected {
			for c, trks := range recoTracks {
				p.Segments[c] = projectedSegments(trks, plane, h, v)
			}
		}
		s.Panels = append(s.Panels, p)
	}
	return s, nil
}

func raySegments(trks []event.Track, b geom.Bounds) []geom.Segment {
	segs := make([]geom.Segment, 0, len(trks))
	for _, trk := range trks {
		if seg, ok := geom.ClipRay(trk.Origin(), trk.Momentum(), b); ok {
			segs = append(segs, seg)
		}
	}
	return segs
}

func projectedSegments(trks []event.Track, plane geom.Plane, h, v geom.Range) []geom.Segment2 {
	segs := make([]geom.Segment2, 0, len(trks))
	for _, trk := range trks {
		a, d := plane.Project(trk.Origin()), plane.Project(trk.Momentum())
		if seg, ok := geom.ClipRay2(a, d, h, v); ok {
			segs = append(segs, seg)
		}
	}
	return segs
}

func mcSegments(ev *event.Event, b geom.Bounds, filter MCFilter) ([]geom.Segment, error) {
	flags, err := mctree.Classify(ev.Record())
	if err != nil {
		return nil, err
	}

	daughters := ev.DaughterVertices()
	segs := make([]geom.Segment, 0, len(ev.MC))
	for i, p := range ev.MC {
		if !filter.accepts(flags[i]) {
			continue
		}
		origin, dir := p.Origin(), p.Momentum()
		stop := geom.NearestAhead(origin, dir, daughters[i])
		if seg, ok := geom.ClipTrack(origin, dir, b, stop); ok {
			segs = append(segs, seg)
		}
	}
	return segs, nil
}

// Title is the figure title of ev, numbering events from 1.
func Title(ev *event.Event, nevents int64) string {
	return fmt.Sprintf("Event %d / %d    n_vtx = %d    n_VELO = %d    n_Long = %d",
		ev.Index+1, nevents, len(ev.Vertices), len(ev.Velo), len(ev.Long))
}
