package event

import (
	"fmt"

	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"
	"go.uber.org/zap"

	"github.com/decibelcooper/sctview/geom"
	"github.com/decibelcooper/sctview/mctree"
)

// The eic model stores momenta and masses in GeV; SCT files use MeV.
const gevToMeV = 1e3

// ProioSource reads events from a proio stream written with the eic data
// model. Generator particles become the MC record, reconstructed tracks the
// Long collection, and the distinct production vertices of generator
// particles without parents the vertex collection.
type ProioSource struct {
	path string
	n    int64
	opts options
	log  *zap.Logger
}

// OpenProio opens a proio file and counts its events.
func OpenProio(path string, opts ...Option) (*ProioSource, error) {
	o := newOptions(opts)

	reader, err := proio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer reader.Close()

	var n int64
	for range reader.ScanEvents() {
		n++
	}

	src := &ProioSource{
		path: path,
		n:    n,
		opts: o,
		log:  o.logger.With(zap.String("file", path)),
	}
	src.log.Debug("opened proio stream", zap.Int64("events", n))
	return src, nil
}

func (s *ProioSource) Len() int64 { return s.n }

func (s *ProioSource) Read(start, stop int64) ([]Event, error) {
	if err := checkRange(start, stop, s.n); err != nil {
		return nil, err
	}

	reader, err := proio.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", s.path, err)
	}
	defer reader.Close()

	evts := make([]Event, 0, stop-start)
	var i int64
	for pevt := range reader.ScanEvents() {
		if i >= start && i < stop {
			evts = append(evts, s.convert(i, pevt))
		}
		i++
	}

	s.log.Debug("read events", zap.Int64("start", start), zap.Int64("stop", stop))
	return evts, nil
}

func (s *ProioSource) Close() error { return nil }

func (s *ProioSource) convert(index int64, pevt *proio.Event) Event {
	evt := Event{Index: index}

	final := make(map[uint64]bool)
	for _, id := range pevt.TaggedEntries(s.opts.finalTag) {
		final[id] = true
	}

	var (
		ids   []uint64
		parts []*eic.Particle
		pos   = make(map[uint64]int)
	)
	for _, id := range pevt.TaggedEntries(s.opts.mcTag) {
		if _, dup := pos[id]; dup {
			continue
		}
		part, ok := pevt.GetEntry(id).(*eic.Particle)
		if !ok {
			continue
		}
		pos[id] = len(parts)
		ids = append(ids, id)
		parts = append(parts, part)
	}

	seen := make(map[geom.Vec3]bool)
	evt.MC = make([]MCParticle, len(parts))
	for i, part := range parts {
		mother := -1
		for _, pid := range part.GetParent() {
			if j, ok := pos[pid]; ok {
				mother = j
				break
			}
		}

		var flag mctree.Flag
		if final[ids[i]] {
			flag |= mctree.FinalState
		}

		vtx, p := part.GetVertex(), part.GetP()
		evt.MC[i] = MCParticle{
			Track: Track{
				X: float64(vtx.GetX()), Y: float64(vtx.GetY()), Z: float64(vtx.GetZ()),
				PX: gevToMeV * float64(p.GetX()), PY: gevToMeV * float64(p.GetY()), PZ: gevToMeV * float64(p.GetZ()),
			},
			M:      gevToMeV * float64(part.GetMass()),
			PID:    int(part.GetPdg()),
			Mother: mother,
			Flag:   flag,
		}

		if mother == -1 {
			origin := evt.MC[i].Origin()
			if !seen[origin] {
				seen[origin] = true
				evt.Vertices = append(evt.Vertices, Vertex{X: origin.X, Y: origin.Y, Z: origin.Z})
			}
		}
	}
	evt.NMCVertices = len(evt.Vertices)

	for _, id := range pevt.TaggedEntries(s.opts.trackTag) {
		track, ok := pevt.GetEntry(id).(*eic.Track)
		if !ok || len(track.GetSegment()) == 0 {
			continue
		}
		seg := track.GetSegment()[0]
		vtx, poq := seg.GetVertex(), seg.GetPoq()
		evt.Long = append(evt.Long, Track{
			X: float64(vtx.GetX()), Y: float64(vtx.GetY()), Z: float64(vtx.GetZ()),
			PX: gevToMeV * float64(poq.GetX()), PY: gevToMeV * float64(poq.GetY()), PZ: gevToMeV * float64(poq.GetZ()),
		})
	}

	return evt
}
