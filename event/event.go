// Package event holds the per-event vertex, track and Monte-Carlo arrays
// of SCT files and reads them from ROOT and proio inputs.
package event

import (
	"github.com/decibelcooper/sctview/geom"
	"github.com/decibelcooper/sctview/mctree"
)

// Vertex is a reconstructed primary vertex.
type Vertex struct {
	X, Y, Z float64
}

func (v Vertex) Pos() geom.Vec3 { return geom.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// Track is a straight track state: a reference point and a momentum.
type Track struct {
	X, Y, Z    float64
	PX, PY, PZ float64
}

func (t Track) Origin() geom.Vec3   { return geom.Vec3{X: t.X, Y: t.Y, Z: t.Z} }
func (t Track) Momentum() geom.Vec3 { return geom.Vec3{X: t.PX, Y: t.PY, Z: t.PZ} }

// MCParticle is a generator particle. Its Track holds the production
// vertex and the momentum at production.
type MCParticle struct {
	Track
	M      float64
	PID    int
	Mother int
	Flag   mctree.Flag
}

// Event is one entry of an SCT file. Long and Velo hold the trk_* and
// vtrk_* track collections.
type Event struct {
	Index       int64
	Vertices    []Vertex
	Long        []Track
	Velo        []Track
	MC          []MCParticle
	NMCVertices int
}

// HasMC reports whether the event carries an MC record.
func (e *Event) HasMC() bool { return len(e.MC) > 0 }

// Record returns the MC arrays in the layout used by mctree.
func (e *Event) Record() *mctree.Record {
	n := len(e.MC)
	r := &mctree.Record{
		PX:     make([]float64, n),
		PY:     make([]float64, n),
		PZ:     make([]float64, n),
		M:      make([]float64, n),
		PID:    make([]int, n),
		Mother: make([]int, n),
		Flag:   make([]mctree.Flag, n),

		NPrimaryVertices: e.NMCVertices,
	}
	for i, p := range e.MC {
		r.PX[i], r.PY[i], r.PZ[i], r.M[i] = p.PX, p.PY, p.PZ, p.M
		r.PID[i], r.Mother[i], r.Flag[i] = p.PID, p.Mother, p.Flag
	}
	return r
}

// DaughterVertices returns, for every MC particle, the production vertices
// of its direct daughters. Invalid parent indices are ignored.
func (e *Event) DaughterVertices() [][]geom.Vec3 {
	out := make([][]geom.Vec3, len(e.MC))
	for _, p := range e.MC {
		if p.Mother < 0 || p.Mother >= len(e.MC) {
			continue
		}
		out[p.Mother] = append(out[p.Mother], p.Origin())
	}
	return out
}

// Points returns the vertex positions and the reference points of the
// reconstructed tracks.
func (e *Event) Points() []geom.Vec3 {
	pts := make([]geom.Vec3, 0, len(e.Vertices)+len(e.Long)+len(e.Velo))
	for _, v := range e.Vertices {
		pts = append(pts, v.Pos())
	}
	for _, trks := range [][]Track{e.Long, e.Velo} {
		for _, t := range trks {
			pts = append(pts, t.Origin())
		}
	}
	return pts
}

// MCPoints returns the production vertices of the MC particles.
func (e *Event) MCPoints() []geom.Vec3 {
	pts := make([]geom.Vec3, 0, len(e.MC))
	for _, p := range e.MC {
		pts = append(pts, p.Origin())
	}
	return pts
}
