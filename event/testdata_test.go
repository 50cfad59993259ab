package event

import "github.com/decibelcooper/sctview/mctree"

// countingSource records the ranges requested from the wrapped source.
type countingSource struct {
	Source
	reads [][2]int64
}

func (s *countingSource) Read(start, stop int64) ([]Event, error) {
	s.reads = append(s.reads, [2]int64{start, stop})
	return s.Source.Read(start, stop)
}

// makeEvents returns n events whose vertex x coordinate equals the event
// index.
func makeEvents(n int) []Event {
	evts := make([]Event, n)
	for i := range evts {
		x := float64(i)
		evts[i] = Event{
			Vertices: []Vertex{{X: x, Y: 0, Z: 0}},
			Long:     []Track{{X: x, Y: 1, Z: -5, PX: 1, PY: 1, PZ: 100}},
			Velo:     []Track{{X: 0, Y: -1, Z: 20, PX: -1, PY: 0, PZ: -50}},
			MC: []MCParticle{
				{Track: Track{PZ: 1000}, M: 5279, PID: 511, Mother: -1},
				{Track: Track{Z: 10, PZ: 500}, M: 139.6, PID: 211, Mother: 0, Flag: mctree.FinalState},
				{Track: Track{Z: 12, PZ: 400}, M: 493.7, PID: -321, Mother: 0, Flag: mctree.FinalState},
			},
			NMCVertices: 1,
		}
	}
	return evts
}
