package event

import (
	"fmt"
	"reflect"

	"go-hep.org/x/hep/rootio"
	"go.uber.org/zap"

	"github.com/decibelcooper/sctview/mctree"
)

var (
	trackVars  = []string{"x", "y", "z", "px", "py", "pz"}
	vertexVars = []string{"x", "y", "z"}
	mcVars     = []string{"x", "y", "z", "px", "py", "pz", "m", "pid", "imot", "flag"}
)

// ROOTSource reads events from the SCT tree of a ROOT file.
type ROOTSource struct {
	f    *rootio.File
	tree rootio.Tree
	log  *zap.Logger

	vars []rootio.ScanVar
	cols map[string]reflect.Value

	hasVertices, hasLong, hasVelo, hasMC bool
}

// OpenROOT opens a ROOT file and locates its SCT tree. Missing vertex,
// track or MC branches leave the corresponding collections empty.
func OpenROOT(path string, opts ...Option) (*ROOTSource, error) {
	o := newOptions(opts)

	f, err := rootio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}

	names := []string{"sct", "ana"}
	if o.tree != "" {
		names = []string{o.tree}
	}
	var tree rootio.Tree
	for _, name := range names {
		obj, err := f.Get(name)
		if err != nil {
			continue
		}
		if t, ok := obj.(rootio.Tree); ok {
			tree = t
			break
		}
	}
	if tree == nil {
		f.Close()
		return nil, fmt.Errorf("%s: no tree named %v: %w", path, names, ErrFormat)
	}

	src := &ROOTSource{
		f:    f,
		tree: tree,
		log:  o.logger.With(zap.String("file", path), zap.String("tree", tree.Name())),
		cols: make(map[string]reflect.Value),
	}
	src.hasVertices = src.addGroup("vtx", vertexVars)
	src.hasLong = src.addGroup("trk", trackVars)
	src.hasVelo = src.addGroup("vtrk", trackVars)
	src.hasMC = src.addGroup("mc_trk", mcVars)
	if src.hasMC {
		src.addGroup("mc_vtx", []string{"len"})
	}
	if len(src.vars) == 0 {
		f.Close()
		return nil, fmt.Errorf("%s: tree %s has no SCT branches: %w", path, tree.Name(), ErrFormat)
	}

	src.log.Debug("opened SCT tree",
		zap.Int64("entries", tree.Entries()),
		zap.Bool("vertices", src.hasVertices),
		zap.Bool("long", src.hasLong),
		zap.Bool("velo", src.hasVelo),
		zap.Bool("mc", src.hasMC),
	)
	return src, nil
}

// addGroup registers the branches prefix_var for all vars. It registers
// nothing and returns false unless every branch exists.
func (s *ROOTSource) addGroup(prefix string, vars []string) bool {
	var (
		vs   []rootio.ScanVar
		cols = make(map[string]reflect.Value)
	)
	for _, v := range vars {
		name := prefix + "_" + v
		b := s.tree.Branch(name)
		if b == nil || len(b.Leaves()) == 0 {
			s.log.Debug("branch not found", zap.String("branch", name))
			return false
		}
		leaf := b.Leaves()[0]
		typ := leaf.Type()
		switch {
		case leaf.LeafCount() != nil:
			typ = reflect.SliceOf(typ)
		case leaf.Len() > 1:
			typ = reflect.ArrayOf(leaf.Len(), typ)
		}
		ptr := reflect.New(typ)
		cols[name] = ptr
		vs = append(vs, rootio.ScanVar{Name: name, Leaf: leaf.Name(), Value: ptr.Interface()})
	}

	s.vars = append(s.vars, vs...)
	for k, v := range cols {
		s.cols[k] = v
	}
	return true
}

func (s *ROOTSource) Len() int64 { return s.tree.Entries() }

func (s *ROOTSource) Read(start, stop int64) ([]Event, error) {
	if err := checkRange(start, stop, s.Len()); err != nil {
		return nil, err
	}

	sc, err := rootio.NewScannerVars(s.tree, s.vars...)
	if err != nil {
		return nil, fmt.Errorf("could not create scanner: %w", err)
	}
	defer sc.Close()

	if err := sc.SeekEntry(start); err != nil {
		return nil, fmt.Errorf("could not seek to entry %d: %w", start, err)
	}

	evts := make([]Event, 0, stop-start)
	for sc.Next() {
		entry := sc.Entry()
		if entry >= stop {
			break
		}
		if err := sc.Scan(); err != nil {
			return nil, fmt.Errorf("could not read entry %d: %w", entry, err)
		}
		evt, err := s.event(entry)
		if err != nil {
			return nil, err
		}
		evts = append(evts, evt)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not scan tree: %w", err)
	}

	s.log.Debug("read entries", zap.Int64("start", start), zap.Int64("stop", stop))
	return evts, nil
}

func (s *ROOTSource) floats(name string) []float64 {
	return toFloats(s.cols[name].Elem())
}

func (s *ROOTSource) ints(name string) []int {
	fs := s.floats(name)
	out := make([]int, len(fs))
	for i, f := range fs {
		out[i] = int(f)
	}
	return out
}

func (s *ROOTSource) tracks(prefix string) ([]Track, error) {
	cols := make([][]float64, len(trackVars))
	for i, v := range trackVars {
		cols[i] = s.floats(prefix + "_" + v)
		if len(cols[i]) != len(cols[0]) {
			return nil, fmt.Errorf("%s_%s has %d entries, %s_x has %d: %w", prefix, v, len(cols[i]), prefix, len(cols[0]), ErrFormat)
		}
	}
	trks := make([]Track, len(cols[0]))
	for i := range trks {
		trks[i] = Track{
			X: cols[0][i], Y: cols[1][i], Z: cols[2][i],
			PX: cols[3][i], PY: cols[4][i], PZ: cols[5][i],
		}
	}
	return trks, nil
}

func (s *ROOTSource) event(entry int64) (Event, error) {
	evt := Event{Index: entry}
	var err error

	if s.hasVertices {
		x, y, z := s.floats("vtx_x"), s.floats("vtx_y"), s.floats("vtx_z")
		if len(y) != len(x) || len(z) != len(x) {
			return evt, fmt.Errorf("entry %d: vtx arrays differ in length: %w", entry, ErrFormat)
		}
		evt.Vertices = make([]Vertex, len(x))
		for i := range x {
			evt.Vertices[i] = Vertex{X: x[i], Y: y[i], Z: z[i]}
		}
	}
	if s.hasLong {
		if evt.Long, err = s.tracks("trk"); err != nil {
			return evt, fmt.Errorf("entry %d: %w", entry, err)
		}
	}
	if s.hasVelo {
		if evt.Velo, err = s.tracks("vtrk"); err != nil {
			return evt, fmt.Errorf("entry %d: %w", entry, err)
		}
	}
	if s.hasMC {
		trks, err := s.tracks("mc_trk")
		if err != nil {
			return evt, fmt.Errorf("entry %d: %w", entry, err)
		}
		m := s.floats("mc_trk_m")
		pid := s.ints("mc_trk_pid")
		imot := s.ints("mc_trk_imot")
		flag := s.ints("mc_trk_flag")
		if len(m) != len(trks) || len(pid) != len(trks) || len(imot) != len(trks) || len(flag) != len(trks) {
			return evt, fmt.Errorf("entry %d: mc_trk arrays differ in length: %w", entry, ErrFormat)
		}
		evt.MC = make([]MCParticle, len(trks))
		for i, trk := range trks {
			evt.MC[i] = MCParticle{Track: trk, M: m[i], PID: pid[i], Mother: imot[i], Flag: mctree.Flag(flag[i])}
		}
		if v, ok := s.cols["mc_vtx_len"]; ok {
			if n := toFloats(v.Elem()); len(n) == 1 {
				evt.NMCVertices = int(n[0])
			}
		}
	}
	return evt, nil
}

func (s *ROOTSource) Close() error { return s.f.Close() }

// toFloats converts a numeric scalar, array or slice to float64 values.
func toFloats(v reflect.Value) []float64 {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]float64, v.Len())
		for i := range out {
			out[i] = toFloat(v.Index(i))
		}
		return out
	default:
		return []float64{toFloat(v)}
	}
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Bool:
		if v.Bool() {
			return 1
		}
	}
	return 0
}
