package geom

import "math"

// exitStep returns the ray parameter at which origin + t*dir leaves the box
// [lo, hi] on the given components. For every component with a non-zero
// direction the bound ahead of the ray is used: hi when moving up, lo when
// moving down. An origin already past that bound yields 0, so the ray never
// turns around.
func exitStep(origin, dir []float64, lo, hi []float64) (float64, bool) {
	step := math.Inf(1)
	for i, d := range dir {
		if d == 0 {
			continue
		}
		lim := lo[i]
		if d > 0 {
			lim = hi[i]
		}
		t := (lim - origin[i]) / d
		if t < 0 {
			t = 0
		}
		step = math.Min(step, t)
	}
	if math.IsInf(step, 1) {
		return 0, false
	}
	return step, true
}

// ClipRay extends the track starting at origin with direction dir until it
// leaves b. It reports false if dir is zero.
func ClipRay(origin, dir Vec3, b Bounds) (Segment, bool) {
	step, ok := rayStep(origin, dir, b)
	if !ok {
		return Segment{}, false
	}
	return Segment{From: origin, To: origin.Add(dir.Scale(step))}, true
}

func rayStep(origin, dir Vec3, b Bounds) (float64, bool) {
	var o, d, lo, hi [3]float64
	for i := range o {
		o[i], d[i] = origin.axis(i), dir.axis(i)
		lo[i], hi[i] = b.axis(i).Min, b.axis(i).Max
	}
	return exitStep(o[:], d[:], lo[:], hi[:])
}

// ClipTrack is like ClipRay, but stops the track at the production vertex
// of a daughter when stop is not nil. The segment ends at the point of the
// ray closest to the vertex, provided that point lies ahead of origin and
// before the exit from b.
func ClipTrack(origin, dir Vec3, b Bounds, stop *Vec3) (Segment, bool) {
	step, ok := rayStep(origin, dir, b)
	if !ok {
		return Segment{}, false
	}
	if stop != nil {
		if t := stop.Sub(origin).Dot(dir) / dir.Dot(dir); t > 0 && t < step {
			step = t
		}
	}
	return Segment{From: origin, To: origin.Add(dir.Scale(step))}, true
}

// ClipRay2 extends a projected track starting at a with direction d until
// it leaves the rectangle spanned by h and v.
func ClipRay2(a, d Point, h, v Range) (Segment2, bool) {
	step, ok := exitStep(
		[]float64{a.X, a.Y},
		[]float64{d.X, d.Y},
		[]float64{h.Min, v.Min},
		[]float64{h.Max, v.Max},
	)
	if !ok {
		return Segment2{}, false
	}
	return Segment2{From: a, To: Point{a.X + d.X*step, a.Y + d.Y*step}}, true
}

// NearestAhead returns the vertex in candidates with the smallest positive
// ray parameter along dir from origin, or nil if none lies ahead.
func NearestAhead(origin, dir Vec3, candidates []Vec3) *Vec3 {
	norm := dir.Dot(dir)
	if norm == 0 {
		return nil
	}

	var (
		best  *Vec3
		bestT = math.Inf(1)
	)
	for i := range candidates {
		t := candidates[i].Sub(origin).Dot(dir) / norm
		if t > 0 && t < bestT {
			best, bestT = &candidates[i], t
		}
	}
	return best
}
