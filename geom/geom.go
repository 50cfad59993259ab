// Package geom projects 3D tracks onto the display planes and clips
// track rays to the display volume.
package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoPoints is returned when bounds are requested for an empty point set.
var ErrNoPoints = errors.New("geom: no points")

// Vec3 is a point or direction in detector coordinates (mm or MeV/c).
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) IsZero() bool         { return v.X == 0 && v.Y == 0 && v.Z == 0 }

func (v Vec3) axis(i int) float64 { return [3]float64{v.X, v.Y, v.Z}[i] }

// Segment is a straight piece of a track.
type Segment struct {
	From, To Vec3
}

// Point is a position on a display plane.
type Point struct {
	X, Y float64
}

// Segment2 is a Segment projected onto a display plane.
type Segment2 struct {
	From, To Point
}

// Range is a closed interval on one axis.
type Range struct {
	Min, Max float64
}

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Pad widens r by d on both sides.
func (r Range) Pad(d float64) Range {
	return Range{Min: r.Min - d, Max: r.Max + d}
}

// Extend widens r to include v.
func (r Range) Extend(v float64) Range {
	return Range{Min: math.Min(r.Min, v), Max: math.Max(r.Max, v)}
}

// Bounds is an axis-aligned box.
type Bounds struct {
	X, Y, Z Range
}

func (b Bounds) axis(i int) Range { return [3]Range{b.X, b.Y, b.Z}[i] }

// Pad widens every axis of b by d on both sides.
func (b Bounds) Pad(d float64) Bounds {
	return Bounds{X: b.X.Pad(d), Y: b.Y.Pad(d), Z: b.Z.Pad(d)}
}

func (b Bounds) Contains(v Vec3) bool {
	return b.X.Contains(v.X) && b.Y.Contains(v.Y) && b.Z.Contains(v.Z)
}

func (b Bounds) String() string {
	return fmt.Sprintf("x [%g, %g] y [%g, %g] z [%g, %g]", b.X.Min, b.X.Max, b.Y.Min, b.Y.Max, b.Z.Min, b.Z.Max)
}

// Default paddings added around the data when computing display bounds.
const (
	PadXY = 1.0
	PadZ  = 10.0
)

// BoundsOf returns the smallest box holding all points, padded by padXY in
// x and y and by padZ in z.
func BoundsOf(padXY, padZ float64, points ...[]Vec3) (Bounds, error) {
	var (
		b     Bounds
		empty = true
	)
	for _, pts := range points {
		for _, p := range pts {
			if empty {
				b = Bounds{X: Range{p.X, p.X}, Y: Range{p.Y, p.Y}, Z: Range{p.Z, p.Z}}
				empty = false
				continue
			}
			b.X = b.X.Extend(p.X)
			b.Y = b.Y.Extend(p.Y)
			b.Z = b.Z.Extend(p.Z)
		}
	}
	if empty {
		return Bounds{}, ErrNoPoints
	}

	b.X = b.X.Pad(padXY)
	b.Y = b.Y.Pad(padXY)
	b.Z = b.Z.Pad(padZ)
	return b, nil
}
