package geom

import "fmt"

// Plane is one of the three display projections.
type Plane int

const (
	XY Plane = iota
	ZX
	ZY
)

// Planes lists the display planes in drawing order.
var Planes = []Plane{XY, ZX, ZY}

func (p Plane) String() string {
	switch p {
	case XY:
		return "xy"
	case ZX:
		return "zx"
	case ZY:
		return "zy"
	}
	return fmt.Sprintf("Plane(%d)", int(p))
}

// Axes returns the names of the horizontal and vertical axes.
func (p Plane) Axes() (h, v string) {
	s := p.String()
	return s[:1], s[1:]
}

// Project maps a 3D point onto the plane.
func (p Plane) Project(v Vec3) Point {
	switch p {
	case ZX:
		return Point{v.Z, v.X}
	case ZY:
		return Point{v.Z, v.Y}
	}
	return Point{v.X, v.Y}
}

// ProjectSegment maps both ends of s onto the plane.
func (p Plane) ProjectSegment(s Segment) Segment2 {
	return Segment2{From: p.Project(s.From), To: p.Project(s.To)}
}

// Ranges returns the horizontal and vertical extent of b on the plane.
func (p Plane) Ranges(b Bounds) (h, v Range) {
	switch p {
	case ZX:
		return b.Z, b.X
	case ZY:
		return b.Z, b.Y
	}
	return b.X, b.Y
}

// ParsePlane returns the plane named s ("xy", "zx" or "zy").
func ParsePlane(s string) (Plane, error) {
	for _, p := range Planes {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("geom: unknown plane %q", s)
}

// Depth returns the coordinate of v along the axis normal to the plane.
func (p Plane) Depth(v Vec3) float64 {
	switch p {
	case ZX:
		return v.Y
	case ZY:
		return v.X
	}
	return v.Z
}
