package geom

import "fmt"

// Tolerance is the comparison slack, in degrees, for every value check in
// the solver: two angle values closer than this are the same value, and a
// triangle whose interior angles sum within this of 180 is consistent.
const Tolerance = 0.5

// StraightAngle and RightAngle are the two constants the theorem rules
// reason with. Nothing in the solver ever measures an angle; these are the
// only degree values that appear outside of user input.
const (
	StraightAngle = 180.0
	RightAngle    = 90.0
)

// UnknownSentinel is the editor-side spelling for "no value yet". The
// snapshot loader maps it to a nil value; the solver itself only ever sees
// nil for unknown.
const UnknownSentinel = "?"

// PointID identifies a point. The solver never reads coordinates, so a
// point is nothing but its id.
type PointID string

// Point is an identity-only diagram point.
type Point struct {
	ID PointID `json:"id" yaml:"id"`
}

// Line is an ordered sequence of collinear point ids. The order is the
// position along the line; it is what makes betweenness and sidedness
// queries possible without coordinates.
type Line struct {
	Points []PointID `json:"points" yaml:"points"`
}

// IndexOf returns the position of p on the line, or -1 if p is not on it.
func (l *Line) IndexOf(p PointID) int {
	for i, q := range l.Points {
		if q == p {
			return i
		}
	}
	return -1
}

// Contains reports whether p lies on the line.
func (l *Line) Contains(p PointID) bool {
	return l.IndexOf(p) >= 0
}

// Circle is the equal-radius proxy: every point in OnCircle is asserted to
// be equidistant from Center. The solver derives isosceles and equilateral
// relations from this without ever knowing the radius.
type Circle struct {
	Center   PointID   `json:"center" yaml:"center"`
	OnCircle []PointID `json:"on_circle" yaml:"on_circle"`
}

// ContainsPoint reports whether p is one of the on-circle points.
func (c *Circle) ContainsPoint(p PointID) bool {
	for _, q := range c.OnCircle {
		if q == p {
			return true
		}
	}
	return false
}

// Triangle is an unordered triple of pairwise-adjacent, non-collinear
// points. Vertices are stored sorted so that the triple has one canonical
// spelling.
type Triangle struct {
	Vertices [3]PointID `json:"vertices" yaml:"vertices"`
}

// NewTriangle builds the canonical (sorted) triangle for three point ids.
func NewTriangle(a, b, c PointID) Triangle {
	v := sortTriple(a, b, c)
	return Triangle{Vertices: v}
}

// Key returns the canonical lookup key for the triangle.
func (t *Triangle) Key() string {
	return TriangleKey(t.Vertices[0], t.Vertices[1], t.Vertices[2])
}

// Others returns the two vertices of the triangle that are not v.
// ok is false if v is not a vertex of the triangle.
func (t *Triangle) Others(v PointID) (PointID, PointID, bool) {
	switch v {
	case t.Vertices[0]:
		return t.Vertices[1], t.Vertices[2], true
	case t.Vertices[1]:
		return t.Vertices[0], t.Vertices[2], true
	case t.Vertices[2]:
		return t.Vertices[0], t.Vertices[1], true
	}
	return "", "", false
}

// Angle is one angle record: a vertex, an unordered ray pair, and an
// optional value in degrees.
//
// Value nil means unknown. Constraint non-nil means the value was asserted
// by the user and must never be altered by a theorem rule; the guard
// enforces this, rules never check it themselves.
//
// Subdivision marks a value produced by splitting a larger angle into
// equal shares. The angle-addition correction paths leave such values
// alone rather than "fixing" them from a coarser relation.
type Angle struct {
	ID          string     `json:"id" yaml:"id"`
	Vertex      PointID    `json:"vertex" yaml:"vertex"`
	Rays        [2]PointID `json:"rays" yaml:"rays"`
	Value       *float64   `json:"value,omitempty" yaml:"value,omitempty"`
	Label       string     `json:"label,omitempty" yaml:"label,omitempty"`
	Constraint  *float64   `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	Subdivision bool       `json:"subdivision,omitempty" yaml:"subdivision,omitempty"`
}

// Known reports whether the angle has a value.
func (a *Angle) Known() bool {
	return a.Value != nil
}

// Val returns the angle's value in degrees. Only meaningful when Known().
func (a *Angle) Val() float64 {
	if a.Value == nil {
		return 0
	}
	return *a.Value
}

// Locked reports whether the angle carries a user-asserted constraint.
func (a *Angle) Locked() bool {
	return a.Constraint != nil
}

// Key returns the canonical identity of the angle: vertex plus sorted rays.
func (a *Angle) Key() string {
	return AngleKey(a.Vertex, a.Rays[0], a.Rays[1])
}

// Name returns the display name of the angle, with the vertex in the
// middle position as is conventional.
func (a *Angle) Name() string {
	r0, r1 := SortedRays(a.Rays[0], a.Rays[1])
	return fmt.Sprintf("∠%s%s%s", r0, a.Vertex, r1)
}

// SharedRay returns the single ray point two angles at the same vertex
// have in common, plus each angle's remaining ray. ok is false unless the
// angles share a vertex and exactly one ray point.
func SharedRay(a, b *Angle) (shared, otherA, otherB PointID, ok bool) {
	if a.Vertex != b.Vertex {
		return "", "", "", false
	}
	common := 0
	for _, ra := range a.Rays {
		for _, rb := range b.Rays {
			if ra == rb {
				common++
				shared = ra
			}
		}
	}
	if common != 1 {
		return "", "", "", false
	}
	otherA = a.Rays[0]
	if otherA == shared {
		otherA = a.Rays[1]
	}
	otherB = b.Rays[0]
	if otherB == shared {
		otherB = b.Rays[1]
	}
	return shared, otherA, otherB, true
}

// SharesEdge reports whether two angles share their vertex and exactly one
// ray, irrespective of any collinearity.
func SharesEdge(a, b *Angle) bool {
	_, _, _, ok := SharedRay(a, b)
	return ok
}

// DisjointRays reports whether two angles at the same vertex have no ray
// point in common.
func DisjointRays(a, b *Angle) bool {
	if a.Vertex != b.Vertex {
		return false
	}
	for _, ra := range a.Rays {
		for _, rb := range b.Rays {
			if ra == rb {
				return false
			}
		}
	}
	return true
}

func sortTriple(a, b, c PointID) [3]PointID {
	v := [3]PointID{a, b, c}
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	if v[1] > v[2] {
		v[1], v[2] = v[2], v[1]
	}
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	return v
}
