package solver

import (
	"fmt"
	"math"

	"github.com/angleworks/protractor/internal/geom"
)

// applyIsoscelesTriangles works the equal-radius proxy: any two on-circle
// points and the center form an isosceles triangle with the center as
// apex, provided the triangle is enumerated in the snapshot. Base angles
// are equal; a known apex gives each base (180−apex)/2; known bases give
// the apex 180−2·base. Inconsistent bases correct toward the
// first-discovered one.
func applyIsoscelesTriangles(g *geom.Graph, w Writer) bool {
	changed := false
	for _, c := range g.Circles {
		for i := 0; i < len(c.OnCircle); i++ {
			for j := i + 1; j < len(c.OnCircle); j++ {
				p1, p2 := c.OnCircle[i], c.OnCircle[j]
				if g.TriangleFor(c.Center, p1, p2) == nil {
					continue
				}
				apex := g.FindAngle(c.Center, p1, p2)
				b1 := g.FindAngle(p1, c.Center, p2)
				b2 := g.FindAngle(p2, c.Center, p1)
				if apex == nil || b1 == nil || b2 == nil {
					continue
				}
				if isoscelesPropagate(w, apex, b1, b2) {
					changed = true
				}
			}
		}
	}
	return changed
}

func isoscelesPropagate(w Writer, apex, b1, b2 *geom.Angle) bool {
	changed := false
	if apex.Known() {
		base := (geom.StraightAngle - apex.Val()) / 2
		if base > 0 {
			reason := fmt.Sprintf("base of isosceles triangle, apex %s = %.1f°", apex.Name(), apex.Val())
			if w.Set(b1, base, TheoremIsosceles, reason) {
				changed = true
			}
			if w.Set(b2, base, TheoremIsosceles, reason) {
				changed = true
			}
		}
	}

	switch {
	case b1.Known() && !b2.Known():
		if w.Set(b2, b1.Val(), TheoremIsosceles, reasonEquals(b1)) {
			changed = true
		}
	case b2.Known() && !b1.Known():
		if w.Set(b1, b2.Val(), TheoremIsosceles, reasonEquals(b2)) {
			changed = true
		}
	case b1.Known() && b2.Known() && math.Abs(b1.Val()-b2.Val()) > geom.Tolerance:
		if w.Set(b2, b1.Val(), TheoremIsosceles, reasonEquals(b1)) {
			changed = true
		}
	}

	if !apex.Known() && b1.Known() && b2.Known() {
		top := geom.StraightAngle - b1.Val() - b2.Val()
		if top > 0 {
			reason := fmt.Sprintf("apex of isosceles triangle, bases %.1f°", b1.Val())
			if w.Set(apex, top, TheoremIsosceles, reason) {
				changed = true
			}
		}
	}
	return changed
}

// applyIsoscelesBisectorPerpendicular recognizes a bisected isosceles
// apex: the apex angle at a circle's center split by a base-line point D
// into two sub-angles asserting equality (shared label, or equal known
// values). The halves are forced equal, the apex recomputed consistently,
// and the bisector meets the base at right angles, so the two angles at D
// toward the apex are exactly 90°.
func applyIsoscelesBisectorPerpendicular(g *geom.Graph, w Writer) bool {
	changed := false
	for _, c := range g.Circles {
		for i := 0; i < len(c.OnCircle); i++ {
			for j := i + 1; j < len(c.OnCircle); j++ {
				p1, p2 := c.OnCircle[i], c.OnCircle[j]
				for _, d := range baseMidpoints(g, p1, p2) {
					if bisectedApex(g, w, c.Center, p1, p2, d) {
						changed = true
					}
				}
			}
		}
	}
	return changed
}

// baseMidpoints returns every point lying strictly between p1 and p2 on a
// registered line through both.
func baseMidpoints(g *geom.Graph, p1, p2 geom.PointID) []geom.PointID {
	var out []geom.PointID
	seen := make(map[geom.PointID]bool)
	for _, l := range g.LinesThrough(p1) {
		i1, i2 := l.IndexOf(p1), l.IndexOf(p2)
		if i2 < 0 {
			continue
		}
		lo, hi := i1, i2
		if lo > hi {
			lo, hi = hi, lo
		}
		for k := lo + 1; k < hi; k++ {
			d := l.Points[k]
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	return out
}

func bisectedApex(g *geom.Graph, w Writer, center, p1, p2, d geom.PointID) bool {
	sub1 := g.FindAngle(center, p1, d)
	sub2 := g.FindAngle(center, d, p2)
	if sub1 == nil || sub2 == nil {
		return false
	}

	labeled := sub1.Label != "" && sub1.Label == sub2.Label
	valued := sub1.Known() && sub2.Known() && math.Abs(sub1.Val()-sub2.Val()) <= geom.Tolerance
	if !labeled && !valued {
		return false
	}

	changed := false
	if equalize(w, sub1, sub2, TheoremIsoscelesBisector) {
		changed = true
	}

	apex := g.FindAngle(center, p1, p2)
	if apex != nil {
		if apex.Known() {
			half := apex.Val() / 2
			reason := fmt.Sprintf("half of bisected apex %s = %.1f°", apex.Name(), apex.Val())
			if w.Set(sub1, half, TheoremIsoscelesBisector, reason) {
				changed = true
			}
			if w.Set(sub2, half, TheoremIsoscelesBisector, reason) {
				changed = true
			}
		} else if sub1.Known() && sub2.Known() {
			reason := fmt.Sprintf("sum of bisected halves %s + %s", sub1.Name(), sub2.Name())
			if w.Set(apex, sub1.Val()+sub2.Val(), TheoremIsoscelesBisector, reason) {
				changed = true
			}
		}
	}

	reason := fmt.Sprintf("isosceles bisector from %s meets base %s%s perpendicularly at %s", center, p1, p2, d)
	if foot := g.FindAngle(d, center, p1); foot != nil {
		if w.Set(foot, geom.RightAngle, TheoremIsoscelesBisector, reason) {
			changed = true
		}
	}
	if foot := g.FindAngle(d, center, p2); foot != nil {
		if w.Set(foot, geom.RightAngle, TheoremIsoscelesBisector, reason) {
			changed = true
		}
	}
	return changed
}

// applyEquilateralTriangle sets all three interior angles of a triangle
// to 60° when its vertices sit on one circle and the three central angles
// over them are known and equal at 120°: equal central angles mean equal
// chords, and 3×120° fills the full turn, so the triangle is equilateral.
func applyEquilateralTriangle(g *geom.Graph, w Writer) bool {
	changed := false
	for _, t := range g.Triangles {
		for _, c := range g.Circles {
			if !c.ContainsPoint(t.Vertices[0]) || !c.ContainsPoint(t.Vertices[1]) || !c.ContainsPoint(t.Vertices[2]) {
				continue
			}
			centrals := [3]*geom.Angle{
				g.FindAngle(c.Center, t.Vertices[0], t.Vertices[1]),
				g.FindAngle(c.Center, t.Vertices[1], t.Vertices[2]),
				g.FindAngle(c.Center, t.Vertices[0], t.Vertices[2]),
			}
			ok := true
			for _, a := range centrals {
				if a == nil || !a.Known() || math.Abs(a.Val()-120) > geom.Tolerance {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			reason := fmt.Sprintf("triangle %s%s%s inscribed with 120° central angles", t.Vertices[0], t.Vertices[1], t.Vertices[2])
			for _, v := range t.Vertices {
				if a := g.TriangleAngle(t, v); a != nil {
					if w.Set(a, 60, TheoremEquilateral, reason) {
						changed = true
					}
				}
			}
		}
	}
	return changed
}

// applyInscribedAngle relates central and inscribed angles over one arc:
// the central angle at the circle's center over two on-circle points is
// twice the inscribed angle at any third on-circle point over the same
// pair. Propagates in both directions.
func applyInscribedAngle(g *geom.Graph, w Writer) bool {
	changed := false
	for _, c := range g.Circles {
		for i := 0; i < len(c.OnCircle); i++ {
			for j := i + 1; j < len(c.OnCircle); j++ {
				p1, p2 := c.OnCircle[i], c.OnCircle[j]
				central := g.FindAngle(c.Center, p1, p2)
				if central == nil {
					continue
				}
				for _, q := range c.OnCircle {
					if q == p1 || q == p2 {
						continue
					}
					inscribed := g.FindAngle(q, p1, p2)
					if inscribed == nil {
						continue
					}
					if central.Known() && !inscribed.Known() {
						reason := fmt.Sprintf("half of central angle %s = %.1f°", central.Name(), central.Val())
						if w.Set(inscribed, central.Val()/2, TheoremInscribedAngle, reason) {
							changed = true
						}
					} else if inscribed.Known() && !central.Known() {
						reason := fmt.Sprintf("twice inscribed angle %s = %.1f°", inscribed.Name(), inscribed.Val())
						if w.Set(central, inscribed.Val()*2, TheoremInscribedAngle, reason) {
							changed = true
						}
					}
				}
			}
		}
	}
	return changed
}

// applyCircleRadiusAngles equalizes the central angles over consecutive
// on-circle points. The editor registers on-circle points in placement
// order, and its circle tools place them at equal spacing, so the central
// angles between consecutive points are one shared value; the first known
// one propagates to the rest.
func applyCircleRadiusAngles(g *geom.Graph, w Writer) bool {
	changed := false
	for _, c := range g.Circles {
		n := len(c.OnCircle)
		if n < 2 {
			continue
		}
		var centrals []*geom.Angle
		pairs := n
		if n == 2 {
			// No wrap-around pair with only two points: (0,1) and (1,0)
			// are the same unordered pair.
			pairs = 1
		}
		for i := 0; i < pairs; i++ {
			j := (i + 1) % n
			if a := g.FindAngle(c.Center, c.OnCircle[i], c.OnCircle[j]); a != nil {
				centrals = append(centrals, a)
			}
		}
		var primary *geom.Angle
		for _, a := range centrals {
			if a.Known() {
				primary = a
				break
			}
		}
		if primary == nil {
			continue
		}
		for _, a := range centrals {
			if a == primary || a.Known() {
				continue
			}
			if w.Set(a, primary.Val(), TheoremCircleRadius, reasonEquals(primary)) {
				changed = true
			}
		}
	}
	return changed
}
