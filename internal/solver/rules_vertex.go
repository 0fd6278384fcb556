package solver

import (
	"fmt"
	"math"

	"github.com/angleworks/protractor/internal/geom"
)

// applyVerticalAngles propagates values between vertical angles: at a
// vertex with four or more neighbors, two angles with completely disjoint
// ray pairs sit across from each other and are equal. Known values flow
// to unknown counterparts; pairs sharing a ray are left alone.
func applyVerticalAngles(g *geom.Graph, w Writer) bool {
	changed := false
	for _, v := range g.Vertices() {
		if g.NeighborCount(v) < 4 {
			continue
		}
		angles := g.AnglesAt(v)
		for i := 0; i < len(angles); i++ {
			for j := i + 1; j < len(angles); j++ {
				a, b := angles[i], angles[j]
				if !geom.DisjointRays(a, b) {
					continue
				}
				if a.Known() && !b.Known() {
					if w.Set(b, a.Val(), TheoremVertical, reasonEquals(a)) {
						changed = true
					}
				} else if b.Known() && !a.Known() {
					if w.Set(a, b.Val(), TheoremVertical, reasonEquals(b)) {
						changed = true
					}
				}
			}
		}
	}
	return changed
}

// applyComplementaryAngles detects vertex-adjacent angle pairs via the
// shared-edge test but performs no mutation. Complement relations need a
// right-angle witness the relation model does not currently record, so
// this stays a validation-only placeholder rather than inventing one.
// It is intentionally not dead code: the rule keeps its slot in the
// priority order so the loop's rule census stays honest.
func applyComplementaryAngles(g *geom.Graph, w Writer) bool {
	for _, v := range g.Vertices() {
		angles := g.AnglesAt(v)
		for i := 0; i < len(angles); i++ {
			for j := i + 1; j < len(angles); j++ {
				_ = geom.SharesEdge(angles[i], angles[j])
			}
		}
	}
	return false
}

// applyAngleAddition works the (inner, inner, outer) triples at a vertex
// with at least three neighbors: two angles sharing a middle ray compose
// into the angle spanned by their outer rays.
//
// A triple only counts when the middle ray demonstrably lies inside the
// outer angle: its point sits strictly between the outer ray points on a
// registered line (the editor's subdivision constructions always leave
// this witness), or the outer rays run opposite along a line through the
// vertex. Without the witness the three angles are rotationally
// symmetric and each pair would "correct" the third forever.
//
// Both inners known: the outer becomes their sum; a known outer that
// disagrees is corrected unless it is a protected subdivision result.
// Outer plus one inner known: the other inner becomes the difference,
// skipped when that inner is itself a protected subdivision result.
func applyAngleAddition(g *geom.Graph, w Writer) bool {
	changed := false
	for _, v := range g.Vertices() {
		if g.NeighborCount(v) < 3 {
			continue
		}
		angles := g.AnglesAt(v)
		for i := 0; i < len(angles); i++ {
			for j := i + 1; j < len(angles); j++ {
				in1, in2 := angles[i], angles[j]
				middle, x, y, ok := geom.SharedRay(in1, in2)
				if !ok || x == y {
					continue
				}
				if !g.Between(middle, x, y) && !g.OppositeRays(v, x, y) {
					continue
				}
				outer := g.FindAngle(v, x, y)
				if outer == nil || outer == in1 || outer == in2 {
					continue
				}
				if addTriple(w, in1, in2, outer, middle) {
					changed = true
				}
			}
		}
	}
	return changed
}

func addTriple(w Writer, in1, in2, outer *geom.Angle, middle geom.PointID) bool {
	changed := false
	if in1.Known() && in2.Known() {
		sum := in1.Val() + in2.Val()
		reason := fmt.Sprintf("%s + %s through %s", in1.Name(), in2.Name(), middle)
		if !outer.Known() {
			if w.Set(outer, sum, TheoremAngleAddition, reason) {
				changed = true
			}
		} else if !outer.Subdivision && math.Abs(outer.Val()-sum) > geom.Tolerance {
			if w.Set(outer, sum, TheoremAngleAddition, reason) {
				changed = true
			}
		}
		return changed
	}

	if !outer.Known() {
		return false
	}
	if in1.Known() && !in2.Known() && !in2.Subdivision {
		diff := outer.Val() - in1.Val()
		if diff > 0 {
			if w.Set(in2, diff, TheoremAngleAddition, fmt.Sprintf("%s − %s through %s", outer.Name(), in1.Name(), middle)) {
				changed = true
			}
		}
	} else if in2.Known() && !in1.Known() && !in1.Subdivision {
		diff := outer.Val() - in2.Val()
		if diff > 0 {
			if w.Set(in1, diff, TheoremAngleAddition, fmt.Sprintf("%s − %s through %s", outer.Name(), in2.Name(), middle)) {
				changed = true
			}
		}
	}
	return changed
}

// applyRightAngleBisector fixes the halves of a bisected right angle: a
// known 90° angle partitioned by exactly two sub-angles forces each half
// to 45° when the halves assert equality, either through a shared label
// or by both being unlabeled and unknown (the editor's plain bisection
// shape).
func applyRightAngleBisector(g *geom.Graph, w Writer) bool {
	changed := false
	for _, outer := range g.Angles {
		if !outer.Known() || math.Abs(outer.Val()-geom.RightAngle) > geom.Tolerance {
			continue
		}
		parts := g.PartitionChain(outer)
		if len(parts) != 2 {
			continue
		}
		p0, p1 := parts[0], parts[1]
		labeled := p0.Label != "" && p0.Label == p1.Label
		plain := p0.Label == "" && p1.Label == "" && !p0.Known() && !p1.Known()
		if !labeled && !plain {
			continue
		}
		reason := fmt.Sprintf("bisected right angle %s", outer.Name())
		for _, p := range []*geom.Angle{p0, p1} {
			if w.Set(p, geom.RightAngle/2, TheoremRightAngleBisector, reason) {
				p.Subdivision = true
				changed = true
			}
		}
	}
	return changed
}
