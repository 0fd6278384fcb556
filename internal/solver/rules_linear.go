package solver

import (
	"fmt"
	"math"

	"github.com/angleworks/protractor/internal/geom"
)

// applySupplementaryAngles resolves angle pairs at a shared vertex.
// Overlapping records are forced equal (they denote the same angle and
// must never be summed); linear pairs supplement each other. A known
// linear pair that misses 180 beyond tolerance corrects the second
// member, keeping the first-discovered value as primary.
func applySupplementaryAngles(g *geom.Graph, w Writer) bool {
	changed := false
	for _, v := range g.Vertices() {
		angles := g.AnglesAt(v)
		for i := 0; i < len(angles); i++ {
			for j := i + 1; j < len(angles); j++ {
				a, b := angles[i], angles[j]
				switch {
				case g.IsOverlapping(a, b):
					if equalize(w, a, b, TheoremSupplementary) {
						changed = true
					}
				case g.IsLinearPair(a, b):
					if supplement(w, a, b, TheoremSupplementary) {
						changed = true
					}
				}
			}
		}
	}
	return changed
}

// applyLinearPairs is the line-driven variant of supplementary
// resolution: for every interior point of a line with at least three
// points, resolve the linear pairs among its angles whose outer rays run
// along that line.
func applyLinearPairs(g *geom.Graph, w Writer) bool {
	changed := false
	for _, l := range g.Lines {
		if len(l.Points) < 3 {
			continue
		}
		for i := 1; i < len(l.Points)-1; i++ {
			v := l.Points[i]
			angles := g.AnglesAt(v)
			for x := 0; x < len(angles); x++ {
				for y := x + 1; y < len(angles); y++ {
					a, b := angles[x], angles[y]
					if !geom.LinearPairOnLine(l, v, a, b) {
						continue
					}
					if g.IsOverlapping(a, b) {
						continue
					}
					if supplement(w, a, b, TheoremLinearPairs) {
						changed = true
					}
				}
			}
		}
	}
	return changed
}

// applyLinearAngleDivision partitions the straight angle at an interior
// line point across the angles in the sector between its two line
// neighbors.
//
// Two cases:
//   - no part is known and at least three parts share one label: each
//     gets an even share of 180, and the share propagates globally to
//     every angle carrying that label;
//   - some parts are known and every unknown part shares one label: the
//     unknowns split the 180-minus-known remainder evenly.
//
// Values written here are subdivision results; the angle-addition
// correction paths leave them alone.
func applyLinearAngleDivision(g *geom.Graph, w Writer) bool {
	changed := false
	for _, l := range g.Lines {
		if len(l.Points) < 3 {
			continue
		}
		for i := 1; i < len(l.Points)-1; i++ {
			v := l.Points[i]
			n1, n2 := l.Points[i-1], l.Points[i+1]
			sector := g.AnglesInSector(v, n1, n2)
			parts := geom.ChainBetween(n1, n2, sector)
			if len(parts) < 2 {
				continue
			}
			if divideStraightAngle(g, w, v, parts) {
				changed = true
			}
		}
	}
	return changed
}

func divideStraightAngle(g *geom.Graph, w Writer, v geom.PointID, parts []*geom.Angle) bool {
	var unknown []*geom.Angle
	knownSum := 0.0
	label := ""
	mixed := false
	for _, p := range parts {
		if p.Known() {
			knownSum += p.Val()
			continue
		}
		if p.Label == "" {
			mixed = true
			break
		}
		if label == "" {
			label = p.Label
		} else if label != p.Label {
			mixed = true
			break
		}
		unknown = append(unknown, p)
	}
	if mixed || len(unknown) == 0 {
		return false
	}

	changed := false
	if len(unknown) == len(parts) && len(parts) >= 3 {
		share := geom.StraightAngle / float64(len(parts))
		reason := fmt.Sprintf("straight angle at %s split evenly across %d parts labeled %q", v, len(parts), label)
		for _, p := range unknown {
			if w.Set(p, share, TheoremLinearDivision, reason) {
				p.Subdivision = true
				changed = true
			}
		}
		// The shares are label-wide facts, not local ones: push the value
		// to every angle carrying the label anywhere in the diagram.
		for _, a := range g.Angles {
			if a.Label != label {
				continue
			}
			if w.Set(a, share, TheoremLinearDivision, reason) {
				changed = true
			}
		}
		return changed
	}

	remainder := geom.StraightAngle - knownSum
	if remainder <= 0 {
		return false
	}
	share := remainder / float64(len(unknown))
	reason := fmt.Sprintf("remainder of straight angle at %s split across %d parts labeled %q", v, len(unknown), label)
	for _, p := range unknown {
		if w.Set(p, share, TheoremLinearDivision, reason) {
			p.Subdivision = true
			changed = true
		}
	}
	return changed
}

// applyCollinearPointAngles equalizes angle records at one vertex that
// denote the same pair of ray directions through different collinear
// target points. Covers both the vertex-on-the-line shape (a farther
// point along the line names the same ray) and the vertex-off-the-line
// shape (the targets are collinear through some other registered line
// through the vertex).
func applyCollinearPointAngles(g *geom.Graph, w Writer) bool {
	changed := false
	for _, v := range g.Vertices() {
		angles := g.AnglesAt(v)
		for i := 0; i < len(angles); i++ {
			for j := i + 1; j < len(angles); j++ {
				a, b := angles[i], angles[j]
				if !g.SameDirectedPair(a, b) {
					continue
				}
				if a.Known() && !b.Known() {
					if w.Set(b, a.Val(), TheoremCollinearPointAngles, reasonEquals(a)) {
						changed = true
					}
				} else if b.Known() && !a.Known() {
					if w.Set(a, b.Val(), TheoremCollinearPointAngles, reasonEquals(b)) {
						changed = true
					}
				}
			}
		}
	}
	return changed
}

// equalize forces b to a's value (or a to b's), first-discovered value
// winning when both are known and disagree.
func equalize(w Writer, a, b *geom.Angle, theorem string) bool {
	switch {
	case a.Known() && !b.Known():
		return w.Set(b, a.Val(), theorem, reasonEquals(a))
	case b.Known() && !a.Known():
		return w.Set(a, b.Val(), theorem, reasonEquals(b))
	case a.Known() && b.Known() && math.Abs(a.Val()-b.Val()) > geom.Tolerance:
		return w.Set(b, a.Val(), theorem, reasonEquals(a))
	}
	return false
}

// supplement resolves a linear pair: the unknown side becomes 180 minus
// the known side, and a pair that is fully known but misses 180 beyond
// tolerance has its second member corrected.
func supplement(w Writer, a, b *geom.Angle, theorem string) bool {
	switch {
	case a.Known() && !b.Known():
		return w.Set(b, geom.StraightAngle-a.Val(), theorem, reasonSupplement(a))
	case b.Known() && !a.Known():
		return w.Set(a, geom.StraightAngle-b.Val(), theorem, reasonSupplement(b))
	case a.Known() && b.Known() && math.Abs(a.Val()+b.Val()-geom.StraightAngle) > geom.Tolerance:
		return w.Set(b, geom.StraightAngle-a.Val(), theorem, reasonSupplement(a))
	}
	return false
}
