package solver

import (
	"fmt"

	"github.com/angleworks/protractor/internal/geom"
)

// applyTriangleAngleSum closes triangles: when exactly two of a
// triangle's three interior angles are known, the third is 180 minus
// their sum. Results outside (0°, 180°) are rejected; a closed triangle
// that misses 180 is the validation pass's business, not this rule's.
func applyTriangleAngleSum(g *geom.Graph, w Writer) bool {
	changed := false
	for _, t := range g.Triangles {
		var interior [3]*geom.Angle
		missing := false
		for i, v := range t.Vertices {
			interior[i] = g.TriangleAngle(t, v)
			if interior[i] == nil {
				missing = true
				break
			}
		}
		if missing {
			continue
		}

		knownSum := 0.0
		var unknown *geom.Angle
		knownCount := 0
		for _, a := range interior {
			if a.Known() {
				knownSum += a.Val()
				knownCount++
			} else {
				unknown = a
			}
		}
		if knownCount != 2 {
			continue
		}

		third := geom.StraightAngle - knownSum
		if third <= 0 || third >= geom.StraightAngle {
			continue
		}
		reason := fmt.Sprintf("angles of triangle %s%s%s sum to 180°", t.Vertices[0], t.Vertices[1], t.Vertices[2])
		if w.Set(unknown, third, TheoremTriangleSum, reason) {
			changed = true
		}
	}
	return changed
}
