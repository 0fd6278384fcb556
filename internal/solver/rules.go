package solver

import (
	"fmt"

	"github.com/angleworks/protractor/internal/geom"
)

// Theorem names as they appear in history entries and change events.
const (
	TheoremSameLabel            = "Same Label Angles"
	TheoremSubdivision          = "Angle Subdivision"
	TheoremSupplementary        = "Supplementary Angles"
	TheoremLinearPairs          = "Linear Pairs"
	TheoremLinearDivision       = "Linear Angle Division"
	TheoremVertical             = "Vertical Angles"
	TheoremComplementary        = "Complementary Angles"
	TheoremTriangleSum          = "Triangle Angle Sum"
	TheoremAngleAddition        = "Angle Addition"
	TheoremIsosceles            = "Isosceles Triangles"
	TheoremIsoscelesBisector    = "Isosceles Angle Bisector Perpendicular"
	TheoremRightAngleBisector   = "Right Angle Bisector"
	TheoremEquilateral          = "Equilateral Triangle"
	TheoremInscribedAngle       = "Inscribed Angle"
	TheoremCircleRadius         = "Circle Radius Angles"
	TheoremCollinearPointAngles = "Collinear Point Angles"
)

// Rule is one theorem deduction step. Apply reads the graph, writes only
// through the writer, and reports whether it committed anything. Every
// rule is idempotent.
type Rule struct {
	Name  string
	Apply func(g *geom.Graph, w Writer) bool
}

// DefaultRules returns the theorem rules in priority order. The slice
// order IS the priority: fast, safe propagation first, speculative
// derivation later. The loop applies them in exactly this order every
// iteration; the order never changes after construction.
func DefaultRules() []Rule {
	return []Rule{
		{Name: TheoremSameLabel, Apply: applySameLabelAngles},
		{Name: TheoremSubdivision, Apply: applyAngleSubdivision},
		{Name: TheoremSupplementary, Apply: applySupplementaryAngles},
		{Name: TheoremLinearPairs, Apply: applyLinearPairs},
		{Name: TheoremLinearDivision, Apply: applyLinearAngleDivision},
		{Name: TheoremVertical, Apply: applyVerticalAngles},
		{Name: TheoremComplementary, Apply: applyComplementaryAngles},
		{Name: TheoremTriangleSum, Apply: applyTriangleAngleSum},
		{Name: TheoremAngleAddition, Apply: applyAngleAddition},
		{Name: TheoremIsosceles, Apply: applyIsoscelesTriangles},
		{Name: TheoremIsoscelesBisector, Apply: applyIsoscelesBisectorPerpendicular},
		{Name: TheoremRightAngleBisector, Apply: applyRightAngleBisector},
		{Name: TheoremEquilateral, Apply: applyEquilateralTriangle},
		{Name: TheoremInscribedAngle, Apply: applyInscribedAngle},
		{Name: TheoremCircleRadius, Apply: applyCircleRadiusAngles},
		{Name: TheoremCollinearPointAngles, Apply: applyCollinearPointAngles},
	}
}

func reasonEquals(src *geom.Angle) string {
	return fmt.Sprintf("equal to %s = %.1f°", src.Name(), src.Val())
}

func reasonSupplement(src *geom.Angle) string {
	return fmt.Sprintf("supplement of %s = %.1f°", src.Name(), src.Val())
}
