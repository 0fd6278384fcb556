package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angleworks/protractor/internal/geom"
	"github.com/angleworks/protractor/internal/testutil"
)

func TestSameLabelAngles_PropagatesFromFirstKnown(t *testing.T) {
	s := testutil.UnrelatedAnglesSnapshot()
	s.Angles[0].Label = "α"
	s.Angles[1].Label = "α"
	g := testutil.MustBuild(s)
	guard := NewGuard()

	require.True(t, applySameLabelAngles(g, guard))
	assert.InDelta(t, 30, angleByID(g, "ang-2").Val(), 0.001)
	require.Len(t, guard.History(), 1)
	assert.Equal(t, TheoremSameLabel, guard.History()[0].Theorem)

	// Second application finds nothing left to do.
	assert.False(t, applySameLabelAngles(g, guard))
}

func TestSameLabelAngles_LockedMemberIsPrimary(t *testing.T) {
	s := testutil.UnrelatedAnglesSnapshot()
	s.Angles[0].Label = "α" // holds 30, unlocked
	s.Angles[1].Label = "α"
	s.Angles[1].Constraint = testutil.Float(50)
	g := testutil.MustBuild(s)
	guard := NewGuard()

	require.True(t, applySameLabelAngles(g, guard))
	assert.InDelta(t, 50, angleByID(g, "ang-1").Val(), 0.001)
	assert.InDelta(t, 50, angleByID(g, "ang-2").Val(), 0.001)

	var soft bool
	for _, d := range guard.Diagnostics() {
		if d.Code == CodeSoftInconsistency {
			soft = true
		}
	}
	assert.True(t, soft, "overwriting the stale 30 should leave a soft-inconsistency diagnostic")
}

// fanSnapshot builds a vertex V with rays to A, B and C, the outer angle
// (A,V,C) and the two sub-angles (A,V,B) and (B,V,C). When withLine is
// set, A, B and C are registered collinear so B witnesses as lying inside
// the outer angle.
func fanSnapshot(withLine bool) *geom.Snapshot {
	s := &geom.Snapshot{
		Points: []geom.Point{{ID: "V"}, {ID: "A"}, {ID: "B"}, {ID: "C"}},
		Adjacency: map[geom.PointID][]geom.PointID{
			"V": {"A", "B", "C"},
		},
		Angles: []*geom.Angle{
			{ID: "ang-outer", Vertex: "V", Rays: [2]geom.PointID{"A", "C"}},
			{ID: "ang-ab", Vertex: "V", Rays: [2]geom.PointID{"A", "B"}},
			{ID: "ang-bc", Vertex: "V", Rays: [2]geom.PointID{"B", "C"}},
		},
	}
	if withLine {
		s.Lines = [][]geom.PointID{{"A", "B", "C"}}
	}
	return s
}

func TestAngleSubdivision_SplitsRemainderAcrossLabel(t *testing.T) {
	s := fanSnapshot(false)
	s.Angles[0].Value = testutil.Float(100)
	s.Angles[1].Value = testutil.Float(30)
	s.Angles[2].Label = "x"
	g := testutil.MustBuild(s)
	guard := NewGuard()

	require.True(t, applyAngleSubdivision(g, guard))
	bc := angleByID(g, "ang-bc")
	assert.InDelta(t, 70, bc.Val(), 0.001)
	assert.True(t, bc.Subdivision)
}

func TestAngleSubdivision_EvenSplit(t *testing.T) {
	s := fanSnapshot(false)
	s.Angles[0].Value = testutil.Float(100)
	s.Angles[1].Label = "x"
	s.Angles[2].Label = "x"
	g := testutil.MustBuild(s)

	require.True(t, applyAngleSubdivision(g, NewGuard()))
	assert.InDelta(t, 50, angleByID(g, "ang-ab").Val(), 0.001)
	assert.InDelta(t, 50, angleByID(g, "ang-bc").Val(), 0.001)
}

func TestAngleSubdivision_MixedLabelsSkip(t *testing.T) {
	s := fanSnapshot(false)
	s.Angles[0].Value = testutil.Float(100)
	s.Angles[1].Label = "x"
	s.Angles[2].Label = "y"
	g := testutil.MustBuild(s)

	assert.False(t, applyAngleSubdivision(g, NewGuard()))
	assert.False(t, angleByID(g, "ang-ab").Known())
}

func TestSupplementaryAngles_LinearPair(t *testing.T) {
	s := testutil.LinearPairSnapshot()
	s.Angles[0].Value = testutil.Float(110)
	g := testutil.MustBuild(s)
	guard := NewGuard()

	require.True(t, applySupplementaryAngles(g, guard))
	assert.InDelta(t, 70, angleByID(g, "ang-right").Val(), 0.001)
}

func TestSupplementaryAngles_OverlappingRecordsEqualized(t *testing.T) {
	// X and Y sit on one line through the shared ray point S, on the same
	// side of it, so (S,V,X) and (S,V,Y) denote the same angle.
	s := &geom.Snapshot{
		Points: []geom.Point{{ID: "V"}, {ID: "S"}, {ID: "X"}, {ID: "Y"}},
		Adjacency: map[geom.PointID][]geom.PointID{
			"V": {"S", "X", "Y"},
		},
		Lines: [][]geom.PointID{{"S", "X", "Y"}},
		Angles: []*geom.Angle{
			{ID: "ang-sx", Vertex: "V", Rays: [2]geom.PointID{"S", "X"}, Value: testutil.Float(25)},
			{ID: "ang-sy", Vertex: "V", Rays: [2]geom.PointID{"S", "Y"}},
		},
	}
	g := testutil.MustBuild(s)

	require.True(t, applySupplementaryAngles(g, NewGuard()))
	assert.InDelta(t, 25, angleByID(g, "ang-sy").Val(), 0.001,
		"overlapping records must be equalized, never summed to 180")
}

func TestLinearPairs_LineDriven(t *testing.T) {
	s := testutil.LinearPairSnapshot()
	s.Angles[1].Value = testutil.Float(64)
	g := testutil.MustBuild(s)
	guard := NewGuard()

	require.True(t, applyLinearPairs(g, guard))
	assert.InDelta(t, 116, angleByID(g, "ang-left").Val(), 0.001)
	require.Len(t, guard.History(), 1)
	assert.Equal(t, TheoremLinearPairs, guard.History()[0].Theorem)
}

func TestLinearAngleDivision_EvenSplitPropagatesLabel(t *testing.T) {
	s := &geom.Snapshot{
		Points: []geom.Point{
			{ID: "X"}, {ID: "V"}, {ID: "Y"}, {ID: "P"}, {ID: "Q"},
			{ID: "W"}, {ID: "M"}, {ID: "N"},
		},
		Adjacency: map[geom.PointID][]geom.PointID{
			"V": {"X", "Y", "P", "Q"},
			"W": {"M", "N"},
		},
		Lines: [][]geom.PointID{{"X", "V", "Y"}},
		Angles: []*geom.Angle{
			{ID: "ang-1", Vertex: "V", Rays: [2]geom.PointID{"X", "P"}, Label: "a"},
			{ID: "ang-2", Vertex: "V", Rays: [2]geom.PointID{"P", "Q"}, Label: "a"},
			{ID: "ang-3", Vertex: "V", Rays: [2]geom.PointID{"Q", "Y"}, Label: "a"},
			{ID: "ang-far", Vertex: "W", Rays: [2]geom.PointID{"M", "N"}, Label: "a"},
		},
	}
	g := testutil.MustBuild(s)

	require.True(t, applyLinearAngleDivision(g, NewGuard()))
	for _, id := range []string{"ang-1", "ang-2", "ang-3"} {
		a := angleByID(g, id)
		assert.InDelta(t, 60, a.Val(), 0.001)
		assert.True(t, a.Subdivision)
	}
	assert.InDelta(t, 60, angleByID(g, "ang-far").Val(), 0.001,
		"the even share is a label-wide fact and reaches unrelated vertices")
}

func TestLinearAngleDivision_RemainderSplit(t *testing.T) {
	s := &geom.Snapshot{
		Points: []geom.Point{{ID: "X"}, {ID: "V"}, {ID: "Y"}, {ID: "P"}},
		Adjacency: map[geom.PointID][]geom.PointID{
			"V": {"X", "Y", "P"},
		},
		Lines: [][]geom.PointID{{"X", "V", "Y"}},
		Angles: []*geom.Angle{
			{ID: "ang-left", Vertex: "V", Rays: [2]geom.PointID{"X", "P"}, Value: testutil.Float(100)},
			{ID: "ang-right", Vertex: "V", Rays: [2]geom.PointID{"P", "Y"}, Label: "b"},
		},
	}
	g := testutil.MustBuild(s)

	require.True(t, applyLinearAngleDivision(g, NewGuard()))
	right := angleByID(g, "ang-right")
	assert.InDelta(t, 80, right.Val(), 0.001)
	assert.True(t, right.Subdivision)
}

func TestVerticalAngles_DisjointPairOnly(t *testing.T) {
	s := testutil.CrossingSnapshot()
	s.Angles[0].Value = testutil.Float(35)
	g := testutil.MustBuild(s)

	require.True(t, applyVerticalAngles(g, NewGuard()))
	assert.InDelta(t, 35, angleByID(g, "ang-cod").Val(), 0.001)
	assert.False(t, angleByID(g, "ang-aod").Known(),
		"pairs sharing a ray are not vertical")
}

func TestComplementaryAngles_NeverMutates(t *testing.T) {
	s := testutil.CrossingSnapshot()
	s.Angles[0].Value = testutil.Float(35)
	g := testutil.MustBuild(s)
	guard := NewGuard()

	assert.False(t, applyComplementaryAngles(g, guard))
	assert.Empty(t, guard.History())
}

func TestAngleAddition_SumsWithBetweenWitness(t *testing.T) {
	s := fanSnapshot(true)
	s.Angles[1].Value = testutil.Float(30)
	s.Angles[2].Value = testutil.Float(40)
	g := testutil.MustBuild(s)
	guard := NewGuard()

	require.True(t, applyAngleAddition(g, guard))
	assert.InDelta(t, 70, angleByID(g, "ang-outer").Val(), 0.001)
}

func TestAngleAddition_DifferenceFillsInner(t *testing.T) {
	s := fanSnapshot(true)
	s.Angles[0].Value = testutil.Float(100)
	s.Angles[1].Value = testutil.Float(30)
	g := testutil.MustBuild(s)

	require.True(t, applyAngleAddition(g, NewGuard()))
	assert.InDelta(t, 70, angleByID(g, "ang-bc").Val(), 0.001)
}

func TestAngleAddition_CorrectsDisagreeingOuter(t *testing.T) {
	s := fanSnapshot(true)
	s.Angles[0].Value = testutil.Float(90)
	s.Angles[1].Value = testutil.Float(30)
	s.Angles[2].Value = testutil.Float(40)
	g := testutil.MustBuild(s)
	guard := NewGuard()

	require.True(t, applyAngleAddition(g, guard))
	assert.InDelta(t, 70, angleByID(g, "ang-outer").Val(), 0.001)

	var soft bool
	for _, d := range guard.Diagnostics() {
		if d.Code == CodeSoftInconsistency {
			soft = true
		}
	}
	assert.True(t, soft)
}

func TestAngleAddition_SubdivisionResultProtected(t *testing.T) {
	s := fanSnapshot(true)
	s.Angles[0].Value = testutil.Float(90)
	s.Angles[1].Value = testutil.Float(30)
	s.Angles[2].Value = testutil.Float(40)
	g := testutil.MustBuild(s)
	angleByID(g, "ang-outer").Subdivision = true

	assert.False(t, applyAngleAddition(g, NewGuard()))
	assert.InDelta(t, 90, angleByID(g, "ang-outer").Val(), 0.001)
}

func TestAngleAddition_RequiresWitness(t *testing.T) {
	// Without the collinearity witness the three angles at V are
	// rotationally symmetric and no triple may fire.
	s := fanSnapshot(false)
	s.Angles[1].Value = testutil.Float(30)
	s.Angles[2].Value = testutil.Float(40)
	g := testutil.MustBuild(s)

	assert.False(t, applyAngleAddition(g, NewGuard()))
	assert.False(t, angleByID(g, "ang-outer").Known())
}

func TestRightAngleBisector_PlainHalves(t *testing.T) {
	s := fanSnapshot(false)
	s.Angles[0].Value = testutil.Float(90)
	g := testutil.MustBuild(s)

	require.True(t, applyRightAngleBisector(g, NewGuard()))
	for _, id := range []string{"ang-ab", "ang-bc"} {
		a := angleByID(g, id)
		assert.InDelta(t, 45, a.Val(), 0.001)
		assert.True(t, a.Subdivision)
	}
}

func TestRightAngleBisector_NonRightOuterSkipped(t *testing.T) {
	s := fanSnapshot(false)
	s.Angles[0].Value = testutil.Float(80)
	g := testutil.MustBuild(s)

	assert.False(t, applyRightAngleBisector(g, NewGuard()))
}

func TestIsoscelesTriangles_ApexToBases(t *testing.T) {
	s := testutil.IsoscelesSnapshot()
	s.Angles[0].Value = testutil.Float(40)
	g := testutil.MustBuild(s)

	require.True(t, applyIsoscelesTriangles(g, NewGuard()))
	assert.InDelta(t, 70, angleByID(g, "ang-base-a").Val(), 0.001)
	assert.InDelta(t, 70, angleByID(g, "ang-base-b").Val(), 0.001)
}

func TestIsoscelesTriangles_BaseEqualityPropagates(t *testing.T) {
	s := testutil.IsoscelesSnapshot()
	s.Angles[1].Value = testutil.Float(65)
	g := testutil.MustBuild(s)

	require.True(t, applyIsoscelesTriangles(g, NewGuard()))
	assert.InDelta(t, 65, angleByID(g, "ang-base-b").Val(), 0.001)
	assert.InDelta(t, 50, angleByID(g, "ang-apex").Val(), 0.001)
}

func TestIsoscelesBisectorPerpendicular(t *testing.T) {
	s := &geom.Snapshot{
		Points: []geom.Point{{ID: "C"}, {ID: "A"}, {ID: "B"}, {ID: "D"}},
		Adjacency: map[geom.PointID][]geom.PointID{
			"C": {"A", "B", "D"},
			"A": {"B", "D"},
			"B": {"D"},
		},
		Lines:     [][]geom.PointID{{"A", "D", "B"}},
		Circles:   []geom.Circle{{Center: "C", OnCircle: []geom.PointID{"A", "B"}}},
		Triangles: [][]geom.PointID{{"C", "A", "B"}},
		Angles: []*geom.Angle{
			{ID: "ang-apex", Vertex: "C", Rays: [2]geom.PointID{"A", "B"}},
			{ID: "ang-half-1", Vertex: "C", Rays: [2]geom.PointID{"A", "D"}, Label: "m", Value: testutil.Float(20)},
			{ID: "ang-half-2", Vertex: "C", Rays: [2]geom.PointID{"D", "B"}, Label: "m"},
			{ID: "ang-foot-a", Vertex: "D", Rays: [2]geom.PointID{"C", "A"}},
			{ID: "ang-foot-b", Vertex: "D", Rays: [2]geom.PointID{"C", "B"}},
		},
	}
	g := testutil.MustBuild(s)

	require.True(t, applyIsoscelesBisectorPerpendicular(g, NewGuard()))
	assert.InDelta(t, 20, angleByID(g, "ang-half-2").Val(), 0.001)
	assert.InDelta(t, 40, angleByID(g, "ang-apex").Val(), 0.001)
	assert.InDelta(t, 90, angleByID(g, "ang-foot-a").Val(), 0.001)
	assert.InDelta(t, 90, angleByID(g, "ang-foot-b").Val(), 0.001)
}

func inscribedSnapshot() *geom.Snapshot {
	return &geom.Snapshot{
		Points: []geom.Point{{ID: "O"}, {ID: "A"}, {ID: "B"}, {ID: "Q"}},
		Adjacency: map[geom.PointID][]geom.PointID{
			"O": {"A", "B"},
			"Q": {"A", "B"},
		},
		Circles: []geom.Circle{{Center: "O", OnCircle: []geom.PointID{"A", "B", "Q"}}},
		Angles: []*geom.Angle{
			{ID: "ang-central", Vertex: "O", Rays: [2]geom.PointID{"A", "B"}},
			{ID: "ang-inscribed", Vertex: "Q", Rays: [2]geom.PointID{"A", "B"}},
		},
	}
}

func TestInscribedAngle_CentralToInscribed(t *testing.T) {
	s := inscribedSnapshot()
	s.Angles[0].Value = testutil.Float(80)
	g := testutil.MustBuild(s)

	require.True(t, applyInscribedAngle(g, NewGuard()))
	assert.InDelta(t, 40, angleByID(g, "ang-inscribed").Val(), 0.001)
}

func TestInscribedAngle_InscribedToCentral(t *testing.T) {
	s := inscribedSnapshot()
	s.Angles[1].Value = testutil.Float(40)
	g := testutil.MustBuild(s)

	require.True(t, applyInscribedAngle(g, NewGuard()))
	assert.InDelta(t, 80, angleByID(g, "ang-central").Val(), 0.001)
}

func TestCircleRadiusAngles_ConsecutiveCentralsShareValue(t *testing.T) {
	s := &geom.Snapshot{
		Points: []geom.Point{{ID: "O"}, {ID: "A"}, {ID: "B"}, {ID: "C"}},
		Adjacency: map[geom.PointID][]geom.PointID{
			"O": {"A", "B", "C"},
		},
		Circles: []geom.Circle{{Center: "O", OnCircle: []geom.PointID{"A", "B", "C"}}},
		Angles: []*geom.Angle{
			{ID: "ang-ab", Vertex: "O", Rays: [2]geom.PointID{"A", "B"}, Value: testutil.Float(40)},
			{ID: "ang-bc", Vertex: "O", Rays: [2]geom.PointID{"B", "C"}},
			{ID: "ang-ca", Vertex: "O", Rays: [2]geom.PointID{"C", "A"}},
		},
	}
	g := testutil.MustBuild(s)

	require.True(t, applyCircleRadiusAngles(g, NewGuard()))
	assert.InDelta(t, 40, angleByID(g, "ang-bc").Val(), 0.001)
	assert.InDelta(t, 40, angleByID(g, "ang-ca").Val(), 0.001)
}

func TestEquilateralTriangle(t *testing.T) {
	s := &geom.Snapshot{
		Points: []geom.Point{{ID: "O"}, {ID: "A"}, {ID: "B"}, {ID: "C"}},
		Adjacency: map[geom.PointID][]geom.PointID{
			"O": {"A", "B", "C"},
			"A": {"B", "C"},
			"B": {"C"},
		},
		Circles:   []geom.Circle{{Center: "O", OnCircle: []geom.PointID{"A", "B", "C"}}},
		Triangles: [][]geom.PointID{{"A", "B", "C"}},
		Angles: []*geom.Angle{
			{ID: "c-ab", Vertex: "O", Rays: [2]geom.PointID{"A", "B"}, Value: testutil.Float(120)},
			{ID: "c-bc", Vertex: "O", Rays: [2]geom.PointID{"B", "C"}, Value: testutil.Float(120)},
			{ID: "c-ca", Vertex: "O", Rays: [2]geom.PointID{"C", "A"}, Value: testutil.Float(120)},
			{ID: "int-a", Vertex: "A", Rays: [2]geom.PointID{"B", "C"}},
			{ID: "int-b", Vertex: "B", Rays: [2]geom.PointID{"A", "C"}},
			{ID: "int-c", Vertex: "C", Rays: [2]geom.PointID{"A", "B"}},
		},
	}
	g := testutil.MustBuild(s)

	require.True(t, applyEquilateralTriangle(g, NewGuard()))
	for _, id := range []string{"int-a", "int-b", "int-c"} {
		assert.InDelta(t, 60, angleByID(g, id).Val(), 0.001)
	}
}

func TestCollinearPointAngles_FartherPointSameRay(t *testing.T) {
	// A and B name the same ray out of V; the two records through T must
	// carry one value.
	s := &geom.Snapshot{
		Points: []geom.Point{{ID: "V"}, {ID: "A"}, {ID: "B"}, {ID: "T"}},
		Adjacency: map[geom.PointID][]geom.PointID{
			"V": {"A", "B", "T"},
		},
		Lines: [][]geom.PointID{{"V", "A", "B"}},
		Angles: []*geom.Angle{
			{ID: "ang-at", Vertex: "V", Rays: [2]geom.PointID{"A", "T"}, Value: testutil.Float(25)},
			{ID: "ang-bt", Vertex: "V", Rays: [2]geom.PointID{"B", "T"}},
		},
	}
	g := testutil.MustBuild(s)

	require.True(t, applyCollinearPointAngles(g, NewGuard()))
	assert.InDelta(t, 25, angleByID(g, "ang-bt").Val(), 0.001)
}

func TestDefaultRules_PriorityOrder(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, 16)
	assert.Equal(t, TheoremSameLabel, rules[0].Name)
	assert.Equal(t, TheoremTriangleSum, rules[7].Name)
	assert.Equal(t, TheoremCollinearPointAngles, rules[15].Name)
}
