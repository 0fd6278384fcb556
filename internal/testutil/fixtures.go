// Package testutil provides shared fixture diagrams for solver and
// harness tests.
//
// Each builder returns a fresh Snapshot; tests mutate their copy freely.
// The shapes are the smallest diagrams that exercise one relation each:
// a closed triangle, a straight line with an off-line ray, a four-ray
// crossing, and a circle with a chord triangle.
package testutil

import "github.com/angleworks/protractor/internal/geom"

// Float returns a pointer to v, for angle values in fixture literals.
func Float(v float64) *float64 {
	return &v
}

// TriangleSnapshot builds a lone triangle ABC with its three interior
// angle records, all unknown. Angle ids are ang-a, ang-b, ang-c by
// vertex.
func TriangleSnapshot() *geom.Snapshot {
	return &geom.Snapshot{
		Points: []geom.Point{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Adjacency: map[geom.PointID][]geom.PointID{
			"A": {"B", "C"},
			"B": {"C"},
		},
		Triangles: [][]geom.PointID{{"A", "B", "C"}},
		Angles: []*geom.Angle{
			{ID: "ang-a", Vertex: "A", Rays: [2]geom.PointID{"B", "C"}},
			{ID: "ang-b", Vertex: "B", Rays: [2]geom.PointID{"A", "C"}},
			{ID: "ang-c", Vertex: "C", Rays: [2]geom.PointID{"A", "B"}},
		},
	}
}

// LinearPairSnapshot builds a line X–V–Y with an off-line point T
// adjacent to V, and the two angles (X,V,T) and (T,V,Y) forming a linear
// pair at V. Angle ids are ang-left and ang-right.
func LinearPairSnapshot() *geom.Snapshot {
	return &geom.Snapshot{
		Points: []geom.Point{{ID: "X"}, {ID: "V"}, {ID: "Y"}, {ID: "T"}},
		Adjacency: map[geom.PointID][]geom.PointID{
			"V": {"X", "Y", "T"},
		},
		Lines: [][]geom.PointID{{"X", "V", "Y"}},
		Angles: []*geom.Angle{
			{ID: "ang-left", Vertex: "V", Rays: [2]geom.PointID{"X", "T"}},
			{ID: "ang-right", Vertex: "V", Rays: [2]geom.PointID{"T", "Y"}},
		},
	}
}

// CrossingSnapshot builds a four-neighbor vertex O with the vertical
// pair (A,O,B) / (C,O,D) and one adjacent angle (A,O,D) that shares a
// ray with both. No lines are registered: vertical propagation needs
// only ray disjointness, and without collinearity nothing else at O is
// derivable. Angle ids are ang-aob, ang-cod, ang-aod.
func CrossingSnapshot() *geom.Snapshot {
	return &geom.Snapshot{
		Points: []geom.Point{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}, {ID: "O"}},
		Adjacency: map[geom.PointID][]geom.PointID{
			"O": {"A", "B", "C", "D"},
		},
		Angles: []*geom.Angle{
			{ID: "ang-aob", Vertex: "O", Rays: [2]geom.PointID{"A", "B"}},
			{ID: "ang-cod", Vertex: "O", Rays: [2]geom.PointID{"C", "D"}},
			{ID: "ang-aod", Vertex: "O", Rays: [2]geom.PointID{"A", "D"}},
		},
	}
}

// IsoscelesSnapshot builds circle-center C with on-circle points A and B
// and the complete triangle C–A–B: apex angle ang-apex at C, base angles
// ang-base-a at A and ang-base-b at B.
func IsoscelesSnapshot() *geom.Snapshot {
	return &geom.Snapshot{
		Points: []geom.Point{{ID: "C"}, {ID: "A"}, {ID: "B"}},
		Adjacency: map[geom.PointID][]geom.PointID{
			"C": {"A", "B"},
			"A": {"B"},
		},
		Circles:   []geom.Circle{{Center: "C", OnCircle: []geom.PointID{"A", "B"}}},
		Triangles: [][]geom.PointID{{"C", "A", "B"}},
		Angles: []*geom.Angle{
			{ID: "ang-apex", Vertex: "C", Rays: [2]geom.PointID{"A", "B"}},
			{ID: "ang-base-a", Vertex: "A", Rays: [2]geom.PointID{"C", "B"}},
			{ID: "ang-base-b", Vertex: "B", Rays: [2]geom.PointID{"C", "A"}},
		},
	}
}

// UnrelatedAnglesSnapshot builds angles at two vertices with no lines,
// circles or triangles relating them: nothing is derivable beyond the
// pre-supplied values.
func UnrelatedAnglesSnapshot() *geom.Snapshot {
	return &geom.Snapshot{
		Points: []geom.Point{{ID: "P"}, {ID: "Q"}, {ID: "R"}, {ID: "S"}},
		Adjacency: map[geom.PointID][]geom.PointID{
			"P": {"Q", "R"},
			"Q": {"R", "S"},
		},
		Angles: []*geom.Angle{
			{ID: "ang-1", Vertex: "P", Rays: [2]geom.PointID{"Q", "R"}, Value: Float(30)},
			{ID: "ang-2", Vertex: "Q", Rays: [2]geom.PointID{"R", "S"}},
		},
	}
}

// MustBuild builds the graph for a snapshot, panicking on validation
// failure. Fixture snapshots are valid by construction; a panic here is a
// broken fixture, not a test case.
func MustBuild(s *geom.Snapshot) *geom.Graph {
	g, err := geom.Build(s)
	if err != nil {
		panic(err)
	}
	return g
}
