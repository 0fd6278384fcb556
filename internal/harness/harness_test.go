package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angleworks/protractor/internal/geom"
)

func fptr(v float64) *float64 { return &v }

func iptr(v int) *int { return &v }

func triangleSnapshot() *geom.Snapshot {
	return &geom.Snapshot{
		Points: []geom.Point{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Adjacency: map[geom.PointID][]geom.PointID{
			"A": {"B", "C"},
			"B": {"A", "C"},
			"C": {"A", "B"},
		},
		Triangles: [][]geom.PointID{{"A", "B", "C"}},
		Angles: []*geom.Angle{
			{ID: "ang-a", Vertex: "A", Rays: [2]geom.PointID{"B", "C"}, Value: fptr(50)},
			{ID: "ang-b", Vertex: "B", Rays: [2]geom.PointID{"A", "C"}, Value: fptr(60)},
			{ID: "ang-c", Vertex: "C", Rays: [2]geom.PointID{"A", "B"}},
		},
	}
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_ExpectationsMet(t *testing.T) {
	s := &Scenario{
		Name:     "triangle",
		RunToken: "run-1",
		Diagram:  triangleSnapshot(),
		Expect: Expectation{
			Outcome:     "completed",
			SolvedCount: iptr(3),
			Angles:      map[string]float64{"ang-c": 70},
		},
	}

	res, err := Run(s)
	require.NoError(t, err)

	assert.True(t, res.Pass, "errors: %v", res.Errors)
	assert.Empty(t, res.Errors)
	assert.Equal(t, "run-1", res.Solve.RunToken)
	assert.Equal(t, 3, res.Solve.SolvedCount)
}

func TestRun_ValueMismatchReported(t *testing.T) {
	s := &Scenario{
		Name:     "triangle-wrong",
		RunToken: "run-1",
		Diagram:  triangleSnapshot(),
		Expect: Expectation{
			Angles: map[string]float64{"ang-c": 90},
		},
	}

	res, err := Run(s)
	require.NoError(t, err)

	assert.False(t, res.Pass)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "ang-c")
	assert.Contains(t, res.Errors[0], "want 90.0°")
}

func TestRun_UnknownExpectation(t *testing.T) {
	s := &Scenario{
		Name:     "stuck",
		RunToken: "run-1",
		Diagram: &geom.Snapshot{
			Points: []geom.Point{{ID: "V"}, {ID: "A"}, {ID: "B"}},
			Adjacency: map[geom.PointID][]geom.PointID{
				"V": {"A", "B"},
				"A": {"V"},
				"B": {"V"},
			},
			Angles: []*geom.Angle{
				{ID: "ang-v", Vertex: "V", Rays: [2]geom.PointID{"A", "B"}},
			},
		},
		Expect: Expectation{
			SolvedCount: iptr(0),
			Unknown:     []string{"ang-v"},
		},
	}

	res, err := Run(s)
	require.NoError(t, err)
	assert.True(t, res.Pass, "errors: %v", res.Errors)
}

func TestRun_MissingAngleIDReported(t *testing.T) {
	s := &Scenario{
		Name:     "bad-id",
		RunToken: "run-1",
		Diagram:  triangleSnapshot(),
		Expect: Expectation{
			Angles: map[string]float64{"ang-zz": 10},
		},
	}

	res, err := Run(s)
	require.NoError(t, err)

	assert.False(t, res.Pass)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "no such angle")
}

func TestRun_InvalidDiagram(t *testing.T) {
	snap := triangleSnapshot()
	snap.Angles[2].Rays = [2]geom.PointID{"A", "A"}
	s := &Scenario{Name: "broken", RunToken: "run-1", Diagram: snap}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building diagram")
}

func TestLoadScenario_DefaultsRunToken(t *testing.T) {
	path := writeScenario(t, `
name: minimal
diagram:
  points: [{id: V}, {id: A}, {id: B}]
  adjacency:
    V: [A, B]
    A: [V]
    B: [V]
  angles:
    - {id: ang-v, vertex: V, rays: [A, B], value: 30}
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "minimal", s.Name)
	assert.Equal(t, DefaultRunToken, s.RunToken)
	require.Len(t, s.Diagram.Angles, 1)
	require.NotNil(t, s.Diagram.Angles[0].Value)
	assert.InDelta(t, 30, *s.Diagram.Angles[0].Value, 0.001)
}

func TestLoadScenario_Rejects(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "diagram:\n  angles:\n    - {id: x, vertex: V, rays: [A, B]}\n",
			wantErr: "missing name",
		},
		{
			name:    "missing diagram",
			content: "name: nodiag\n",
			wantErr: "missing diagram",
		},
		{
			name:    "no angles",
			content: "name: empty\ndiagram:\n  points: [{id: A}]\n",
			wantErr: "no angles",
		},
		{
			name: "bad outcome",
			content: `name: bad
diagram:
  angles:
    - {id: x, vertex: V, rays: [A, B]}
expect:
  outcome: exploded
`,
			wantErr: "invalid expected outcome",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadScenario_NotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading scenario")
}

func TestLoadScenarioDir(t *testing.T) {
	scenarios, err := LoadScenarioDir("testdata/scenarios")
	require.NoError(t, err)
	require.Len(t, scenarios, 3)

	// Sorted by file name.
	assert.Equal(t, "isosceles_apex", scenarios[0].Name)
	assert.Equal(t, "linear_pair", scenarios[1].Name)
	assert.Equal(t, "triangle_closure", scenarios[2].Name)
}

func TestLoadScenarioDir_Empty(t *testing.T) {
	_, err := LoadScenarioDir(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scenarios found")
}
