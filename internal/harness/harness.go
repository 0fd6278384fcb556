package harness

import (
	"fmt"
	"math"
	"sort"

	"github.com/angleworks/protractor/internal/geom"
	"github.com/angleworks/protractor/internal/solver"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Pass is true when every expectation matched.
	Pass bool `json:"pass"`

	// Errors lists expectation mismatches. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Solve is the raw solver result, kept for golden snapshots.
	Solve *solver.Result `json:"solve"`

	// Graph is the solved graph; golden snapshots read final values
	// from it.
	Graph *geom.Graph `json:"-"`
}

// AddError records an expectation mismatch and fails the result.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run executes a scenario: build the graph, solve with the scenario's
// fixed run token, and check every declared expectation.
//
// Run returns an error only for a broken scenario (invalid diagram); an
// expectation mismatch is reported through the result.
func Run(s *Scenario) (*Result, error) {
	g, err := geom.Build(s.Diagram)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: building diagram: %w", s.Name, err)
	}

	opts := []solver.Option{
		solver.WithRunTokenGenerator(solver.NewFixedGenerator(s.RunToken)),
	}
	if s.MaxIterations > 0 {
		opts = append(opts, solver.WithMaxIterations(s.MaxIterations))
	}

	res := &Result{Pass: true, Graph: g}
	res.Solve = solver.New(opts...).Solve(g)

	checkExpectations(s, g, res)
	return res, nil
}

func checkExpectations(s *Scenario, g *geom.Graph, res *Result) {
	expected := s.Expect.Outcome
	if expected == "" {
		expected = string(solver.OutcomeCompleted)
	}
	if string(res.Solve.Outcome) != expected {
		res.AddError("outcome: got %s, want %s", res.Solve.Outcome, expected)
	}

	if s.Expect.SolvedCount != nil && res.Solve.SolvedCount != *s.Expect.SolvedCount {
		res.AddError("solved count: got %d, want %d", res.Solve.SolvedCount, *s.Expect.SolvedCount)
	}

	for _, id := range sortedKeys(s.Expect.Angles) {
		want := s.Expect.Angles[id]
		a := findAngle(g, id)
		if a == nil {
			res.AddError("angle %s: no such angle in diagram", id)
			continue
		}
		if !a.Known() {
			res.AddError("angle %s: still unknown, want %.1f°", id, want)
			continue
		}
		if math.Abs(a.Val()-want) > geom.Tolerance {
			res.AddError("angle %s: got %.1f°, want %.1f°", id, a.Val(), want)
		}
	}

	for _, id := range s.Expect.Unknown {
		a := findAngle(g, id)
		if a == nil {
			res.AddError("angle %s: no such angle in diagram", id)
			continue
		}
		if a.Known() {
			res.AddError("angle %s: resolved to %.1f°, want unknown", id, a.Val())
		}
	}
}

func findAngle(g *geom.Graph, id string) *geom.Angle {
	for _, a := range g.Angles {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// sortedKeys keeps mismatch reporting in one deterministic order.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
