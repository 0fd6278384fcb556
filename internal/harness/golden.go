package harness

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/angleworks/protractor/internal/geom"
	"github.com/angleworks/protractor/internal/solver"
)

// HistorySnapshot captures the deterministic part of a scenario run for
// golden comparison: the solving history plus the final angle values.
// Wall-time fields are deliberately excluded.
type HistorySnapshot struct {
	ScenarioName string          `json:"scenario_name"`
	RunToken     string          `json:"run_token"`
	Outcome      solver.Outcome  `json:"outcome"`
	Iterations   int             `json:"iterations"`
	SolvedCount  int             `json:"solved_count"`
	History      []solver.Change `json:"solving_history"`
	Validation   solver.Tally    `json:"validation"`
	Angles       []FinalAngle    `json:"angles"`
}

// FinalAngle is one angle's final value in a snapshot, nil when unknown.
type FinalAngle struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

// Snapshot builds the golden snapshot for a finished run.
func Snapshot(name string, res *Result) *HistorySnapshot {
	s := &HistorySnapshot{
		ScenarioName: name,
		RunToken:     res.Solve.RunToken,
		Outcome:      res.Solve.Outcome,
		Iterations:   res.Solve.Iterations,
		SolvedCount:  res.Solve.SolvedCount,
		History:      res.Solve.History,
		Validation:   res.Solve.Validation,
	}
	for _, a := range res.Graph.Angles {
		s.Angles = append(s.Angles, FinalAngle{ID: a.ID, Name: a.Name(), Value: a.Value})
	}
	sort.Slice(s.Angles, func(i, j int) bool { return s.Angles[i].ID < s.Angles[j].ID })
	return s
}

// RunWithGolden executes a scenario and compares its history snapshot
// against testdata/golden/{scenario.Name}.golden.
//
// Regenerate golden files with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) (*Result, error) {
	t.Helper()

	res, err := Run(s)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(Snapshot(s.Name, res), "", "  ")
	if err != nil {
		return nil, err
	}
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, data)

	return res, nil
}

// Tolerance re-exported for scenario authors tuning expectations.
const Tolerance = geom.Tolerance
