package solver

import (
	"fmt"
	"log/slog"

	"github.com/angleworks/protractor/internal/geom"
)

// Report is the dry-run answer to "can this diagram be fully,
// consistently solved".
type Report struct {
	Solvable bool          `json:"solvable"`
	Reason   string        `json:"reason"`
	Details  ReportDetails `json:"details"`
}

// ReportDetails carries the dry run's raw numbers.
type ReportDetails struct {
	Iterations        int      `json:"iterations"`
	SolvedAngles      int      `json:"solved_angles"`
	TotalAngles       int      `json:"total_angles"`
	HasContradictions bool     `json:"has_contradictions"`
	Contradictions    []string `json:"contradictions,omitempty"`
}

// CanBeSolved answers solvability without touching live state.
//
// Only the angle list is cloned; adjacency, lines, triangles and circles
// are shared read-only. The same fixed-point loop runs against the clone
// with no listeners attached and its history discarded, then every
// triangle is scanned for sum mismatches.
//
// Shared state is never mutated on any exit path, including panics: a
// rule panic during the dry run yields a not-solvable report, not a
// corrupted diagram.
func (s *Solver) CanBeSolved(g *geom.Graph) (rep *Report) {
	clone := g.CloneAngles()
	guard := NewGuard()

	rep = &Report{}
	rep.Details.TotalAngles = len(clone.Angles)
	defer func() {
		if r := recover(); r != nil {
			slog.Error("solvability check aborted by rule panic",
				"error", fmt.Sprintf("%v", r),
			)
			rep.Solvable = false
			rep.Reason = fmt.Sprintf("solver error: %v", r)
		}
	}()

	for rep.Details.Iterations < s.maxIterations {
		// Same terminal discipline as Solve: a fully known clone still
		// gets one pass so constraint conflicts are exercised.
		if rep.Details.Iterations > 0 && clone.KnownCount() == len(clone.Angles) {
			break
		}
		changed := false
		for _, rule := range s.rules {
			if rule.Apply(clone, guard) {
				changed = true
			}
		}
		rep.Details.Iterations++
		if !changed {
			break
		}
	}

	tally := ValidateTriangles(clone)
	rep.Details.SolvedAngles = clone.KnownCount()
	rep.Details.HasContradictions = tally.Invalid > 0
	rep.Details.Contradictions = tally.Contradictions

	allSolved := rep.Details.SolvedAngles == rep.Details.TotalAngles
	rep.Solvable = allSolved && !rep.Details.HasContradictions
	switch {
	case rep.Solvable:
		rep.Reason = "all angles solvable and consistent"
	case rep.Details.HasContradictions:
		rep.Reason = fmt.Sprintf("%d triangle contradiction(s) detected", tally.Invalid)
	default:
		rep.Reason = fmt.Sprintf("%d of %d angles remain unknown", rep.Details.TotalAngles-rep.Details.SolvedAngles, rep.Details.TotalAngles)
	}
	return rep
}
