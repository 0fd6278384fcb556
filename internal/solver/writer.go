package solver

import (
	"log/slog"
	"math"

	"github.com/angleworks/protractor/internal/geom"
)

// Change is one audit-trail entry: a single committed angle value with the
// theorem and human-readable reason that produced it. Listeners receive
// the same record the history keeps.
type Change struct {
	AngleID   string  `json:"angle_id"`
	AngleName string  `json:"angle_name"`
	Value     float64 `json:"value"`
	Theorem   string  `json:"theorem"`
	Reason    string  `json:"reason"`
}

// ChangeListener observes committed changes. The editor re-renders one
// angle per event; tests record them.
type ChangeListener func(Change)

// Writer is the mutation port every theorem rule writes through. Tests
// substitute a recording stub; the dry-run checker uses a guard with no
// listeners over cloned angles.
type Writer interface {
	// Set proposes value (degrees) for the angle. It returns true only if
	// the value was actually committed.
	Set(a *geom.Angle, value float64, theorem, reason string) bool
}

// Guard is the single mutation funnel for angle values.
//
// Write policy, in order:
//  1. The angle carries a user constraint: skip, log, record an
//     unsatisfiable-constraint diagnostic if the proposal disagrees.
//  2. The angle is known and the proposal is within tolerance: skip,
//     already consistent.
//  3. Otherwise commit the value rounded to one decimal, append the
//     history entry and notify listeners. Overwriting a known value
//     records a soft-inconsistency diagnostic; the write still wins
//     because the calling rule asked for a correction.
type Guard struct {
	history     []Change
	diagnostics []Diagnostic
	listeners   []ChangeListener
}

// NewGuard creates a guard notifying the given listeners on every commit.
func NewGuard(listeners ...ChangeListener) *Guard {
	return &Guard{listeners: listeners}
}

// Set implements Writer.
func (gd *Guard) Set(a *geom.Angle, value float64, theorem, reason string) bool {
	if a.Locked() {
		if math.Abs(*a.Constraint-value) > geom.Tolerance {
			gd.diagnostics = append(gd.diagnostics, Diagnostic{
				Code:    CodeUnsatisfiableConstraint,
				Message: "derived value conflicts with user constraint",
				AngleID: a.ID,
				Theorem: theorem,
			})
		}
		slog.Debug("write skipped: angle locked",
			"angle", a.ID,
			"locked", *a.Constraint,
			"proposed", value,
			"theorem", theorem,
		)
		return false
	}

	if a.Known() && math.Abs(a.Val()-value) < geom.Tolerance {
		return false
	}

	if a.Known() {
		gd.diagnostics = append(gd.diagnostics, Diagnostic{
			Code:    CodeSoftInconsistency,
			Message: "existing value overwritten by correction",
			AngleID: a.ID,
			Theorem: theorem,
		})
	}

	rounded := math.Round(value*10) / 10
	a.Value = &rounded

	change := Change{
		AngleID:   a.ID,
		AngleName: a.Name(),
		Value:     rounded,
		Theorem:   theorem,
		Reason:    reason,
	}
	gd.history = append(gd.history, change)
	for _, fn := range gd.listeners {
		fn(change)
	}

	slog.Debug("angle value committed",
		"angle", a.ID,
		"name", change.AngleName,
		"value", rounded,
		"theorem", theorem,
	)
	return true
}

// History returns a copy of the committed changes in commit order.
func (gd *Guard) History() []Change {
	out := make([]Change, len(gd.history))
	copy(out, gd.history)
	return out
}

// Diagnostics returns a copy of the soft-inconsistency and
// unsatisfiable-constraint records accumulated during the run.
func (gd *Guard) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(gd.diagnostics))
	copy(out, gd.diagnostics)
	return out
}

// Recorder is a Writer stub for rule unit tests. It records every
// proposal without touching any angle, so a rule's intent can be asserted
// independently of guard policy.
type Recorder struct {
	Proposals []Change
}

// Set implements Writer. Always reports no change.
func (r *Recorder) Set(a *geom.Angle, value float64, theorem, reason string) bool {
	r.Proposals = append(r.Proposals, Change{
		AngleID:   a.ID,
		AngleName: a.Name(),
		Value:     value,
		Theorem:   theorem,
		Reason:    reason,
	})
	return false
}
