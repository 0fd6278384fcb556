package solver

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/angleworks/protractor/internal/geom"
)

// DefaultMaxIterations bounds the fixed-point loop. Every useful
// deduction chain settles in far fewer passes; the cap only matters for
// pathological rule interactions, which terminate as nonconvergence
// instead of hanging the host.
const DefaultMaxIterations = 100

// Outcome distinguishes a completed solve (possibly with unsolved angles
// or reported contradictions) from one aborted by an unexpected runtime
// error inside a rule.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
)

// Result is the completion summary of one solve call.
type Result struct {
	RunToken    string       `json:"run_token"`
	Outcome     Outcome      `json:"outcome"`
	Error       string       `json:"error,omitempty"`
	Iterations  int          `json:"iterations"`
	SolvedCount int          `json:"solved_count"`
	History     []Change     `json:"solving_history"`
	Validation  Tally        `json:"validation"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`

	// ExecutionTime is the wall time of the call. ExecutionTimeMs mirrors
	// it for summary consumers that want a plain number.
	ExecutionTime   time.Duration `json:"-"`
	ExecutionTimeMs float64       `json:"execution_time_ms"`
}

// Tally is the read-only triangle validation outcome: for every
// enumerated triangle with all three interior angles known, the sum must
// be 180° within tolerance. Violations are reported, never corrected.
type Tally struct {
	Valid          int      `json:"valid"`
	Invalid        int      `json:"invalid"`
	Incomplete     int      `json:"incomplete"`
	Contradictions []string `json:"contradictions,omitempty"`
}

// Option configures a Solver.
type Option func(*Solver)

// WithMaxIterations overrides the fixed-point iteration cap.
func WithMaxIterations(n int) Option {
	return func(s *Solver) {
		s.maxIterations = n
	}
}

// WithRunTokenGenerator substitutes the run-token source. Tests use
// FixedGenerator for deterministic output.
func WithRunTokenGenerator(gen RunTokenGenerator) Option {
	return func(s *Solver) {
		s.tokens = gen
	}
}

// WithChangeListener registers a listener notified of every committed
// angle change. The editor attaches its re-render hook here.
func WithChangeListener(fn ChangeListener) Option {
	return func(s *Solver) {
		s.listeners = append(s.listeners, fn)
	}
}

// WithRules substitutes the rule set. Used by tests to isolate a single
// rule inside the real loop; production callers keep DefaultRules.
func WithRules(rules []Rule) Option {
	return func(s *Solver) {
		s.rules = append([]Rule(nil), rules...)
	}
}

// Solver drives the theorem rules to a fixed point.
//
// A Solver is stateless between calls and safe to reuse, but one mutable
// angle set must not be solved by two concurrent calls: callers serialize
// Solve invocations per diagram. CanBeSolved is safe to call concurrently
// with anything, it only touches its own clone.
type Solver struct {
	rules         []Rule
	maxIterations int
	tokens        RunTokenGenerator
	listeners     []ChangeListener
}

// New creates a Solver with the default rule set in priority order.
func New(opts ...Option) *Solver {
	s := &Solver{
		rules:         DefaultRules(),
		maxIterations: DefaultMaxIterations,
		tokens:        UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve runs the fixed-point loop over the graph's live angle set.
//
// The loop stops once every angle is known, but never before a first
// full rule pass: even a fully known diagram is run through the rules so
// that derivations disagreeing with locked or stale values surface as
// diagnostics. Otherwise it applies every rule once per iteration, in
// priority order, ORing their changed flags, until an iteration changes
// nothing or the cap is reached. A read-only triangle validation pass
// follows.
//
// Solve never returns an error for a geometric contradiction; those
// degrade to the validation tally and diagnostics. A panic inside a rule
// is recovered here, logged, and surfaced as a failed outcome. Values
// committed before the panic remain valid: each rule's partial work is
// independently consistent.
func (s *Solver) Solve(g *geom.Graph) (res *Result) {
	start := time.Now()
	token := s.tokens.Generate()
	guard := NewGuard(s.listeners...)

	res = &Result{
		RunToken: token,
		Outcome:  OutcomeCompleted,
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("solve aborted by rule panic",
				"run", token,
				"error", fmt.Sprintf("%v", r),
			)
			res.Outcome = OutcomeFailed
			res.Error = fmt.Sprintf("%v", r)
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Code:    CodeHostException,
				Message: res.Error,
			})
		}
		res.History = guard.History()
		res.Diagnostics = append(guard.Diagnostics(), res.Diagnostics...)
		res.SolvedCount = g.KnownCount()
		res.ExecutionTime = time.Since(start)
		res.ExecutionTimeMs = float64(res.ExecutionTime) / float64(time.Millisecond)
	}()

	slog.Info("solve starting",
		"run", token,
		"angles", len(g.Angles),
		"known", g.KnownCount(),
	)

	for res.Iterations < s.maxIterations {
		// The all-known exit only applies after a full pass. A diagram
		// that arrives fully known (every user constraint is a known
		// value) still gets one pass, so derivations conflicting with a
		// locked value reach the guard and are recorded.
		if res.Iterations > 0 && g.KnownCount() == len(g.Angles) {
			break
		}
		changed := false
		for _, rule := range s.rules {
			if rule.Apply(g, guard) {
				slog.Debug("rule produced change", "run", token, "rule", rule.Name)
				changed = true
			}
		}
		res.Iterations++
		if !changed {
			break
		}
	}

	if res.Iterations == s.maxIterations && g.KnownCount() < len(g.Angles) {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Code:    CodeNonconvergence,
			Message: fmt.Sprintf("iteration cap %d reached with %d of %d angles unknown", s.maxIterations, len(g.Angles)-g.KnownCount(), len(g.Angles)),
		})
	}

	res.Validation = ValidateTriangles(g)

	slog.Info("solve finished",
		"run", token,
		"iterations", res.Iterations,
		"solved", g.KnownCount(),
		"invalid_triangles", res.Validation.Invalid,
	)
	return res
}

// ValidateTriangles tallies triangle consistency without mutating
// anything: every triangle whose three interior angles are known must sum
// to 180° within tolerance.
func ValidateTriangles(g *geom.Graph) Tally {
	var tally Tally
	for _, t := range g.Triangles {
		var interior [3]*geom.Angle
		complete := true
		for i, v := range t.Vertices {
			interior[i] = g.TriangleAngle(t, v)
			if interior[i] == nil || !interior[i].Known() {
				complete = false
			}
		}
		if !complete {
			tally.Incomplete++
			continue
		}
		sum := interior[0].Val() + interior[1].Val() + interior[2].Val()
		if math.Abs(sum-geom.StraightAngle) <= geom.Tolerance {
			tally.Valid++
			continue
		}
		tally.Invalid++
		tally.Contradictions = append(tally.Contradictions, fmt.Sprintf(
			"triangle %s%s%s: angles sum to %.1f°, expected 180°",
			t.Vertices[0], t.Vertices[1], t.Vertices[2], sum,
		))
	}
	return tally
}
