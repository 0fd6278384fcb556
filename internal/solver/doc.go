// Package solver implements the angle-inference engine.
//
// The solver takes a geom.Graph built from an editor snapshot and deduces
// unknown angle values by iteratively applying classical plane-geometry
// theorems until a fixed point.
//
// ARCHITECTURE:
//
// Fixed-Point Rule Loop:
// All deduction happens in a single synchronous loop. Each iteration
// applies every theorem rule once, in priority order, and ORs their
// changed flags. The loop stops when an iteration changes nothing, when
// every angle is known, or at the iteration cap.
//
// Rule Contract:
// A rule is a pure function (graph, writer) -> changed. Rules read the
// graph freely but write only through the guard, and every rule is
// idempotent: applying it twice to the same state changes nothing the
// second time.
//
// Single Mutation Funnel:
// The Guard is the only code that assigns an angle value. It enforces the
// user-constraint lock, absorbs writes already consistent within
// tolerance, rounds to one decimal, appends the audit history entry and
// notifies change listeners. Because every rule writes through it, the
// lock guarantee and the audit trail come for free.
//
// CRITICAL PATTERNS:
//
// Priority order:
// Rules are registered once, in priority order, and that order NEVER
// changes during a solve. Fast, safe rules (label propagation, linear
// pairs) run before speculative ones (angle addition, circle theorems) so
// cheap facts land first and the expensive rules see them.
//
// Contradictions are reported, never repaired:
// A locked value that conflicts with a derivable one, or a triangle whose
// known angles miss 180, is tallied and surfaced in the result. The loop
// never throws for a geometric contradiction and never edits a locked
// value to make the diagram consistent.
//
// Dry runs share nothing mutable:
// CanBeSolved clones the angle list, runs the same loop against the clone
// with no listeners attached, and leaves the live diagram untouched on
// every exit path including panics.
package solver
