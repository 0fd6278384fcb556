package solver

import (
	"errors"
	"fmt"
)

// Diagnostic records a condition the solver detected but deliberately did
// not throw for. Geometric trouble degrades to reporting: the result
// carries these records and the editor decides how to present them.
type Diagnostic struct {
	// Code identifies the condition category.
	Code DiagnosticCode

	// Message is a human-readable description.
	Message string

	// AngleID identifies the affected angle, when one is involved.
	AngleID string

	// Theorem names the rule that surfaced the condition.
	Theorem string
}

// DiagnosticCode categorizes solver diagnostics.
type DiagnosticCode string

const (
	// CodeSoftInconsistency indicates two values that should agree
	// disagreed beyond tolerance; the first-discovered value won.
	CodeSoftInconsistency DiagnosticCode = "SOFT_INCONSISTENCY"

	// CodeUnsatisfiableConstraint indicates a user-locked value conflicts
	// with a derivable one. Locked values are never corrected.
	CodeUnsatisfiableConstraint DiagnosticCode = "UNSATISFIABLE_CONSTRAINT"

	// CodeNonconvergence indicates the iteration cap was reached with
	// angles still unknown.
	CodeNonconvergence DiagnosticCode = "NONCONVERGENCE"

	// CodeHostException indicates an unexpected runtime error inside a
	// rule, caught at the top of the solve.
	CodeHostException DiagnosticCode = "HOST_EXCEPTION"
)

// Error implements the error interface so diagnostics can travel through
// error-shaped plumbing when a host wants them to.
func (d *Diagnostic) Error() string {
	if d.AngleID != "" && d.Theorem != "" {
		return fmt.Sprintf("%s: %s (angle=%s, theorem=%s)", d.Code, d.Message, d.AngleID, d.Theorem)
	}
	if d.AngleID != "" {
		return fmt.Sprintf("%s: %s (angle=%s)", d.Code, d.Message, d.AngleID)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// IsUnsatisfiable reports whether err is an unsatisfiable-constraint
// diagnostic. Uses errors.As to handle wrapped errors.
func IsUnsatisfiable(err error) bool {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d.Code == CodeUnsatisfiableConstraint
	}
	return false
}

// IsNonconvergence reports whether err is a nonconvergence diagnostic.
func IsNonconvergence(err error) bool {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d.Code == CodeNonconvergence
	}
	return false
}
