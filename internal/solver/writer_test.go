package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angleworks/protractor/internal/geom"
	"github.com/angleworks/protractor/internal/testutil"
)

func testAngle() *geom.Angle {
	return &geom.Angle{ID: "ang-1", Vertex: "V", Rays: [2]geom.PointID{"A", "B"}}
}

func TestGuard_CommitsAndNotifies(t *testing.T) {
	var seen []Change
	gd := NewGuard(func(c Change) { seen = append(seen, c) })
	a := testAngle()

	ok := gd.Set(a, 33.33, TheoremTriangleSum, "because")

	require.True(t, ok)
	require.True(t, a.Known())
	assert.Equal(t, 33.3, a.Val(), "value rounds to one decimal")

	require.Len(t, seen, 1)
	assert.Equal(t, "ang-1", seen[0].AngleID)
	assert.Equal(t, 33.3, seen[0].Value)
	assert.Equal(t, TheoremTriangleSum, seen[0].Theorem)
	assert.Equal(t, "because", seen[0].Reason)

	history := gd.History()
	require.Len(t, history, 1)
	assert.Equal(t, seen[0], history[0])
}

func TestGuard_LockedAngleNeverWritten(t *testing.T) {
	gd := NewGuard()
	a := testAngle()
	a.Constraint = testutil.Float(90)
	a.Value = testutil.Float(90)

	ok := gd.Set(a, 45, TheoremAngleAddition, "conflict")

	assert.False(t, ok)
	assert.Equal(t, 90.0, a.Val())
	assert.Empty(t, gd.History())

	diags := gd.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, CodeUnsatisfiableConstraint, diags[0].Code)
	assert.Equal(t, "ang-1", diags[0].AngleID)
}

func TestGuard_LockedSkipWithinToleranceIsSilent(t *testing.T) {
	gd := NewGuard()
	a := testAngle()
	a.Constraint = testutil.Float(90)
	a.Value = testutil.Float(90)

	ok := gd.Set(a, 90.2, TheoremSupplementary, "agrees")

	assert.False(t, ok)
	assert.Empty(t, gd.Diagnostics(), "an agreeing proposal is not a conflict")
}

func TestGuard_ConsistentValueIsNoOp(t *testing.T) {
	gd := NewGuard()
	a := testAngle()
	a.Value = testutil.Float(70)

	ok := gd.Set(a, 70.4, TheoremSupplementary, "close enough")

	assert.False(t, ok)
	assert.Equal(t, 70.0, a.Val())
	assert.Empty(t, gd.History())
}

func TestGuard_OverwriteRecordsSoftInconsistency(t *testing.T) {
	gd := NewGuard()
	a := testAngle()
	a.Value = testutil.Float(70)

	ok := gd.Set(a, 80, TheoremSameLabel, "label correction")

	require.True(t, ok)
	assert.Equal(t, 80.0, a.Val())

	diags := gd.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, CodeSoftInconsistency, diags[0].Code)
}

func TestRecorder_NeverMutates(t *testing.T) {
	rec := &Recorder{}
	a := testAngle()

	ok := rec.Set(a, 60, TheoremVertical, "proposal")

	assert.False(t, ok)
	assert.False(t, a.Known())
	require.Len(t, rec.Proposals, 1)
	assert.Equal(t, 60.0, rec.Proposals[0].Value)
}
