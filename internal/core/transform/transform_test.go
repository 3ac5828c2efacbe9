package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gesturekit/gesturekit/internal/core/geometry"
)

const epsilon = 1e-9

func assertTransformEqual(t *testing.T, want, got Transform) {
	t.Helper()
	assert.InDelta(t, want.M.X.X, got.M.X.X, epsilon)
	assert.InDelta(t, want.M.X.Y, got.M.X.Y, epsilon)
	assert.InDelta(t, want.M.Y.X, got.M.Y.X, epsilon)
	assert.InDelta(t, want.M.Y.Y, got.M.Y.Y, epsilon)
	assert.InDelta(t, want.T.X, got.T.X, epsilon)
	assert.InDelta(t, want.T.Y, got.T.Y, epsilon)
}

func TestCascadeIdentity(t *testing.T) {
	tr := Transform{
		M: geometry.Matrix{X: geometry.Vector{X: 2, Y: 0.5}, Y: geometry.Vector{X: -0.5, Y: 2}},
		T: geometry.Vector{X: -40, Y: 12},
	}

	assertTransformEqual(t, tr, Cascade(tr, Identity()))
	assertTransformEqual(t, tr, Cascade(Identity(), tr))
}

func TestCascadeAppliesInnerFirst(t *testing.T) {
	scale2 := Transform{M: geometry.Matrix{X: geometry.Vector{X: 2}, Y: geometry.Vector{Y: 2}}}
	shift := Transform{M: geometry.IdentityMatrix(), T: geometry.Vector{X: 10, Y: 0}}

	// (scale2 ∘ shift)(p) = scale2(p + (10,0))
	composed := Cascade(scale2, shift)
	got := composed.Apply(geometry.Vector{X: 1, Y: 1})
	assert.InDelta(t, 22, got.X, epsilon)
	assert.InDelta(t, 2, got.Y, epsilon)
}

func TestLerpBoundaries(t *testing.T) {
	z := Transform{
		M: geometry.Matrix{X: geometry.Vector{X: 3, Y: 1}, Y: geometry.Vector{X: -1, Y: 3}},
		T: geometry.Vector{X: -120, Y: 60},
	}
	id := Identity()

	assertTransformEqual(t, z, Lerp(z, id, 0))
	assertTransformEqual(t, id, Lerp(z, id, 1))

	half := Lerp(z, id, 0.5)
	assert.InDelta(t, 2, half.M.X.X, epsilon)
	assert.InDelta(t, -60, half.T.X, epsilon)
}
