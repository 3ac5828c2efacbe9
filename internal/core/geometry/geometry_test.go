package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

func TestVectorOps(t *testing.T) {
	a := Vector{X: 3, Y: 4}
	b := Vector{X: -1, Y: 2}

	assert.Equal(t, Vector{X: 2, Y: 6}, a.Add(b))
	assert.Equal(t, Vector{X: 4, Y: 2}, a.Sub(b))
	assert.Equal(t, Vector{X: 6, Y: 8}, Scale(2, a))
	assert.InDelta(t, 5.0, a.Length(), epsilon)
	assert.InDelta(t, 3*-1+4*2, a.Dot(b), epsilon)
	assert.InDelta(t, 3*2-4*-1, a.Wedge(b), epsilon)
}

func TestWedgeAntisymmetric(t *testing.T) {
	a := Vector{X: 1.5, Y: -2}
	b := Vector{X: 0.25, Y: 7}
	assert.InDelta(t, -a.Wedge(b), b.Wedge(a), epsilon)
	assert.InDelta(t, 0, a.Wedge(a), epsilon)
}

func TestMatrixApply(t *testing.T) {
	// Columns are the images of the basis vectors.
	m := Matrix{X: Vector{X: 2, Y: 1}, Y: Vector{X: -1, Y: 3}}

	assert.Equal(t, m.X, m.Apply(Vector{X: 1}))
	assert.Equal(t, m.Y, m.Apply(Vector{Y: 1}))

	got := m.Apply(Vector{X: 2, Y: 3})
	assert.InDelta(t, 2*2+3*-1, got.X, epsilon)
	assert.InDelta(t, 2*1+3*3, got.Y, epsilon)
}

func TestMatrixMulIdentity(t *testing.T) {
	m := Matrix{X: Vector{X: 2, Y: 1}, Y: Vector{X: -1, Y: 3}}
	id := IdentityMatrix()

	assert.Equal(t, m, id.Mul(m))
	assert.Equal(t, m, m.Mul(id))
}

func TestMatrixMulComposes(t *testing.T) {
	a := Matrix{X: Vector{X: 0, Y: 1}, Y: Vector{X: -1, Y: 0}} // rotate 90deg
	b := Matrix{X: Vector{X: 2, Y: 0}, Y: Vector{X: 0, Y: 2}}  // scale 2

	v := Vector{X: 1, Y: 1}
	viaProduct := a.Mul(b).Apply(v)
	viaSteps := a.Apply(b.Apply(v))
	assert.InDelta(t, viaSteps.X, viaProduct.X, epsilon)
	assert.InDelta(t, viaSteps.Y, viaProduct.Y, epsilon)
}

func TestLerpBoundaries(t *testing.T) {
	u := Vector{X: 1, Y: 2}
	v := Vector{X: 5, Y: -4}

	assert.Equal(t, u, LerpVector(u, v, 0))
	assert.Equal(t, v, LerpVector(u, v, 1))

	mid := LerpVector(u, v, 0.5)
	assert.InDelta(t, 3, mid.X, epsilon)
	assert.InDelta(t, -1, mid.Y, epsilon)

	a := Matrix{X: Vector{X: 2, Y: 1}, Y: Vector{X: -1, Y: 3}}
	id := IdentityMatrix()
	assert.Equal(t, a, LerpMatrix(a, id, 0))
	assert.Equal(t, id, LerpMatrix(a, id, 1))
}
