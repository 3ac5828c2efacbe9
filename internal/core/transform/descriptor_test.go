package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gesturekit/gesturekit/internal/core/geometry"
)

func scaleTransform(s float64) Transform {
	return Transform{M: geometry.Matrix{
		X: geometry.Vector{X: s},
		Y: geometry.Vector{Y: s},
	}}
}

func TestRenderScaleFloor(t *testing.T) {
	d := Render(scaleTransform(0.5), nil)
	require.NotNil(t, d)
	assert.Equal(t, 1.0, d.A)
	assert.Equal(t, 1.0, d.D)
}

func TestRenderWithoutBoundaryPassesThrough(t *testing.T) {
	tr := Transform{
		M: geometry.Matrix{X: geometry.Vector{X: 2, Y: 0.3}, Y: geometry.Vector{X: -0.3, Y: 2}},
		T: geometry.Vector{X: -500, Y: 900},
	}
	d := Render(tr, nil)
	require.NotNil(t, d)
	assert.Equal(t, &Descriptor{A: 2, B: 0.3, C: -0.3, D: 2, E: -500, F: 900}, d)
}

func TestRenderIdentityCollapsesToNative(t *testing.T) {
	b := &Boundary{ViewportWidth: 400, ViewportHeight: 700, ContentWidth: 400, ContentHeight: 2000}
	assert.Nil(t, Render(Identity(), b))
}

func TestRenderZoomedOutCollapsesToNative(t *testing.T) {
	// Below native scale the floor takes both diagonals back to 1, so
	// the surface returns to native scrolling.
	b := &Boundary{ViewportWidth: 400, ViewportHeight: 700, ContentWidth: 400, ContentHeight: 2000}
	assert.Nil(t, Render(scaleTransform(0.25), b))
}

func TestRenderClampsPanToContentEdges(t *testing.T) {
	b := &Boundary{ViewportWidth: 400, ViewportHeight: 700, ContentWidth: 400, ContentHeight: 2000}

	tr := scaleTransform(2)
	tr.T = geometry.Vector{X: -10_000, Y: -50_000}

	d := Render(tr, b)
	require.NotNil(t, d)

	// dx = 400*2 - 400; dy = 2000*2 - 700 - 0 (viewport shorter than
	// scaled content, no native scroll).
	assert.Equal(t, -400.0, d.E)
	assert.Equal(t, -3300.0, d.F)
}

func TestRenderClampsPanUpperBound(t *testing.T) {
	b := &Boundary{ViewportWidth: 400, ViewportHeight: 700, ContentWidth: 400, ContentHeight: 2000}

	tr := scaleTransform(2)
	tr.T = geometry.Vector{X: 10_000, Y: 50_000}

	d := Render(tr, b)
	require.NotNil(t, d)
	assert.Equal(t, 0.0, d.E)
	assert.Equal(t, 0.0, d.F)
}

func TestRenderCompensatesNativeScroll(t *testing.T) {
	b := &Boundary{
		ScrollTop:      100,
		ViewportWidth:  400,
		ViewportHeight: 700,
		ContentWidth:   400,
		ContentHeight:  2000,
	}

	d := Render(scaleTransform(2), b)
	require.NotNil(t, d)

	// Translation 0 is within [-dy, scrollTop*sx], so only the scroll
	// compensation shows up in F.
	assert.Equal(t, 0.0, d.E)
	assert.Equal(t, -200.0, d.F)
}

func TestRenderShortContentUsesSizeDifference(t *testing.T) {
	// Scaled content still fits the viewport: the pan bound is just the
	// size difference.
	b := &Boundary{ViewportWidth: 400, ViewportHeight: 1000, ContentWidth: 400, ContentHeight: 400}

	tr := scaleTransform(2)
	tr.T = geometry.Vector{X: 0, Y: -10_000}

	d := Render(tr, b)
	require.NotNil(t, d)
	assert.Equal(t, -200.0, d.F) // |1000 - 400*2|
}
