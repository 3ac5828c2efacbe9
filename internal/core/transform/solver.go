package transform

import (
	"github.com/gesturekit/gesturekit/internal/core/geometry"
)

// PointPair is two 2D points: either both touch contacts of a two-finger
// gesture, or a single contact and a synthetic point offset by (1,1) that
// makes a one-finger pan solvable.
type PointPair [2]geometry.Vector

// Delta returns the vector from the first point to the second.
func (p PointPair) Delta() geometry.Vector {
	return p[1].Sub(p[0])
}

// Solve computes the similarity transform mapping the source pair onto
// the destination pair: a rotation+uniform-scale matrix when rotate is
// true, a pure scale otherwise, plus the translation aligning the first
// points.
//
// The source pair must have non-zero separation; Solve divides by the
// squared source delta. Callers guard that precondition.
func Solve(src, dst PointPair, rotate bool) Transform {
	a, b := src.Delta(), dst.Delta()

	var m geometry.Matrix
	if rotate {
		m = rotateScale(a, b)
	} else {
		m = scaleOnly(a, b)
	}

	return Transform{M: m, T: dst[0].Sub(m.Apply(src[0]))}
}

// rotateScale returns the unique shear-free matrix R with R(a) = b.
// Decomposing b against a gives the scale along a and the rotational
// component perpendicular to it.
func rotateScale(a, b geometry.Vector) geometry.Matrix {
	s := a.Dot(b) / a.Dot(a)
	w := a.Wedge(b) / a.Dot(a)
	return geometry.Matrix{
		X: geometry.Vector{X: s, Y: w},
		Y: geometry.Vector{X: -w, Y: s},
	}
}

// scaleOnly returns a uniform scale by |b|/|a|, ignoring direction.
func scaleOnly(a, b geometry.Vector) geometry.Matrix {
	s := b.Length() / a.Length()
	return geometry.Matrix{
		X: geometry.Vector{X: s},
		Y: geometry.Vector{Y: s},
	}
}
