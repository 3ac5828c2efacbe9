// Package transform implements composable 2D affine transforms and the
// similarity solver that derives them from touch point correspondences.
package transform

import (
	"github.com/gesturekit/gesturekit/internal/core/geometry"
)

// Transform is the affine map f(x) = Mx + T. Transforms are immutable
// values; Cascade and Lerp return new ones.
type Transform struct {
	M geometry.Matrix `json:"m"`
	T geometry.Vector `json:"t"`
}

// Identity returns the transform that maps every point to itself.
func Identity() Transform {
	return Transform{M: geometry.IdentityMatrix()}
}

// Cascade returns the composition t∘u: u is applied first, then t.
// The gesture engine always cascades the newest incremental transform
// as the outer map over the previously committed one.
func Cascade(t, u Transform) Transform {
	return Transform{
		M: t.M.Mul(u.M),
		T: t.M.Apply(u.T).Add(t.T),
	}
}

// Apply maps the point v through the transform.
func (t Transform) Apply(v geometry.Vector) geometry.Vector {
	return t.M.Apply(v).Add(t.T)
}

// Lerp blends the matrix and translation of z toward i independently.
// It is a coefficient-wise blend, not a rigid-motion interpolation,
// which is acceptable for the short reset animation it serves.
func Lerp(z, i Transform, p float64) Transform {
	return Transform{
		M: geometry.LerpMatrix(z.M, i.M, p),
		T: geometry.LerpVector(z.T, i.T, p),
	}
}
