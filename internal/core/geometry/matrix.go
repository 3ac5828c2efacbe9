package geometry

// Matrix is an immutable 2x2 linear map stored as two column vectors:
// X is the image of the x-axis basis vector, Y the image of the y-axis
// basis vector.
type Matrix struct {
	X Vector `json:"x"`
	Y Vector `json:"y"`
}

// IdentityMatrix returns the identity linear map.
func IdentityMatrix() Matrix {
	return Matrix{X: Vector{X: 1}, Y: Vector{Y: 1}}
}

// Apply returns M(v), the linear map applied to v.
func (m Matrix) Apply(v Vector) Vector {
	return Scale(v.X, m.X).Add(Scale(v.Y, m.Y))
}

// Mul returns the matrix product m·o, the linear map applying o first
// and then m.
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{X: m.Apply(o.X), Y: m.Apply(o.Y)}
}

// LerpMatrix blends the two column vectors independently: the result is
// not a geometric interpolation of rotation and scale, just a linear
// blend of the four coefficients.
func LerpMatrix(a, b Matrix, t float64) Matrix {
	return Matrix{
		X: LerpVector(a.X, b.X, t),
		Y: LerpVector(a.Y, b.Y, t),
	}
}
