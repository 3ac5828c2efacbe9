package geometry

import "math"

// Vector is an immutable 2D vector with page coordinates: origin at the
// top-left, Y increasing downward.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Scale returns l*v, componentwise.
func Scale(l float64, v Vector) Vector {
	return Vector{X: l * v.X, Y: l * v.Y}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Dot returns the inner product v·o.
func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Wedge returns the 2D cross product v∧o, the signed area of the
// parallelogram spanned by the two vectors.
func (v Vector) Wedge(o Vector) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Length returns the Euclidean norm of v.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are exactly zero.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// LerpVector returns the linear blend (1-t)u + tv.
func LerpVector(u, v Vector, t float64) Vector {
	return Scale(1-t, u).Add(Scale(t, v))
}
