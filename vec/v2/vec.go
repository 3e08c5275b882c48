//-----------------------------------------------------------------------------
/*

Floating point 2D vectors.

*/
//-----------------------------------------------------------------------------

package v2

import "math"

//-----------------------------------------------------------------------------

// Vec is a 2D float64 vector.
type Vec struct {
	X, Y float64
}

// Add returns the sum of two vectors.
func (a Vec) Add(b Vec) Vec {
	return Vec{a.X + b.X, a.Y + b.Y}
}

// Sub returns the difference of two vectors.
func (a Vec) Sub(b Vec) Vec {
	return Vec{a.X - b.X, a.Y - b.Y}
}

// MulScalar multiplies each component by a scalar.
func (a Vec) MulScalar(k float64) Vec {
	return Vec{a.X * k, a.Y * k}
}

// Dot returns the dot product of two vectors.
func (a Vec) Dot(b Vec) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Length returns the Euclidean length of a vector.
func (a Vec) Length() float64 {
	return math.Hypot(a.X, a.Y)
}

// Normalize scales a vector to unit length.
func (a Vec) Normalize() Vec {
	l := a.Length()
	return Vec{a.X / l, a.Y / l}
}

// Rotate rotates a vector counter-clockwise by the given angle in radians.
func (a Vec) Rotate(angle float64) Vec {
	s, c := math.Sincos(angle)
	return Vec{c*a.X - s*a.Y, s*a.X + c*a.Y}
}

//-----------------------------------------------------------------------------
