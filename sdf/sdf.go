//-----------------------------------------------------------------------------
/*

Signed Distance Functions

The field interface consumed by the tessellator, plus the smoothing
parameters shared by composite fields.

Evaluate returns 0 on the object surface, negative values inside and
positive values outside. When the returned magnitude exceeds the slack
argument the value may be a cheap conservative bound (typically the
bounding box distance) instead of a proper field evaluation.

*/
//-----------------------------------------------------------------------------

package sdf

import (
	v3 "github.com/truescad/truescad/vec/v3"
)

//-----------------------------------------------------------------------------

// alwaysPrecise is the slack used where a proper (non short-circuit)
// evaluation is required, e.g. for normal estimation.
const alwaysPrecise = 1.0

// epsilon is the step used for numerical differentiation.
const epsilon = 1e-10

//-----------------------------------------------------------------------------

// SDF3 is the implicit field interface.
type SDF3 interface {
	// Evaluate returns a conservative approximation of the signed distance
	// at p. Values with magnitude above slack may be short-circuited.
	Evaluate(p v3.Vec, slack float64) float64
	// Normal returns the surface normal of the field at p.
	Normal(p v3.Vec) v3.Vec
	// BoundingBox returns the bounding box of the field.
	BoundingBox() Box3
	// SetParameters propagates smoothing parameters through composites.
	SetParameters(params *PrimitiveParameters)
}

//-----------------------------------------------------------------------------

// PrimitiveParameters tune the smooth CSG transition zones.
type PrimitiveParameters struct {
	// FadeRange is the fraction (0,1] of the smoothing band over which
	// normals blend between child and composite.
	FadeRange float64
	// RMultiplier scales the smoothing radius into the band within which
	// smoothing activates. Must be >= 1.
	RMultiplier float64
}

// defaults for the smooth CSG transition zones.
const (
	defaultFadeRange   = 0.1
	defaultRMultiplier = 1.0
)

//-----------------------------------------------------------------------------

// NumericalNormal estimates the field normal at p by central differences.
func NumericalNormal(s SDF3, p v3.Vec) v3.Vec {
	dx := s.Evaluate(v3.Vec{X: p.X + epsilon, Y: p.Y, Z: p.Z}, alwaysPrecise) -
		s.Evaluate(v3.Vec{X: p.X - epsilon, Y: p.Y, Z: p.Z}, alwaysPrecise)
	dy := s.Evaluate(v3.Vec{X: p.X, Y: p.Y + epsilon, Z: p.Z}, alwaysPrecise) -
		s.Evaluate(v3.Vec{X: p.X, Y: p.Y - epsilon, Z: p.Z}, alwaysPrecise)
	dz := s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z + epsilon}, alwaysPrecise) -
		s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z - epsilon}, alwaysPrecise)
	return v3.Vec{X: dx, Y: dy, Z: dz}.Normalize()
}

//-----------------------------------------------------------------------------
