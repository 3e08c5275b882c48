//-----------------------------------------------------------------------------
/*

Sphere

*/
//-----------------------------------------------------------------------------

package sdf

import (
	"errors"

	v3 "github.com/truescad/truescad/vec/v3"
)

//-----------------------------------------------------------------------------

// sphere is a sphere of the given radius centered on the origin.
type sphere struct {
	radius float64
	bb     Box3
}

// Sphere3D returns a sphere of the given radius centered on the origin.
func Sphere3D(radius float64) (SDF3, error) {
	if radius <= 0 {
		return nil, errors.New("radius <= 0")
	}
	return &sphere{
		radius: radius,
		bb: NewBox3(
			v3.Vec{X: -radius, Y: -radius, Z: -radius},
			v3.Vec{X: radius, Y: radius, Z: radius},
		),
	}, nil
}

// Evaluate returns the signed distance to the sphere.
func (s *sphere) Evaluate(p v3.Vec, slack float64) float64 {
	if approx := s.bb.Distance(p); approx > slack {
		return approx
	}
	return p.Length() - s.radius
}

// Normal returns the normal of the sphere at p.
func (s *sphere) Normal(p v3.Vec) v3.Vec {
	return p.Normalize()
}

// BoundingBox returns the bounding box of the sphere.
func (s *sphere) BoundingBox() Box3 {
	return s.bb
}

// SetParameters is a no-op for primitives.
func (s *sphere) SetParameters(params *PrimitiveParameters) {}

//-----------------------------------------------------------------------------
