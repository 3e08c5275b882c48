//-----------------------------------------------------------------------------
/*

Cylinders and Cones

Both are aligned with the Z axis and unbounded along it. A cone starts out
with an infinite bounding box; intersect it with slabs and narrow the box
with SetBoundingBox to form a frustum.

*/
//-----------------------------------------------------------------------------

package sdf

import (
	"errors"
	"math"

	v3 "github.com/truescad/truescad/vec/v3"
)

//-----------------------------------------------------------------------------

// cylinder is an infinite cylinder along the Z axis.
type cylinder struct {
	radius float64
	bb     Box3
}

// Cylinder3D returns an infinite cylinder of the given radius along the
// Z axis.
func Cylinder3D(radius float64) (SDF3, error) {
	if radius <= 0 {
		return nil, errors.New("radius <= 0")
	}
	inf := math.Inf(1)
	return &cylinder{
		radius: radius,
		bb: NewBox3(
			v3.Vec{X: -radius, Y: -radius, Z: -inf},
			v3.Vec{X: radius, Y: radius, Z: inf},
		),
	}, nil
}

// Evaluate returns the signed distance to the cylinder.
func (s *cylinder) Evaluate(p v3.Vec, slack float64) float64 {
	if approx := s.bb.Distance(p); approx > slack {
		return approx
	}
	return math.Hypot(p.X, p.Y) - s.radius
}

// Normal returns the normal of the cylinder at p.
func (s *cylinder) Normal(p v3.Vec) v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y}.Normalize()
}

// BoundingBox returns the bounding box of the cylinder. It is infinite on
// the z axis.
func (s *cylinder) BoundingBox() Box3 {
	return s.bb
}

// SetParameters is a no-op for primitives.
func (s *cylinder) SetParameters(params *PrimitiveParameters) {}

//-----------------------------------------------------------------------------

// Cone is a double cone along the Z axis with its apex at z = -offset.
type Cone struct {
	slope float64
	// Offset of the apex from z = 0.
	offset float64
	// cos(atan(slope)), scales the radial excess into a distance.
	distanceMultiplier float64
	// sin(atan(slope)), the z component of the lateral normal.
	normalMultiplier float64
	bb               Box3
}

// Cone3D returns a double cone with the given lateral slope, apex at
// z = -offset. The bounding box is infinite until narrowed with
// SetBoundingBox.
func Cone3D(slope, offset float64) (*Cone, error) {
	if slope <= 0 {
		return nil, errors.New("slope <= 0")
	}
	d := math.Sqrt(slope*slope + 1)
	return &Cone{
		slope:              slope,
		offset:             offset,
		distanceMultiplier: 1 / d,
		normalMultiplier:   slope / d,
		bb:                 InfiniteBox3(),
	}, nil
}

// Evaluate returns a conservative signed distance to the cone surface.
func (s *Cone) Evaluate(p v3.Vec, slack float64) float64 {
	radius := s.slope * math.Abs(p.Z+s.offset)
	return (math.Hypot(p.X, p.Y) - radius) * s.distanceMultiplier
}

// Normal returns the lateral cone normal, sign-flipped across the apex.
func (s *Cone) Normal(p v3.Vec) v3.Vec {
	sign := 1.0
	if p.Z+s.offset < 0 {
		sign = -1.0
	}
	n := v3.Vec{X: p.X, Y: p.Y}.Normalize().MulScalar(s.distanceMultiplier)
	n.Z = -sign * s.normalMultiplier
	return n
}

// BoundingBox returns the bounding box of the cone.
func (s *Cone) BoundingBox() Box3 {
	return s.bb
}

// SetBoundingBox narrows the cone's region of interest, e.g. after
// intersecting it with slabs to form a frustum.
func (s *Cone) SetBoundingBox(bb Box3) {
	s.bb = bb
}

// SetParameters is a no-op for primitives.
func (s *Cone) SetParameters(params *PrimitiveParameters) {}

//-----------------------------------------------------------------------------
