//-----------------------------------------------------------------------------
/*

Axis-Aligned Slabs

A slab is the space between two parallel planes. Intersect three to get a
box, or narrow a cone into a frustum.

*/
//-----------------------------------------------------------------------------

package sdf

import (
	"errors"
	"math"

	v3 "github.com/truescad/truescad/vec/v3"
)

//-----------------------------------------------------------------------------

// slab is a slab of the given thickness centered on the plane through the
// origin perpendicular to the given axis (0 = x, 1 = y, 2 = z).
type slab struct {
	axis      int
	halfWidth float64
	bb        Box3
}

func newSlab(axis int, thickness float64) (SDF3, error) {
	if thickness <= 0 {
		return nil, errors.New("thickness <= 0")
	}
	d := 0.5 * thickness
	bb := InfiniteBox3()
	bb.Min.Set(axis, -d)
	bb.Max.Set(axis, d)
	return &slab{
		axis:      axis,
		halfWidth: d,
		bb:        bb,
	}, nil
}

// SlabX3D returns a slab of the given thickness perpendicular to the x axis.
func SlabX3D(thickness float64) (SDF3, error) {
	return newSlab(0, thickness)
}

// SlabY3D returns a slab of the given thickness perpendicular to the y axis.
func SlabY3D(thickness float64) (SDF3, error) {
	return newSlab(1, thickness)
}

// SlabZ3D returns a slab of the given thickness perpendicular to the z axis.
func SlabZ3D(thickness float64) (SDF3, error) {
	return newSlab(2, thickness)
}

// Evaluate returns the signed distance to the slab.
func (s *slab) Evaluate(p v3.Vec, slack float64) float64 {
	return math.Abs(p.Get(s.axis)) - s.halfWidth
}

// Normal returns the normal of the nearer slab plane. The sign follows the
// slab's own axis component of p.
func (s *slab) Normal(p v3.Vec) v3.Vec {
	n := v3.Vec{}
	if math.Signbit(p.Get(s.axis)) {
		n.Set(s.axis, -1)
	} else {
		n.Set(s.axis, 1)
	}
	return n
}

// BoundingBox returns the bounding box of the slab. It is infinite on the
// two in-plane axes.
func (s *slab) BoundingBox() Box3 {
	return s.bb
}

// SetParameters is a no-op for primitives.
func (s *slab) SetParameters(params *PrimitiveParameters) {}

//-----------------------------------------------------------------------------
