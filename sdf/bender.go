//-----------------------------------------------------------------------------
/*

Bender

Bends a field into a ring around the Z axis: the Y axis becomes the polar
radius and X the angle. The outer rim of the ring keeps the child's
original geometry.

*/
//-----------------------------------------------------------------------------

package sdf

import (
	"errors"
	"math"

	"github.com/truescad/truescad/vec/v2"
	v3 "github.com/truescad/truescad/vec/v3"
)

//-----------------------------------------------------------------------------

// bender bends a child field into a ring around the Z axis.
type bender struct {
	obj SDF3
	// (width for one full rotation) / (2*pi)
	widthScaler float64
	bb          Box3
}

// Bend3D bends a field into a ring, with width the x extent mapping to one
// full rotation. The child must be bounded in y and z.
func Bend3D(s SDF3, width float64) (SDF3, error) {
	if width <= 0 {
		return nil, errors.New("width <= 0")
	}
	childBox := s.BoundingBox()
	maxY := childBox.Max.Y
	if math.IsInf(maxY, 0) || math.IsInf(childBox.Min.Z, 0) || math.IsInf(childBox.Max.Z, 0) {
		return nil, errors.New("unbounded field")
	}
	return &bender{
		obj:         s,
		widthScaler: width / (2 * math.Pi),
		bb: NewBox3(
			v3.Vec{X: -maxY, Y: -maxY, Z: childBox.Min.Z},
			v3.Vec{X: maxY, Y: maxY, Z: childBox.Max.Z},
		),
	}, nil
}

// toPolar maps a world point to (angle, radius, z).
func (s *bender) toPolar(p v3.Vec) v3.Vec {
	return v3.Vec{
		X: math.Atan2(p.X, -p.Y),
		Y: math.Hypot(p.X, p.Y),
		Z: p.Z,
	}
}

// Evaluate returns a conservative signed distance to the bent field.
func (s *bender) Evaluate(p v3.Vec, slack float64) float64 {
	if approx := s.bb.Distance(p); approx > slack {
		return approx
	}
	objP := s.toPolar(p)
	r := objP.Y

	// If the bent object is a ring and p is near the center, the gap to the
	// inner margin of the (bent) child box is already a lower bound.
	centerToBox := s.obj.BoundingBox().Min.Y - r
	if centerToBox > slack {
		return centerToBox
	}

	// The circumference at radius r maps onto the width for one full
	// rotation, shrinking distances by r/widthScaler when inside the rim.
	xScaler := math.Min(r/s.widthScaler, 1)
	if xScaler < epsilon {
		// p sits on the polar singularity.
		xScaler = epsilon
	}
	objP.X *= s.widthScaler
	return s.obj.Evaluate(objP, slack/xScaler) * xScaler
}

// tiltNormal rescales the angular component of a child normal by the local
// circumference ratio.
func (s *bender) tiltNormal(n v3.Vec, polarP v3.Vec) v3.Vec {
	scaleAlongX := polarP.Y / s.widthScaler
	n.X /= scaleAlongX
	return n.Normalize()
}

// bendNormal maps a child-space normal back to world space.
func (s *bender) bendNormal(n v3.Vec, polarP v3.Vec) v3.Vec {
	n = s.tiltNormal(n, polarP)
	r := v2.Vec{X: n.X, Y: n.Y}.Rotate(polarP.X + math.Pi)
	return v3.Vec{X: r.X, Y: r.Y, Z: n.Z}
}

// Normal returns the normal of the bent field at p.
func (s *bender) Normal(p v3.Vec) v3.Vec {
	polarP := s.toPolar(p)
	objP := polarP
	objP.X *= s.widthScaler
	return s.bendNormal(s.obj.Normal(objP), polarP)
}

// BoundingBox returns the bounding box of the bent field.
func (s *bender) BoundingBox() Box3 {
	return s.bb
}

// SetParameters propagates to the child.
func (s *bender) SetParameters(params *PrimitiveParameters) {
	s.obj.SetParameters(params)
}

//-----------------------------------------------------------------------------
