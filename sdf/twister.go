//-----------------------------------------------------------------------------
/*

Twister

Rotates the XY slice of a field by an angle proportional to z. The child
value is rescaled by the slope at the child's outer radius so the returned
value stays a conservative distance.

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

// twister twists a child field around the Z axis.
type twister struct {
	obj SDF3
	// 2*pi / (height for one full rotation)
	heightScaler float64
	valueScaler  float64
	bb           Box3
}

// Twist3D twists a field around the Z axis, with height the z distance for
// one full rotation. The child must be bounded in x and y. Construction is
// refused when the pitch is too tight against the child's radius for the
// value to remain a usable conservative distance.
func Twist3D(s SDF3, height float64) (SDF3, error) {
	if height == 0 {
		return nil, errors.New("height == 0")
	}
	childBox := s.BoundingBox()
	mx := math.Max(math.Abs(childBox.Min.X), math.Abs(childBox.Max.X))
	my := math.Max(math.Abs(childBox.Min.Y), math.Abs(childBox.Max.Y))
	radius := math.Hypot(mx, my)
	if math.IsInf(radius, 0) {
		return nil, errors.New("unbounded field")
	}

	// The slope on the outer edge is the ratio of height to circumference.
	// The value scaler is sin(atan(slope)).
	tanA := math.Abs(height) / (2 * math.Pi * radius)
	scaler := tanA / math.Sqrt(tanA*tanA+1)
	if scaler < 1e-9 {
		return nil, errors.New("twist pitch too tight for radius")
	}

	return &twister{
		obj:          s,
		heightScaler: 2 * math.Pi / height,
		valueScaler:  scaler,
		bb: NewBox3(
			v3.Vec{X: -radius, Y: -radius, Z: childBox.Min.Z},
			v3.Vec{X: radius, Y: radius, Z: childBox.Max.Z},
		),
	}, nil
}

// twistPoint maps a world point into child space.
func (s *twister) twistPoint(p v3.Vec) v3.Vec {
	r := v2.Vec{X: p.X, Y: p.Y}.Rotate(p.Z * s.heightScaler)
	return v3.Vec{X: r.X, Y: r.Y, Z: p.Z}
}

// tiltNormal accounts for the local shear: surfaces are twisted, so their
// normals tilt around the tangential direction, more so at larger radius.
func (s *twister) tiltNormal(normal v3.Vec, p v3.Vec) v3.Vec {
	radiusV := v2.Vec{X: p.X, Y: p.Y}
	radius := radiusV.Length()
	radiusV = radiusV.MulScalar(1 / radius)
	tangentV := v2.Vec{X: radiusV.Y, Y: -radiusV.X}

	// Project the in-plane component of the normal onto the tangent.
	tangentialProjection := tangentV.Dot(v2.Vec{X: normal.X, Y: normal.Y})
	tangentialShear := radius * s.heightScaler

	normal.Z -= tangentialShear * tangentialProjection
	return normal.Normalize()
}

// untwistNormal maps a child-space normal back to world space.
func (s *twister) untwistNormal(n v3.Vec, p v3.Vec) v3.Vec {
	r := v2.Vec{X: n.X, Y: n.Y}.Rotate(-p.Z * s.heightScaler)
	return s.tiltNormal(v3.Vec{X: r.X, Y: r.Y, Z: n.Z}, p)
}

// Evaluate returns a conservative signed distance to the twisted field.
func (s *twister) Evaluate(p v3.Vec, slack float64) float64 {
	if approx := s.bb.Distance(p); approx > slack {
		return approx
	}
	return s.obj.Evaluate(s.twistPoint(p), slack/s.valueScaler) * s.valueScaler
}

// Normal returns the normal of the twisted field at p.
func (s *twister) Normal(p v3.Vec) v3.Vec {
	return s.untwistNormal(s.obj.Normal(s.twistPoint(p)), p)
}

// BoundingBox returns the bounding box of the twisted field.
func (s *twister) BoundingBox() Box3 {
	return s.bb
}

// SetParameters propagates to the child.
func (s *twister) SetParameters(params *PrimitiveParameters) {
	s.obj.SetParameters(params)
}

//-----------------------------------------------------------------------------
