//-----------------------------------------------------------------------------
/*

Affine Transforms

Wrap a field with a placement matrix. Points are pulled back through the
inverse, values are rescaled by the minimum uniform scale of the matrix so
the distance contract stays conservative, and normals are pushed through
the placement.

*/
//-----------------------------------------------------------------------------

package sdf

import (
	"errors"
	"math"

	v3 "github.com/truescad/truescad/vec/v3"
	"gonum.org/v1/gonum/mat"
)

//-----------------------------------------------------------------------------

// transform applies an affine placement to a child field.
type transform struct {
	obj      SDF3
	matrix   M44 // child to world
	inverse  M44 // world to child
	scaleMin float64
	bb       Box3
}

// Transform3D applies the placement matrix m to a field. Transforming an
// already transformed field composes the matrices instead of nesting
// wrappers. A singular matrix is a construction error.
func Transform3D(s SDF3, m M44) (SDF3, error) {
	if t, ok := s.(*transform); ok {
		s = t.obj
		m = m.Mul(t.matrix)
	}
	det := m.Determinant()
	if det == 0 || math.IsNaN(det) {
		return nil, errors.New("transform matrix is not invertible")
	}
	scaleMin := minUniformScale(m)
	if scaleMin <= 0 {
		return nil, errors.New("transform matrix is not invertible")
	}
	return &transform{
		obj:      s,
		matrix:   m,
		inverse:  m.Inverse(),
		scaleMin: scaleMin,
		bb:       s.BoundingBox().Transform(m),
	}, nil
}

// Translate3D translates a field by v.
func Translate3D(s SDF3, v v3.Vec) (SDF3, error) {
	return Transform3D(s, Translate3d(v))
}

// Rotate3D rotates a field by the given euler angles (radians).
func Rotate3D(s SDF3, r v3.Vec) (SDF3, error) {
	return Transform3D(s, Euler3d(r.X, r.Y, r.Z))
}

// Scale3D scales a field by the given per-axis factors.
func Scale3D(s SDF3, k v3.Vec) (SDF3, error) {
	return Transform3D(s, Scale3d(k))
}

// minUniformScale returns the smallest singular value of the linear part
// of m: the reciprocal of the largest factor by which the inverse map can
// stretch space.
func minUniformScale(m M44) float64 {
	a := mat.NewDense(3, 3, []float64{
		m.x00, m.x01, m.x02,
		m.x10, m.x11, m.x12,
		m.x20, m.x21, m.x22,
	})
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return 0
	}
	values := svd.Values(nil)
	return values[len(values)-1]
}

//-----------------------------------------------------------------------------

// Evaluate pulls p back to child space and rescales the child value.
func (s *transform) Evaluate(p v3.Vec, slack float64) float64 {
	if approx := s.bb.Distance(p); approx > slack {
		return approx
	}
	return s.obj.Evaluate(s.inverse.MulPosition(p), slack/s.scaleMin) * s.scaleMin
}

// Normal pushes the child normal through the placement.
func (s *transform) Normal(p v3.Vec) v3.Vec {
	return s.matrix.MulVector(s.obj.Normal(s.inverse.MulPosition(p))).Normalize()
}

// BoundingBox returns the transformed child bounding box.
func (s *transform) BoundingBox() Box3 {
	return s.bb
}

// SetParameters propagates to the child.
func (s *transform) SetParameters(params *PrimitiveParameters) {
	s.obj.SetParameters(params)
}

//-----------------------------------------------------------------------------
