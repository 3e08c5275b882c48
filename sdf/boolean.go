//-----------------------------------------------------------------------------
/*

Smooth Boolean Operations

Union is a smooth minimum, intersection a smooth maximum, both built on the
log-sum-exp approximation (http://iquilezles.org/www/articles/smin/smin.htm).
With radius 0 they degenerate to exact min/max. Difference is intersection
with negated subtrahends.

Normals near a junction of two children blend in three zones: close to the
junction the composite's own numerical normal is used, further out it fades
linearly into the winning child's analytic normal, and beyond the smoothing
band the child normal is returned directly.

*/
//-----------------------------------------------------------------------------

package sdf

import (
	"errors"
	"math"

	v3 "github.com/truescad/truescad/vec/v3"
)

//-----------------------------------------------------------------------------

// union is the smooth union of a set of fields.
type union struct {
	objs       []SDF3
	r          float64
	exactRange float64
	fadeRange  float64
	bb         Box3
}

// Union3D returns the union of the given fields, smoothed over the radius r.
func Union3D(r float64, objs ...SDF3) (SDF3, error) {
	if r < 0 {
		return nil, errors.New("smoothing radius < 0")
	}
	switch len(objs) {
	case 0:
		return nil, errors.New("union of nothing")
	case 1:
		return objs[0], nil
	}
	bb := EmptyBox3()
	for _, o := range objs {
		bb = bb.Union(o.BoundingBox())
	}
	return &union{
		objs:       objs,
		r:          r,
		exactRange: r * defaultRMultiplier,
		fadeRange:  defaultFadeRange,
		bb:         bb.Enlarge(0.2 * r),
	}, nil
}

// Evaluate returns the smooth minimum of the child values.
func (s *union) Evaluate(p v3.Vec, slack float64) float64 {
	if approx := s.bb.Distance(p); approx > slack {
		return approx
	}
	values := make([]float64, len(s.objs))
	for i, o := range s.objs {
		values[i] = o.Evaluate(p, slack+s.r)
	}
	return smoothMin(values, s.r, s.exactRange)
}

// Normal returns the union normal, blending between the winning child and
// the composite in the transition zone.
func (s *union) Normal(p v3.Vec) v3.Vec {
	best := 0
	v0, v1 := math.Inf(1), math.Inf(1)
	for i, o := range s.objs {
		v := o.Evaluate(p, alwaysPrecise)
		if v < v0 {
			v1 = v0
			best, v0 = i, v
		} else if v < v1 {
			v1 = v
		}
	}
	diff := math.Abs(v0 - v1)
	switch {
	case diff < s.exactRange*(1-s.fadeRange):
		return NumericalNormal(s, p)
	case diff < s.exactRange:
		fader := (diff/s.exactRange - 1 + s.fadeRange) / s.fadeRange
		n := s.objs[best].Normal(p).MulScalar(fader)
		return n.Add(NumericalNormal(s, p).MulScalar(1 - fader)).Normalize()
	default:
		return s.objs[best].Normal(p)
	}
}

// BoundingBox returns the bounding box of the union.
func (s *union) BoundingBox() Box3 {
	return s.bb
}

// SetParameters updates the smoothing band and propagates to all children.
func (s *union) SetParameters(params *PrimitiveParameters) {
	s.exactRange = s.r * params.RMultiplier
	s.fadeRange = params.FadeRange
	for _, o := range s.objs {
		o.SetParameters(params)
	}
}

//-----------------------------------------------------------------------------

// intersection is the smooth intersection of a set of fields.
type intersection struct {
	objs       []SDF3
	r          float64
	exactRange float64
	fadeRange  float64
	bb         Box3
}

// Intersect3D returns the intersection of the given fields, smoothed over
// the radius r.
func Intersect3D(r float64, objs ...SDF3) (SDF3, error) {
	if r < 0 {
		return nil, errors.New("smoothing radius < 0")
	}
	switch len(objs) {
	case 0:
		return nil, errors.New("intersection of nothing")
	case 1:
		return objs[0], nil
	}
	bb := InfiniteBox3()
	for _, o := range objs {
		bb = bb.Intersect(o.BoundingBox())
	}
	return &intersection{
		objs:       objs,
		r:          r,
		exactRange: r * defaultRMultiplier,
		fadeRange:  defaultFadeRange,
		bb:         bb,
	}, nil
}

// Difference3D returns the field a minus the union of the given fields,
// smoothed over the radius r.
func Difference3D(r float64, a SDF3, objs ...SDF3) (SDF3, error) {
	if len(objs) == 0 {
		return a, nil
	}
	neg := make([]SDF3, 0, len(objs)+1)
	neg = append(neg, a)
	for _, o := range objs {
		neg = append(neg, Negate3D(o))
	}
	return Intersect3D(r, neg...)
}

// Evaluate returns the smooth maximum of the child values.
func (s *intersection) Evaluate(p v3.Vec, slack float64) float64 {
	if approx := s.bb.Distance(p); approx > slack {
		return approx
	}
	values := make([]float64, len(s.objs))
	for i, o := range s.objs {
		values[i] = o.Evaluate(p, slack+s.r)
	}
	return smoothMax(values, s.r, s.exactRange)
}

// Normal returns the intersection normal, blending between the winning
// child and the composite in the transition zone.
func (s *intersection) Normal(p v3.Vec) v3.Vec {
	best := 0
	v0, v1 := math.Inf(-1), math.Inf(-1)
	for i, o := range s.objs {
		v := o.Evaluate(p, alwaysPrecise)
		if v > v0 {
			v1 = v0
			best, v0 = i, v
		} else if v > v1 {
			v1 = v
		}
	}
	diff := math.Abs(v0 - v1)
	switch {
	case diff < s.exactRange*(1-s.fadeRange):
		return NumericalNormal(s, p)
	case diff < s.exactRange:
		fader := (diff/s.exactRange - 1 + s.fadeRange) / s.fadeRange
		n := s.objs[best].Normal(p).MulScalar(fader)
		return n.Add(NumericalNormal(s, p).MulScalar(1 - fader)).Normalize()
	default:
		return s.objs[best].Normal(p)
	}
}

// BoundingBox returns the bounding box of the intersection.
func (s *intersection) BoundingBox() Box3 {
	return s.bb
}

// SetParameters updates the smoothing band and propagates to all children.
func (s *intersection) SetParameters(params *PrimitiveParameters) {
	s.exactRange = s.r * params.RMultiplier
	s.fadeRange = params.FadeRange
	for _, o := range s.objs {
		o.SetParameters(params)
	}
}

//-----------------------------------------------------------------------------

// negation is the complement of a field.
type negation struct {
	obj SDF3
	bb  Box3
}

// Negate3D returns the complement of a field. The complement is unbounded,
// so its bounding box is infinite.
func Negate3D(s SDF3) SDF3 {
	return &negation{
		obj: s,
		bb:  InfiniteBox3(),
	}
}

// Evaluate returns the negated child value.
func (s *negation) Evaluate(p v3.Vec, slack float64) float64 {
	return -s.obj.Evaluate(p, slack)
}

// Normal returns the negated child normal.
func (s *negation) Normal(p v3.Vec) v3.Vec {
	return s.obj.Normal(p).Neg()
}

// BoundingBox returns the bounding box of the negation.
func (s *negation) BoundingBox() Box3 {
	return s.bb
}

// SetParameters propagates to the child.
func (s *negation) SetParameters(params *PrimitiveParameters) {
	s.obj.SetParameters(params)
}

//-----------------------------------------------------------------------------

// smoothMin is the log-sum-exp smooth minimum over v with radius r. Values
// with no competitor within exactRange pass through unchanged.
func smoothMin(v []float64, r, exactRange float64) float64 {
	minimum, next := math.Inf(1), math.Inf(1)
	for _, x := range v {
		if x < minimum {
			minimum, next = x, minimum
		} else if x < next {
			next = x
		}
	}
	if next-minimum >= exactRange || r == 0 {
		return minimum
	}
	r4 := r / 4
	expSum := 0.0
	for _, x := range v {
		if x < minimum+r {
			expSum += math.Exp(-x / r4)
		}
	}
	return -r4 * math.Log(expSum)
}

// smoothMax is the log-sum-exp smooth maximum over v with radius r.
func smoothMax(v []float64, r, exactRange float64) float64 {
	maximum, next := math.Inf(-1), math.Inf(-1)
	for _, x := range v {
		if x > maximum {
			maximum, next = x, maximum
		} else if x > next {
			next = x
		}
	}
	if maximum-next >= exactRange || r == 0 {
		return maximum
	}
	r4 := r / 4
	expSum := 0.0
	for _, x := range v {
		if x > maximum-r {
			expSum += math.Exp(x / r4)
		}
	}
	return r4 * math.Log(expSum)
}

//-----------------------------------------------------------------------------
