//-----------------------------------------------------------------------------
/*

3D Bounding Boxes

Axis-aligned boxes with set operations and a conservative point distance.
Two sentinel constructors exist: the infinite box (contains everything,
identity for intersection) and the empty box (contains nothing, identity
for union).

*/
//-----------------------------------------------------------------------------

package sdf

import (
	"math"

	v3 "github.com/truescad/truescad/vec/v3"
)

//-----------------------------------------------------------------------------

// Box3 is a 3D axis-aligned bounding box.
type Box3 struct {
	Min, Max v3.Vec
}

// NewBox3 returns a box with the given corners.
func NewBox3(min, max v3.Vec) Box3 {
	return Box3{min, max}
}

// InfiniteBox3 returns the box containing all of space.
func InfiniteBox3() Box3 {
	inf := math.Inf(1)
	return Box3{
		Min: v3.Vec{X: -inf, Y: -inf, Z: -inf},
		Max: v3.Vec{X: inf, Y: inf, Z: inf},
	}
}

// EmptyBox3 returns the empty box (the identity element for Union).
func EmptyBox3() Box3 {
	inf := math.Inf(1)
	return Box3{
		Min: v3.Vec{X: inf, Y: inf, Z: inf},
		Max: v3.Vec{X: -inf, Y: -inf, Z: -inf},
	}
}

//-----------------------------------------------------------------------------

// Union returns the smallest box enclosing both boxes.
func (a Box3) Union(b Box3) Box3 {
	return Box3{a.Min.Min(b.Min), a.Max.Max(b.Max)}
}

// Intersect returns the overlap of two boxes.
func (a Box3) Intersect(b Box3) Box3 {
	return Box3{a.Min.Max(b.Min), a.Max.Min(b.Max)}
}

// Include extends a box to contain the given point.
func (a Box3) Include(p v3.Vec) Box3 {
	return Box3{a.Min.Min(p), a.Max.Max(p)}
}

// Enlarge grows a box by d on all sides.
func (a Box3) Enlarge(d float64) Box3 {
	return Box3{a.Min.AddScalar(-d), a.Max.AddScalar(d)}
}

// Size returns the box dimensions.
func (a Box3) Size() v3.Vec {
	return a.Max.Sub(a.Min)
}

// Center returns the box center.
func (a Box3) Center() v3.Vec {
	return a.Min.Add(a.Size().MulScalar(0.5))
}

// Contains reports whether the box contains the given point.
func (a Box3) Contains(p v3.Vec) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// IsFinite reports whether both box corners are finite.
func (a Box3) IsFinite() bool {
	for i := 0; i < 3; i++ {
		if math.IsInf(a.Min.Get(i), 0) || math.IsInf(a.Max.Get(i), 0) {
			return false
		}
	}
	return true
}

// Distance returns the signed sup-norm distance from p to the box surface:
// negative inside, positive outside. If p is outside the box on one axis
// only, the result equals the true distance to the box.
func (a Box3) Distance(p v3.Vec) float64 {
	xval := math.Max(p.X-a.Max.X, a.Min.X-p.X)
	yval := math.Max(p.Y-a.Max.Y, a.Min.Y-p.Y)
	zval := math.Max(p.Z-a.Max.Z, a.Min.Z-p.Z)
	return math.Max(xval, math.Max(yval, zval))
}

// Transform returns the axis-aligned hull of the box corners mapped
// through m. A box with infinite extent on any axis maps to the infinite
// box, since the hull of its rotated corners is not representable.
func (a Box3) Transform(m M44) Box3 {
	if !a.IsFinite() {
		return InfiniteBox3()
	}
	box := EmptyBox3()
	for i := 0; i < 8; i++ {
		c := v3.Vec{X: a.Min.X, Y: a.Min.Y, Z: a.Min.Z}
		if i&1 != 0 {
			c.X = a.Max.X
		}
		if i&2 != 0 {
			c.Y = a.Max.Y
		}
		if i&4 != 0 {
			c.Z = a.Max.Z
		}
		box = box.Include(m.MulPosition(c))
	}
	return box
}

//-----------------------------------------------------------------------------
