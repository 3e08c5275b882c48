//-----------------------------------------------------------------------------
/*

Bounding Box Tests

*/
//-----------------------------------------------------------------------------

package sdf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	v3 "github.com/truescad/truescad/vec/v3"
)

//-----------------------------------------------------------------------------

func TestBoxSentinels(t *testing.T) {
	empty := EmptyBox3()
	inf := InfiniteBox3()

	// The empty box is the union identity, the infinite box the
	// intersection identity.
	b := NewBox3(v3.Vec{X: -1, Y: -2, Z: -3}, v3.Vec{X: 1, Y: 2, Z: 3})
	assert.Equal(t, b, empty.Union(b))
	assert.Equal(t, b, inf.Intersect(b))

	assert.True(t, inf.Contains(v3.Vec{X: 1e30, Y: -1e30, Z: 0}))
	assert.False(t, empty.Contains(v3.Vec{}))
	assert.False(t, empty.IsFinite())
	assert.False(t, inf.IsFinite())
	assert.True(t, b.IsFinite())
}

func TestBoxOps(t *testing.T) {
	a := NewBox3(v3.Vec{X: 0, Y: 0, Z: 0}, v3.Vec{X: 2, Y: 2, Z: 2})
	b := NewBox3(v3.Vec{X: 1, Y: 1, Z: 1}, v3.Vec{X: 3, Y: 3, Z: 3})

	u := a.Union(b)
	assert.Equal(t, v3.Vec{}, u.Min)
	assert.Equal(t, v3.Vec{X: 3, Y: 3, Z: 3}, u.Max)

	i := a.Intersect(b)
	assert.Equal(t, v3.Vec{X: 1, Y: 1, Z: 1}, i.Min)
	assert.Equal(t, v3.Vec{X: 2, Y: 2, Z: 2}, i.Max)

	grown := a.Enlarge(0.5)
	assert.Equal(t, v3.Vec{X: -0.5, Y: -0.5, Z: -0.5}, grown.Min)

	inserted := a.Include(v3.Vec{X: -1, Y: 5, Z: 1})
	assert.Equal(t, -1.0, inserted.Min.X)
	assert.Equal(t, 5.0, inserted.Max.Y)
}

func TestBoxDistance(t *testing.T) {
	b := NewBox3(v3.Vec{X: -1, Y: -1, Z: -1}, v3.Vec{X: 1, Y: 1, Z: 1})

	// Negative inside, more negative at the center.
	assert.InDelta(t, -1.0, b.Distance(v3.Vec{}), 1e-12)
	assert.InDelta(t, -0.5, b.Distance(v3.Vec{X: 0.5}), 1e-12)

	// Outside on one axis, the sup norm equals the true distance.
	assert.InDelta(t, 2.0, b.Distance(v3.Vec{X: 3}), 1e-12)

	// Outside on several axes, it stays a lower bound of the true
	// distance.
	p := v3.Vec{X: 3, Y: 3, Z: 3}
	true3 := p.Sub(v3.Vec{X: 1, Y: 1, Z: 1}).Length()
	assert.LessOrEqual(t, b.Distance(p), true3)
	assert.Greater(t, b.Distance(p), 0.0)

	// Zero on the surface.
	assert.InDelta(t, 0.0, b.Distance(v3.Vec{X: 1, Y: 0.5, Z: -0.2}), 1e-12)
}

func TestBoxTransform(t *testing.T) {
	b := NewBox3(v3.Vec{X: -1, Y: -2, Z: -3}, v3.Vec{X: 1, Y: 2, Z: 3})

	moved := b.Transform(Translate3d(v3.Vec{X: 10}))
	assert.InDelta(t, 9.0, moved.Min.X, 1e-12)
	assert.InDelta(t, 11.0, moved.Max.X, 1e-12)

	// A rotation by 90 degrees about z swaps the x/y extents.
	turned := b.Transform(RotateZ(math.Pi / 2))
	assert.InDelta(t, 2.0, turned.Max.X, 1e-9)
	assert.InDelta(t, 1.0, turned.Max.Y, 1e-9)

	// Infinite boxes transform to the infinite box.
	assert.False(t, InfiniteBox3().Transform(RotateZ(1)).IsFinite())
}

//-----------------------------------------------------------------------------
