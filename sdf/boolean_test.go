//-----------------------------------------------------------------------------
/*

Smooth CSG Tests

*/
//-----------------------------------------------------------------------------

package sdf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v3 "github.com/truescad/truescad/vec/v3"
)

//-----------------------------------------------------------------------------

func twoSpheres(t *testing.T) (SDF3, SDF3) {
	t.Helper()
	a, err := Sphere3D(1)
	require.NoError(t, err)
	a, err = Translate3D(a, v3.Vec{X: -1})
	require.NoError(t, err)
	b, err := Sphere3D(1)
	require.NoError(t, err)
	b, err = Translate3D(b, v3.Vec{X: 1})
	require.NoError(t, err)
	return a, b
}

//-----------------------------------------------------------------------------

func TestUnionDegeneratesToMin(t *testing.T) {
	a, b := twoSpheres(t)
	u, err := Union3D(0, a, b)
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(2))
	inf := math.Inf(1)
	for i := 0; i < 1000; i++ {
		p := randomPoint(rnd, 4)
		want := math.Min(a.Evaluate(p, inf), b.Evaluate(p, inf))
		assert.InDelta(t, want, u.Evaluate(p, inf), 1e-9)
	}
}

func TestIntersectionDegeneratesToMax(t *testing.T) {
	a, b := twoSpheres(t)
	s, err := Intersect3D(0, a, b)
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(3))
	inf := math.Inf(1)
	for i := 0; i < 1000; i++ {
		p := randomPoint(rnd, 4)
		want := math.Max(a.Evaluate(p, inf), b.Evaluate(p, inf))
		assert.InDelta(t, want, s.Evaluate(p, inf), 1e-9)
	}
}

func TestSmoothUnionWeldsTangentSpheres(t *testing.T) {
	a, b := twoSpheres(t)
	u, err := Union3D(0.3, a, b)
	require.NoError(t, err)
	inf := math.Inf(1)

	// The spheres touch at the origin; the smoothing welds them so the
	// blended value dips below zero there.
	assert.LessOrEqual(t, u.Evaluate(v3.Vec{}, inf), 0.0)

	// Far away the blend has no effect beyond the radius.
	want := v3.Vec{Z: 10}.Sub(v3.Vec{X: 1}).Length() - 1
	assert.InDelta(t, want, u.Evaluate(v3.Vec{Z: 10}, inf), 0.1)

	// The blended surface never grows beyond the smoothing radius: points
	// further than r from both spheres stay outside.
	assert.Positive(t, u.Evaluate(v3.Vec{X: 0, Y: 1.5}, inf))
}

func TestSmoothMinBelowBothValues(t *testing.T) {
	// Smooth min is below plain min inside the blend band.
	v := smoothMin([]float64{0.1, 0.1}, 0.4, 0.4)
	assert.Less(t, v, 0.1)
	// Outside the band it passes the minimum through.
	assert.Equal(t, -2.0, smoothMin([]float64{-2, 3}, 0.4, 0.4))
	// Symmetric for smooth max.
	assert.Greater(t, smoothMax([]float64{0.1, 0.1}, 0.4, 0.4), 0.1)
	assert.Equal(t, 3.0, smoothMax([]float64{-2, 3}, 0.4, 0.4))
}

func TestDifference(t *testing.T) {
	cube := testCube(t, 1)
	hole, err := Sphere3D(0.4)
	require.NoError(t, err)
	d, err := Difference3D(0, cube, hole)
	require.NoError(t, err)
	inf := math.Inf(1)

	// The center is carved out, the shell remains, corners stay solid.
	assert.Positive(t, d.Evaluate(v3.Vec{}, inf))
	assert.Negative(t, d.Evaluate(v3.Vec{X: 0.45}, inf))
	assert.Negative(t, d.Evaluate(v3.Vec{X: 0.45, Y: 0.45, Z: 0.45}, inf))
	assert.Positive(t, d.Evaluate(v3.Vec{X: 0.55}, inf))

	// Difference with no subtrahends is the field itself.
	same, err := Difference3D(0, cube)
	require.NoError(t, err)
	assert.Equal(t, cube, same)
}

func TestNegation(t *testing.T) {
	s, err := Sphere3D(1)
	require.NoError(t, err)
	n := Negate3D(s)
	inf := math.Inf(1)

	assert.Positive(t, n.Evaluate(v3.Vec{}, inf))
	assert.Negative(t, n.Evaluate(v3.Vec{X: 2}, inf))
	assert.False(t, n.BoundingBox().IsFinite())

	nrm := n.Normal(v3.Vec{X: 0.5})
	assert.InDelta(t, -1.0, nrm.X, 1e-12)
}

func TestCompositeRules(t *testing.T) {
	s, err := Sphere3D(1)
	require.NoError(t, err)

	// A single child passes through unwrapped; empty composites are
	// construction errors.
	u, err := Union3D(0.5, s)
	require.NoError(t, err)
	assert.Equal(t, s, u)
	_, err = Union3D(0.5)
	assert.Error(t, err)
	_, err = Intersect3D(0.5)
	assert.Error(t, err)
	_, err = Union3D(-1, s, s)
	assert.Error(t, err)
}

func TestUnionNormalZones(t *testing.T) {
	a, b := twoSpheres(t)
	u, err := Union3D(0.3, a, b)
	require.NoError(t, err)

	// Far from the junction the winning child's analytic normal is used.
	n := u.Normal(v3.Vec{X: -2})
	assert.InDelta(t, -1.0, n.X, 1e-9)

	// In the junction zone the normal is still unit length and symmetric
	// about the yz plane.
	n = u.Normal(v3.Vec{X: 0, Y: 0.4})
	assert.InDelta(t, 1.0, n.Length(), 1e-9)
	assert.InDelta(t, 0.0, n.X, 1e-6)
}

func TestSetParametersPropagates(t *testing.T) {
	a, b := twoSpheres(t)
	inner, err := Union3D(0.2, a, b)
	require.NoError(t, err)
	outer, err := Union3D(0.2, inner, testCube(t, 4))
	require.NoError(t, err)

	// Propagation reaches nested composites without changing values
	// outside the smoothing band.
	outer.SetParameters(&PrimitiveParameters{FadeRange: 0.5, RMultiplier: 2})
	inf := math.Inf(1)
	assert.Negative(t, outer.Evaluate(v3.Vec{}, inf))
	assert.Positive(t, outer.Evaluate(v3.Vec{X: 5}, inf))
}

//-----------------------------------------------------------------------------
