//-----------------------------------------------------------------------------
/*

Manifold Dual Contouring Tests

*/
//-----------------------------------------------------------------------------

package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truescad/truescad/sdf"
	v3 "github.com/truescad/truescad/vec/v3"
)

//-----------------------------------------------------------------------------

// testCube builds an origin-centered cube of the given side from three
// slabs.
func testCube(t *testing.T, side float64) sdf.SDF3 {
	t.Helper()
	sx, err := sdf.SlabX3D(side)
	require.NoError(t, err)
	sy, err := sdf.SlabY3D(side)
	require.NoError(t, err)
	sz, err := sdf.SlabZ3D(side)
	require.NoError(t, err)
	cube, err := sdf.Intersect3D(0, sx, sy, sz)
	require.NoError(t, err)
	return cube
}

// checkManifoldFans verifies that the face star of every referenced vertex
// forms a single closed fan.
func checkManifoldFans(t *testing.T, mesh *Mesh) {
	t.Helper()
	next := make([]map[int]int, len(mesh.Vertices))
	for _, f := range mesh.Faces {
		for i := 0; i < 3; i++ {
			v := f[i]
			if next[v] == nil {
				next[v] = make(map[int]int)
			}
			a, b := f[(i+1)%3], f[(i+2)%3]
			_, dup := next[v][a]
			assert.False(t, dup, "vertex %d has a doubled wedge", v)
			next[v][a] = b
		}
	}
	for v, fan := range next {
		if len(fan) == 0 {
			continue
		}
		var start int
		for k := range fan {
			start = k
			break
		}
		// Walk the wedge cycle, it must visit every neighbor once.
		steps := 0
		for at := start; ; {
			n, ok := fan[at]
			if !assert.True(t, ok, "vertex %d has an open fan", v) {
				return
			}
			at = n
			steps++
			if at == start {
				break
			}
			if !assert.LessOrEqual(t, steps, len(fan), "vertex %d fan is not a single cycle", v) {
				return
			}
		}
		assert.Equal(t, len(fan), steps, "vertex %d fan splits into multiple cycles", v)
	}
}

// shellCount returns the number of face-connected components of the mesh.
func shellCount(mesh *Mesh) int {
	parent := make([]int, len(mesh.Faces))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	edgeFace := make(map[[2]int]int)
	for i, f := range mesh.Faces {
		for e := 0; e < 3; e++ {
			a, b := f[e], f[(e+1)%3]
			if j, ok := edgeFace[[2]int{b, a}]; ok {
				parent[find(i)] = find(j)
			}
			edgeFace[[2]int{a, b}] = i
		}
	}
	shells := make(map[int]struct{})
	for i := range parent {
		shells[find(i)] = struct{}{}
	}
	return len(shells)
}

//-----------------------------------------------------------------------------

func TestTessellateSphere(t *testing.T) {
	s, err := sdf.Sphere3D(1)
	require.NoError(t, err)

	mdc := NewManifoldDualContouring(s, 0.2, 0.1)
	mesh := mdc.Tessellate()
	require.NotNil(t, mesh)

	assert.NoError(t, mesh.IsClosed())
	checkManifoldFans(t, mesh)
	assert.Greater(t, len(mesh.Faces), 50)
	assert.Less(t, len(mesh.Faces), 3000)

	// All vertices within a cell of the unit sphere.
	for _, v := range mesh.Vertices {
		assert.InDelta(t, 1.0, v.Length(), 0.2+1e-9, "vertex %v off the sphere", v)
	}
}

func TestTessellateSphereNoSimplification(t *testing.T) {
	s, err := sdf.Sphere3D(1)
	require.NoError(t, err)

	fine := NewManifoldDualContouring(s, 0.2, 0).Tessellate()
	coarse := NewManifoldDualContouring(s, 0.2, 0.1).Tessellate()
	require.NotNil(t, fine)
	require.NotNil(t, coarse)

	assert.NoError(t, fine.IsClosed())
	assert.LessOrEqual(t, len(coarse.Vertices), len(fine.Vertices))

	// On the unsimplified mesh every face normal points out of the sphere.
	for i := range fine.Faces {
		f := fine.Faces[i]
		centroid := fine.Vertices[f[0]].Add(fine.Vertices[f[1]]).Add(fine.Vertices[f[2]]).MulScalar(1.0 / 3)
		assert.Positive(t, fine.FaceNormal(i).Dot(centroid), "face %d wound inward", i)
	}
}

func TestTessellateCube(t *testing.T) {
	cube := testCube(t, 1)

	mesh := NewManifoldDualContouring(cube, 0.2, 0.1).Tessellate()
	require.NotNil(t, mesh)

	assert.NoError(t, mesh.IsClosed())
	checkManifoldFans(t, mesh)

	// Vertices stay within a cell of the cube faces.
	for _, v := range mesh.Vertices {
		assert.LessOrEqual(t, math.Abs(v.X), 0.5+0.2)
		assert.LessOrEqual(t, math.Abs(v.Y), 0.5+0.2)
		assert.LessOrEqual(t, math.Abs(v.Z), 0.5+0.2)
	}

	// QEF vertex placement preserves the sharp corners: some vertex sits
	// near each cube corner.
	for i := 0; i < 8; i++ {
		corner := v3.Vec{
			X: float64(i&1) - 0.5,
			Y: float64(i>>1&1) - 0.5,
			Z: float64(i>>2&1) - 0.5,
		}
		best := math.Inf(1)
		for _, v := range mesh.Vertices {
			best = math.Min(best, v.Sub(corner).Length())
		}
		assert.Less(t, best, 0.1, "no vertex near corner %v", corner)
	}
}

func TestTessellateHollowCube(t *testing.T) {
	cube := testCube(t, 1)
	hole, err := sdf.Sphere3D(0.35)
	require.NoError(t, err)
	s, err := sdf.Difference3D(0.05, cube, hole)
	require.NoError(t, err)

	mesh := NewManifoldDualContouring(s, 0.05, 0.001).Tessellate()
	require.NotNil(t, mesh)

	assert.NoError(t, mesh.IsClosed())
	checkManifoldFans(t, mesh)

	// Outer cube shell and inner sphere shell.
	assert.Equal(t, 2, shellCount(mesh))
}

func TestTessellateTwistedCube(t *testing.T) {
	cube := testCube(t, 1)
	tw, err := sdf.Twist3D(cube, 4)
	require.NoError(t, err)

	d := 0.02
	mesh := NewManifoldDualContouring(tw, d, 0.001).Tessellate()
	require.NotNil(t, mesh)

	assert.NoError(t, mesh.IsClosed())
	checkManifoldFans(t, mesh)

	// Every vertex lies close to the twisted surface.
	inf := math.Inf(1)
	for _, v := range mesh.Vertices {
		assert.LessOrEqual(t, math.Abs(tw.Evaluate(v, inf)), d*math.Sqrt(3)+0.01,
			"vertex %v off the surface", v)
	}
}

func TestTessellateDegenerateInputs(t *testing.T) {
	s, err := sdf.Sphere3D(1)
	require.NoError(t, err)

	assert.Nil(t, NewManifoldDualContouring(s, 0, 0.1).Tessellate())
	assert.Nil(t, NewManifoldDualContouring(s, -1, 0.1).Tessellate())
	assert.Nil(t, NewManifoldDualContouring(nil, 0.1, 0.1).Tessellate())
	assert.Nil(t, NewManifoldDualContouring(s, 0.1, -0.1).Tessellate())

	// An unbounded field cannot be gridded.
	slab, err := sdf.SlabX3D(1)
	require.NoError(t, err)
	assert.Nil(t, NewManifoldDualContouring(slab, 0.1, 0.1).Tessellate())

	assert.Equal(t, "degenerate", NewManifoldDualContouring(s, 0, 0).Info())
}

func TestTessellateResolutionGuarantee(t *testing.T) {
	s, err := sdf.Sphere3D(1)
	require.NoError(t, err)

	d := 0.1
	mesh := NewManifoldDualContouring(s, d, 0).Tessellate()
	require.NotNil(t, mesh)
	for _, v := range mesh.Vertices {
		assert.LessOrEqual(t, math.Abs(v.Length()-1), d*math.Sqrt(3),
			"vertex %v outside the resolution bound", v)
	}
}

func TestTessellateInfo(t *testing.T) {
	s, err := sdf.Sphere3D(1)
	require.NoError(t, err)
	// 2 units of sphere, 0.2 cells, plus one padding cell per side.
	assert.Equal(t, "12x12x12", NewManifoldDualContouring(s, 0.2, 0).Info())
}

//-----------------------------------------------------------------------------
