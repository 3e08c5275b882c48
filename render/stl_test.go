//-----------------------------------------------------------------------------
/*

STL and 3MF Export Tests

*/
//-----------------------------------------------------------------------------

package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v3 "github.com/truescad/truescad/vec/v3"
)

//-----------------------------------------------------------------------------

// testTetrahedron returns a closed 4-face mesh.
func testTetrahedron() *Mesh {
	return &Mesh{
		Vertices: []v3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
		Faces: [][3]int{
			{0, 2, 1},
			{0, 1, 3},
			{0, 3, 2},
			{1, 2, 3},
		},
	}
}

//-----------------------------------------------------------------------------

func TestSTLRoundTrip(t *testing.T) {
	mesh := testTetrahedron()
	require.NoError(t, mesh.IsClosed())

	path := filepath.Join(t.TempDir(), "tetra.stl")
	require.NoError(t, SaveSTL(path, mesh))

	loaded, err := LoadSTL(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	// Vertices merge back to the originals and the mesh stays closed.
	assert.Len(t, loaded.Vertices, 4)
	assert.Len(t, loaded.Faces, 4)
	assert.NoError(t, loaded.IsClosed())

	// 80-byte header, 4-byte count, 50 bytes per triangle.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(84+4*50), info.Size())
}

func TestSTLErrors(t *testing.T) {
	assert.Error(t, SaveSTL(filepath.Join(t.TempDir(), "nil.stl"), nil))
	_, err := LoadSTL(filepath.Join(t.TempDir(), "missing.stl"))
	assert.Error(t, err)
}

func TestSave3MF(t *testing.T) {
	mesh := testTetrahedron()
	path := filepath.Join(t.TempDir(), "tetra.3mf")
	require.NoError(t, Save3MF(path, mesh))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, Save3MF(filepath.Join(t.TempDir(), "nil.3mf"), nil))
}

func TestMeshIsClosedDetectsHoles(t *testing.T) {
	mesh := testTetrahedron()
	mesh.Faces = mesh.Faces[:3]
	assert.Error(t, mesh.IsClosed())

	// A doubled face shares directed edges.
	mesh = testTetrahedron()
	mesh.Faces = append(mesh.Faces, mesh.Faces[0])
	assert.Error(t, mesh.IsClosed())
}

//-----------------------------------------------------------------------------
